package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Deployment is where the built artifact is hosted.
// The zero value is a root deployment.
type Deployment struct {
	subPath string
}

// RootDeployment returns a deployment at the root of the host.
func RootDeployment() Deployment {
	return Deployment{}
}

// SubPathDeployment returns a deployment under the given URL prefix.
// The path must be non-empty and begin and end with '/'.
func SubPathDeployment(path string) (Deployment, error) {
	if err := ValidateSubPath(path); err != nil {
		return Deployment{}, err
	}
	return Deployment{subPath: path}, nil
}

// ValidateSubPath checks that path is a usable URL path prefix.
func ValidateSubPath(path string) error {
	if path == "/" || (len(path) > 2 && strings.HasPrefix(path, "/") && strings.HasSuffix(path, "/")) {
		return nil
	}
	return zerr.With(ErrInvalidDeployment, "path", path)
}

// IsRoot reports whether the deployment is at the host root.
func (d Deployment) IsRoot() bool {
	return d.subPath == ""
}

// SubPath returns the URL prefix, or "" for a root deployment.
func (d Deployment) SubPath() string {
	return d.subPath
}

// String returns "root" or the sub-path.
func (d Deployment) String() string {
	if d.IsRoot() {
		return "root"
	}
	return d.subPath
}

// MarshalText implements encoding.TextMarshaler.
func (d Deployment) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// BuildProfile is the resolved mode and deployment of one build invocation.
type BuildProfile struct {
	Mode       Mode       `json:"mode"`
	Deployment Deployment `json:"deployment"`
}
