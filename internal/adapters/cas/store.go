// Package cas implements the fingerprint-addressed plan store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.PlanStore with one JSON file per plan fingerprint.
type Store struct{}

// NewStore creates a new plan store.
func NewStore() *Store {
	return &Store{}
}

// Put writes the resolution to <root>/.bundleplan/plans/<fingerprint>.json
// and records the fingerprint as the latest.
func (s *Store) Put(root string, res *domain.Resolution) error {
	if res.Fingerprint == "" {
		return zerr.With(domain.ErrStoreWriteFailed, "reason", "resolution has no fingerprint")
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	dir := filepath.Join(root, domain.DefaultPlansPath())
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", dir)
	}

	if err := writeFileAtomic(filepath.Join(dir, res.Fingerprint+".json"), data); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, domain.LatestPlanFile), []byte(res.Fingerprint+"\n"))
}

// Latest returns the fingerprint of the last stored plan, or "" if none.
func (s *Store) Latest(root string) (string, error) {
	path := filepath.Join(root, domain.DefaultPlansPath(), domain.LatestPlanFile)
	//nolint:gosec // Path is constructed from the project root and a fixed name
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}
	return strings.TrimSpace(string(data)), nil
}

// PlanPath returns the file a plan with the given fingerprint is stored in.
func PlanPath(root, fingerprint string) string {
	return filepath.Join(root, domain.DefaultPlansPath(), fingerprint+".json")
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	return nil
}
