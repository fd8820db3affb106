package domain

// GlobalBinding names the runtime global through which an externalized module is reached.
type GlobalBinding struct {
	ExportedAs string `json:"exportedAs"`
	GlobalName string `json:"globalName"`
}

// ExternalizationDecision is the policy chosen for one dependency.
type ExternalizationDecision struct {
	Dependency    DependencySpec `json:"dependency"`
	Policy        Policy         `json:"policy"`
	GlobalBinding *GlobalBinding `json:"globalBinding,omitempty"`
}

// Diagnostic reasons.
const (
	ReasonDevelopment              = "dev-bundles-everything"
	ReasonLibraryDeclared          = "library-honors-declared-policy"
	ReasonDeclaredBundle           = "declared-bundle"
	ReasonRuntimeGlobalConfirmed   = "runtime-global-confirmed"
	ReasonRuntimeGlobalUnconfirmed = "runtime-global-unconfirmed"
	ReasonShimNotAllowedInApp      = "shim-not-allowed-in-app"
)

// Diagnostic records why a policy was chosen for a dependency.
type Diagnostic struct {
	ModuleID       string `json:"module"`
	DeclaredPolicy Policy `json:"declaredPolicy"`
	ChosenPolicy   Policy `json:"chosenPolicy"`
	Reason         string `json:"reason"`
	Downgraded     bool   `json:"downgraded,omitempty"`

	// Warning is set to an ErrPolicyDowngraded error when Downgraded is true.
	Warning error `json:"-"`
}
