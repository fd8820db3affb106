package ports

import "go.trai.ch/bundleplan/internal/core/domain"

// PlanStore persists resolved plans.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type PlanStore interface {
	// Put stores the resolution under its fingerprint and marks it as the latest.
	Put(root string, res *domain.Resolution) error

	// Latest returns the fingerprint of the last stored plan.
	// Returns "", nil if nothing has been stored yet.
	Latest(root string) (string, error)
}
