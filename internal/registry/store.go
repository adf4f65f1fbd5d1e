// internal/registry/store.go

// Package registry holds the activity catalog and participant rosters.
// Three backends implement the same Store contract: an in-memory map for
// single-process deployments and tests, Redis for shared state, and
// Postgres for durable state.
package registry

import (
	"context"

	"activities-service/internal/models"
)

// Store is the roster registry contract. The catalog of activity names is
// fixed at startup; only rosters mutate. Every operation is atomic with
// respect to a single activity's roster, and a failed operation leaves the
// registry untouched.
type Store interface {
	// List returns a snapshot of the full catalog. Participants slices in
	// the snapshot are copies and never nil.
	List(ctx context.Context) (models.Registry, error)

	// Get returns a snapshot of one activity, or ACTIVITY_NOT_FOUND.
	Get(ctx context.Context, activity string) (models.Activity, error)

	// Signup appends email to the activity's roster, preserving insertion
	// order. Fails with ACTIVITY_NOT_FOUND or ALREADY_REGISTERED; with
	// ACTIVITY_FULL when capacity enforcement is on and the roster is full.
	Signup(ctx context.Context, activity, email string) error

	// Unregister removes email from the activity's roster, preserving the
	// relative order of the remaining participants. Fails with
	// ACTIVITY_NOT_FOUND or NOT_REGISTERED.
	Unregister(ctx context.Context, activity, email string) error
}

// Options tune store behavior shared by all backends.
type Options struct {
	// EnforceCapacity rejects signups to a full activity. Defaults to off:
	// max_participants is advisory unless a deployment opts in.
	EnforceCapacity bool
}
