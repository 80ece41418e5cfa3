package contract

import (
	"context"

	"clinic-intake-be/pkg/dialog"
)

// SessionStore is the durable key-value store for conversation documents.
// Get reports absence without error; Put merges a partial patch into the
// stored document (creating it when absent) and returns the merged result.
// The patch's clear markers are how fields get emptied rather than skipped.
type SessionStore interface {
	Get(ctx context.Context, key string) (*dialog.Session, bool, error)
	Put(ctx context.Context, key string, patch dialog.Patch) (*dialog.Session, error)
}
