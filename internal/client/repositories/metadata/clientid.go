package metadata

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EnsureClientID returns the stable identifier of this client installation,
// generating and persisting one on first use.
func EnsureClientID(ctx context.Context, r Repository) (string, error) {
	v, err := r.Get(ctx, KeyClientID)
	if err != nil {
		return "", err
	}
	if v != nil {
		return string(v), nil
	}

	id := uuid.NewString()
	if err := r.Set(ctx, KeyClientID, []byte(id)); err != nil {
		return "", fmt.Errorf("failed to persist client id: %w", err)
	}
	return id, nil
}
