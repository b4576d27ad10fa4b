// Package service holds the business logic between the HTTP handlers
// and the repositories: validation, ownership checks, side effects like
// completion timestamps, and the recommendation assembly.
package service

import "github.com/tahmid/focusflow/internal/apperror"

// owned is any resource that knows which user it belongs to. All four
// models implement it.
type owned interface {
	OwnerID() string
}

// requireOwner is the single ownership check used by every service.
// A mismatch reports NotFound, not Forbidden — revealing that the
// resource exists would leak another user's data, so a foreign ID is
// indistinguishable from a missing one.
func requireOwner(res owned, resource, id, userID string) error {
	if res.OwnerID() != userID {
		return apperror.NotFound(resource, id)
	}
	return nil
}
