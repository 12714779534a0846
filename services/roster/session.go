package roster

import (
	"context"

	"shiftdesk/models"
)

// EditSession is the single editable draft a UI holds: either a new employee or an edit of one
// existing record. It is a plain value owned by the caller; starting another session simply
// replaces the old value, discarding unsaved changes.
type EditSession struct {
	target *models.EmployeeID
	Draft  models.EmployeeDraft
}

// NewEmployeeSession starts a session that creates a new employee on save.
func NewEmployeeSession() EditSession {
	return EditSession{}
}

// EditEmployeeSession starts a session bound to an existing employee, prefilled with its fields.
func EditEmployeeSession(e models.Employee) EditSession {
	id := e.ID
	return EditSession{target: &id, Draft: e.Draft()}
}

// Target returns the id being edited, if any.
func (s EditSession) Target() (models.EmployeeID, bool) {
	if s.target == nil {
		return "", false
	}
	return *s.target, true
}

// Save creates or updates through the store depending on whether the session has a target.
func (s EditSession) Save(ctx context.Context, store *Store) (models.Employee, error) {
	if id, ok := s.Target(); ok {
		return store.Update(ctx, id, s.Draft)
	}
	return store.Create(ctx, s.Draft)
}
