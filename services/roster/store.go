// Package roster owns the employee collection and keeps it consistent with the roster service.
package roster

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"shiftdesk/models"
	"shiftdesk/services/errs"
	"shiftdesk/services/remote"

	"go.uber.org/zap"
)

// ChangeNotifier is told about every confirmed roster mutation.
type ChangeNotifier interface {
	RosterChanged(ctx context.Context)
}

// JobCatalog answers whether a job name exists in the catalog.
type JobCatalog interface {
	HasJob(name string) bool
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the downstream regeneration trigger.
func WithNotifier(n ChangeNotifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithJobCatalog makes create/update reject jobs missing from the catalog.
func WithJobCatalog(c JobCatalog) Option {
	return func(s *Store) { s.catalog = c }
}

// Store caches the roster. Every mutation is confirmed by the roster service before the cache
// changes, and mutations are serialized.
type Store struct {
	remote   remote.RosterService
	notifier ChangeNotifier
	catalog  JobCatalog
	logger   *zap.Logger

	writeMu sync.Mutex // one mutation in flight

	mu        sync.RWMutex
	employees []models.Employee
	loaded    bool
}

// NewStore builds a roster store over the given roster service.
func NewStore(rs remote.RosterService, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{remote: rs, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List fetches the roster from the roster service and replaces the cache.
// On failure the cache is left at its last known good state. A refresh holds the writer lock, so
// it cannot land after a mutation that was confirmed while it was in flight.
func (s *Store) List(ctx context.Context) ([]models.Employee, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	employees, err := s.remote.ListEmployees(ctx)
	if err != nil {
		s.logger.Warn("roster refresh failed", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.employees = cloneEmployees(employees)
	s.loaded = true
	s.mu.Unlock()

	return cloneEmployees(employees), nil
}

// Snapshot returns a copy of the cached roster without a network call.
func (s *Store) Snapshot() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEmployees(s.employees)
}

// Loaded reports whether the cache has been filled at least once.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Get returns the cached employee with the given id.
func (s *Store) Get(id models.EmployeeID) (models.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.Employee{}, false
}

// UseNotifier sets the regeneration trigger after construction.
func (s *Store) UseNotifier(n ChangeNotifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// ReferencesJob reports whether any employee holds the job (case-insensitive). A cache that was
// never filled is loaded first; if that fails the answer is an error, not "unreferenced".
func (s *Store) ReferencesJob(ctx context.Context, name string) (bool, error) {
	if !s.Loaded() {
		if _, err := s.List(ctx); err != nil {
			return false, fmt.Errorf("check references to job %q: %w", name, err)
		}
	}
	key := models.RoleKey(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if models.RoleKey(e.Job) == key {
			return true, nil
		}
	}
	return false, nil
}

// Create validates draft, persists it and appends the server's record to the cache.
func (s *Store) Create(ctx context.Context, draft models.EmployeeDraft) (models.Employee, error) {
	clean, err := s.validate(draft)
	if err != nil {
		return models.Employee{}, err
	}

	s.writeMu.Lock()
	created, err := s.remote.CreateEmployee(ctx, clean)
	if err != nil {
		s.writeMu.Unlock()
		s.logger.Warn("create employee failed", zap.String("name", clean.Name), zap.Error(err))
		return models.Employee{}, err
	}
	s.mu.Lock()
	s.employees = append(s.employees, created.Clone())
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.logger.Info("employee created", zap.String("id", created.ID.String()), zap.String("name", created.Name))
	s.notify(ctx)
	return created.Clone(), nil
}

// Update validates draft and replaces the record with the given id.
// A NotFoundError from the roster service also drops the id from the cache.
func (s *Store) Update(ctx context.Context, id models.EmployeeID, draft models.EmployeeDraft) (models.Employee, error) {
	if strings.TrimSpace(id.String()) == "" {
		return models.Employee{}, errs.NewValidation("id", "is required")
	}
	clean, err := s.validate(draft)
	if err != nil {
		return models.Employee{}, err
	}

	s.writeMu.Lock()
	updated, err := s.remote.UpdateEmployee(ctx, id, clean)
	if err != nil {
		if errs.IsNotFound(err) {
			s.drop(id)
		}
		s.writeMu.Unlock()
		s.logger.Warn("update employee failed", zap.String("id", id.String()), zap.Error(err))
		return models.Employee{}, err
	}
	s.mu.Lock()
	replaced := false
	for i := range s.employees {
		if s.employees[i].ID == id {
			s.employees[i] = updated.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		s.employees = append(s.employees, updated.Clone())
	}
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.logger.Info("employee updated", zap.String("id", id.String()))
	s.notify(ctx)
	return updated.Clone(), nil
}

// Delete removes the employee remotely and then from the cache.
// Callers that treat deletion as idempotent should accept errs.IsNotFound as success.
func (s *Store) Delete(ctx context.Context, id models.EmployeeID) error {
	if strings.TrimSpace(id.String()) == "" {
		return errs.NewValidation("id", "is required")
	}

	s.writeMu.Lock()
	if err := s.remote.DeleteEmployee(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			s.drop(id)
		}
		s.writeMu.Unlock()
		s.logger.Warn("delete employee failed", zap.String("id", id.String()), zap.Error(err))
		return err
	}
	s.drop(id)
	s.writeMu.Unlock()

	s.logger.Info("employee deleted", zap.String("id", id.String()))
	s.notify(ctx)
	return nil
}

func (s *Store) validate(draft models.EmployeeDraft) (models.EmployeeDraft, error) {
	clean, err := draft.Normalize()
	if err != nil {
		return models.EmployeeDraft{}, err
	}
	if s.catalog != nil && !s.catalog.HasJob(clean.Job) {
		return models.EmployeeDraft{}, errs.NewValidation("job", "%q is not in the job catalog", clean.Job)
	}
	return clean, nil
}

func (s *Store) drop(id models.EmployeeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.employees[:0]
	for _, e := range s.employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.employees = kept
}

func (s *Store) notify(ctx context.Context) {
	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()
	if n == nil {
		return
	}
	n.RosterChanged(ctx)
}

func cloneEmployees(in []models.Employee) []models.Employee {
	out := make([]models.Employee, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
