// Package settings owns the job catalog and the global scheduling parameters.
package settings

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"shiftdesk/models"
	"shiftdesk/services/errs"

	"go.uber.org/zap"
)

// Repository persists settings. Load returns nil, nil when nothing has been stored yet.
type Repository interface {
	Load(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
}

// ChangeNotifier is told when a parameter the solver consumes changes.
type ChangeNotifier interface {
	SettingsChanged(ctx context.Context)
}

// JobReferences reports whether any employee still holds a job. An error means the answer is
// unknown and the catalog edit is refused.
type JobReferences interface {
	ReferencesJob(ctx context.Context, name string) (bool, error)
}

// Option configures a Store.
type Option func(*Store)

func WithRepository(r Repository) Option {
	return func(s *Store) { s.repo = r }
}

func WithNotifier(n ChangeNotifier) Option {
	return func(s *Store) { s.notifier = n }
}

// Store holds the current settings. Job names are unique case-insensitively, and a job cannot be
// renamed or removed while an employee references it.
type Store struct {
	repo     Repository
	notifier ChangeNotifier
	logger   *zap.Logger

	writeMu sync.Mutex

	mu      sync.RWMutex
	current models.Settings
	refs    JobReferences
}

// NewStore validates defaults and builds a store holding them.
func NewStore(defaults models.Settings, logger *zap.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clean, err := defaults.NormalizeParameters()
	if err != nil {
		return nil, fmt.Errorf("default settings: %w", err)
	}
	if err := checkCatalog(clean.Jobs); err != nil {
		return nil, fmt.Errorf("default settings: %w", err)
	}
	s := &Store{current: clean, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// UseReferences wires the roster used to guard job renames and removals.
func (s *Store) UseReferences(refs JobReferences) {
	s.mu.Lock()
	s.refs = refs
	s.mu.Unlock()
}

// UseNotifier sets the regeneration trigger after construction.
func (s *Store) UseNotifier(n ChangeNotifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// Load replaces the in-memory settings with persisted ones when a repository holds any.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return &errs.RemoteError{Op: "load settings", Err: err}
	}
	if stored == nil {
		s.logger.Info("no stored settings; keeping defaults")
		return nil
	}
	clean, err := stored.NormalizeParameters()
	if err != nil {
		return fmt.Errorf("stored settings: %w", err)
	}
	s.mu.Lock()
	s.current = clean
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the current settings.
func (s *Store) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// RoleKeys returns the catalog's role keys in catalog order.
func (s *Store) RoleKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.RoleKeys()
}

// HasJob reports whether name is in the catalog, ignoring case.
func (s *Store) HasJob(name string) bool {
	key := models.RoleKey(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, j := range s.current.Jobs {
		if models.RoleKey(j.Name) == key {
			return true
		}
	}
	return false
}

// Update applies the candidate's hour cap and display window. The catalog is edited through
// AddJob, RenameJob and RemoveJob only.
func (s *Store) Update(ctx context.Context, candidate models.Settings) (models.Settings, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev := s.Get()
	candidate.Jobs = prev.Jobs
	next, err := candidate.NormalizeParameters()
	if err != nil {
		return models.Settings{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return models.Settings{}, err
	}

	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()
	if next.TotalHours != prev.TotalHours && n != nil {
		n.SettingsChanged(ctx)
	}
	return next.Clone(), nil
}

// AddJob appends a job to the catalog.
func (s *Store) AddJob(ctx context.Context, name string) error {
	if err := models.ValidJobName(name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Get()
	if idx := indexOf(next.Jobs, name); idx >= 0 {
		return errs.NewValidation("name", "job %q already exists", next.Jobs[idx].Name)
	}
	next.Jobs = append(next.Jobs, models.Job{Name: name})
	return s.commit(ctx, next)
}

// RenameJob renames the job at index. Renames that change only letter case are always allowed;
// any other rename of a job still held by an employee is rejected.
func (s *Store) RenameJob(ctx context.Context, index int, newName string) error {
	if err := models.ValidJobName(newName); err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Get()
	if index < 0 || index >= len(next.Jobs) {
		return errs.NewValidation("index", "no job at index %d", index)
	}
	old := next.Jobs[index].Name
	if idx := indexOf(next.Jobs, newName); idx >= 0 && idx != index {
		return errs.NewValidation("name", "job %q already exists", next.Jobs[idx].Name)
	}
	if models.RoleKey(old) != models.RoleKey(newName) {
		held, err := s.referenced(ctx, old)
		if err != nil {
			return err
		}
		if held {
			return errs.NewValidation("job", "%q is assigned to employees and cannot be renamed", old)
		}
	}
	next.Jobs[index].Name = newName
	return s.commit(ctx, next)
}

// RemoveJob deletes the job at index unless an employee still holds it.
func (s *Store) RemoveJob(ctx context.Context, index int) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Get()
	if index < 0 || index >= len(next.Jobs) {
		return errs.NewValidation("index", "no job at index %d", index)
	}
	name := next.Jobs[index].Name
	held, err := s.referenced(ctx, name)
	if err != nil {
		return err
	}
	if held {
		return errs.NewValidation("job", "%q is assigned to employees and cannot be removed", name)
	}
	next.Jobs = append(next.Jobs[:index], next.Jobs[index+1:]...)
	return s.commit(ctx, next)
}

// commit persists next (when a repository is configured) and then makes it current.
// Callers hold writeMu.
func (s *Store) commit(ctx context.Context, next models.Settings) error {
	next.UpdatedAt = time.Now().UTC()
	if s.repo != nil {
		if err := s.repo.Save(ctx, next); err != nil {
			s.logger.Warn("settings save failed", zap.Error(err))
			return &errs.RemoteError{Op: "save settings", Err: err}
		}
	}
	s.mu.Lock()
	s.current = next.Clone()
	s.mu.Unlock()
	s.logger.Debug("settings updated",
		zap.Int("totalHours", next.TotalHours),
		zap.Int("jobs", len(next.Jobs)),
	)
	return nil
}

func (s *Store) referenced(ctx context.Context, job string) (bool, error) {
	s.mu.RLock()
	refs := s.refs
	s.mu.RUnlock()
	if refs == nil {
		return false, nil
	}
	return refs.ReferencesJob(ctx, job)
}

func indexOf(jobs []models.Job, name string) int {
	key := models.RoleKey(name)
	for i, j := range jobs {
		if models.RoleKey(j.Name) == key {
			return i
		}
	}
	return -1
}

func checkCatalog(jobs []models.Job) error {
	for i, j := range jobs {
		if err := models.ValidJobName(j.Name); err != nil {
			return err
		}
		if idx := indexOf(jobs[:i], j.Name); idx >= 0 {
			return errs.NewValidation("jobs", "job %q is listed twice", j.Name)
		}
	}
	return nil
}
