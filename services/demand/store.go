// Package demand owns per-date staffing demand and keeps it consistent with the demand service.
package demand

import (
	"context"
	"sync"

	"shiftdesk/models"
	"shiftdesk/services/remote"

	"go.uber.org/zap"
)

// ChangeNotifier is told about every confirmed demand replacement.
type ChangeNotifier interface {
	DemandChanged(ctx context.Context, date string)
}

// RoleCatalog supplies the roles a blank slot is initialised with.
type RoleCatalog interface {
	RoleKeys() []string
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the downstream regeneration trigger.
func WithNotifier(n ChangeNotifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithRoleCatalog sets the catalog used by AppendBlankSlot.
func WithRoleCatalog(c RoleCatalog) Option {
	return func(s *Store) { s.catalog = c }
}

// Store keeps two views per date: the confirmed slots last read from or written to the demand
// service, and a local draft that AppendBlankSlot extends until the next save.
type Store struct {
	remote   remote.DemandService
	notifier ChangeNotifier
	catalog  RoleCatalog
	logger   *zap.Logger

	locks *keyedMutex // one writer per date

	mu        sync.RWMutex
	confirmed map[string][]models.DemandSlot
	drafts    map[string][]models.DemandSlot
}

// NewStore builds a demand store over the given demand service.
func NewStore(ds remote.DemandService, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		remote:    ds,
		logger:    logger,
		locks:     newKeyedMutex(),
		confirmed: make(map[string][]models.DemandSlot),
		drafts:    make(map[string][]models.DemandSlot),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UseNotifier sets the regeneration trigger after construction.
func (s *Store) UseNotifier(n ChangeNotifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// ListForDate fetches the date's demand from the demand service and resets both views to it.
// On failure both views for the date are cleared so callers see no demand rather than stale demand.
// The fetch holds the date's writer lock, so a reply cannot overwrite a replace confirmed after it
// was issued.
func (s *Store) ListForDate(ctx context.Context, date string) ([]models.DemandSlot, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(date)
	defer unlock()

	slots, err := s.remote.GetDemand(ctx, date)
	if err != nil {
		s.mu.Lock()
		delete(s.confirmed, date)
		delete(s.drafts, date)
		s.mu.Unlock()
		s.logger.Warn("demand fetch failed; local view cleared", zap.String("date", date), zap.Error(err))
		return []models.DemandSlot{}, err
	}

	s.mu.Lock()
	s.confirmed[date] = models.CloneSlots(slots)
	s.drafts[date] = models.CloneSlots(slots)
	s.mu.Unlock()
	return models.CloneSlots(slots), nil
}

// Snapshot returns the confirmed demand for date, fetching it once if it has never been read.
// Unsaved draft rows are not included.
func (s *Store) Snapshot(ctx context.Context, date string) ([]models.DemandSlot, error) {
	s.mu.RLock()
	slots, ok := s.confirmed[date]
	s.mu.RUnlock()
	if ok {
		return models.CloneSlots(slots), nil
	}
	return s.ListForDate(ctx, date)
}

// Draft returns the local, possibly unsaved, rows for date.
func (s *Store) Draft(date string) []models.DemandSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if draft, ok := s.drafts[date]; ok {
		return models.CloneSlots(draft)
	}
	return models.CloneSlots(s.confirmed[date])
}

// AppendBlankSlot adds a 00:00 row with zero headcount for every catalog role to the local draft.
// Nothing is sent to the demand service until ReplaceForDate.
func (s *Store) AppendBlankSlot(date string) (models.DemandSlot, error) {
	if _, err := models.ParseDate(date); err != nil {
		return models.DemandSlot{}, err
	}
	var roles []string
	if s.catalog != nil {
		roles = s.catalog.RoleKeys()
	}
	slot := models.BlankSlot(roles)

	s.mu.Lock()
	draft, ok := s.drafts[date]
	if !ok {
		draft = models.CloneSlots(s.confirmed[date])
	}
	s.drafts[date] = append(draft, slot.Clone())
	s.mu.Unlock()
	return slot, nil
}

// ReplaceForDate overwrites the date's demand with slots. It is a full replace, not a merge.
func (s *Store) ReplaceForDate(ctx context.Context, date string, slots []models.DemandSlot) error {
	if _, err := models.ParseDate(date); err != nil {
		return err
	}
	clean, err := models.NormalizeDemand(slots)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(date)
	if err := s.remote.ReplaceDemand(ctx, date, clean); err != nil {
		unlock()
		s.logger.Warn("demand save failed", zap.String("date", date), zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.confirmed[date] = models.CloneSlots(clean)
	s.drafts[date] = models.CloneSlots(clean)
	s.mu.Unlock()
	unlock()

	s.logger.Info("demand saved", zap.String("date", date), zap.Int("slots", len(clean)))
	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()
	if n != nil {
		n.DemandChanged(ctx, date)
	}
	return nil
}
