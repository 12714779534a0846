// Package schedule coordinates schedule generation: it snapshots roster and demand, calls the
// solver, resolves the reply into display-ready assignments and publishes them per date.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"shiftdesk/models"
	"shiftdesk/services/errs"
	"shiftdesk/services/remote"

	"go.uber.org/zap"
)

// RosterSource provides the cached roster.
type RosterSource interface {
	Snapshot() []models.Employee
}

// DemandSource provides the confirmed demand of a date.
type DemandSource interface {
	Snapshot(ctx context.Context, date string) ([]models.DemandSlot, error)
}

// SettingsSource provides the hour cap sent to the solver.
type SettingsSource interface {
	Get() models.Settings
}

// Cache mirrors publications so they survive a restart. Load returns nil, nil on a miss.
type Cache interface {
	Save(ctx context.Context, p models.PublishedSchedule) error
	Load(ctx context.Context, date string) (*models.PublishedSchedule, error)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

func WithSettings(s SettingsSource) Option {
	return func(c *Coordinator) { c.settings = s }
}

func WithCalendar(cal SchoolCalendar) Option {
	return func(c *Coordinator) { c.calendar = cal }
}

func WithCache(cache Cache) Option {
	return func(c *Coordinator) { c.cache = cache }
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// Coordinator is the only component that talks to the solver.
//
// Each generate call for a date takes a fresh token; a reply is published only if its token is
// still the latest issued for that date, so an older reply can never replace a newer one.
type Coordinator struct {
	roster   RosterSource
	demand   DemandSource
	settings SettingsSource
	solver   remote.Solver
	order    models.RoleOrder
	calendar SchoolCalendar
	cache    Cache
	logger   *zap.Logger
	now      func() time.Time

	mu        sync.Mutex
	issued    map[string]uint64
	published map[string]models.PublishedSchedule
	tracked   map[string]struct{}

	cacheMu      sync.Mutex
	cachedTokens map[string]uint64
}

// NewCoordinator wires a coordinator. order must come from NewRoleOrder.
func NewCoordinator(roster RosterSource, demand DemandSource, solver remote.Solver, order models.RoleOrder, logger *zap.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Coordinator{
		roster:    roster,
		demand:    demand,
		solver:    solver,
		order:     order,
		logger:    logger,
		now:       time.Now,
		issued:    make(map[string]uint64),
		published: make(map[string]models.PublishedSchedule),
		tracked:   make(map[string]struct{}),

		cachedTokens: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RoleOrder returns the role order agreed with the solver.
func (c *Coordinator) RoleOrder() models.RoleOrder {
	return models.RoleOrder{Version: c.order.Version, Roles: append([]string(nil), c.order.Roles...)}
}

// Generate builds a solver request for date, submits it and publishes the mapped reply.
// Failures leave the previous publication untouched and are never retried here.
func (c *Coordinator) Generate(ctx context.Context, date string) ([]models.ScheduleAssignment, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return nil, err
	}
	c.track(date)

	roster := c.roster.Snapshot()
	slots, err := c.demand.Snapshot(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load demand for %s: %w", date, err)
	}
	if len(slots) == 0 {
		return nil, &errs.PreconditionError{Message: fmt.Sprintf("no demand defined for %s", date)}
	}

	req, err := c.buildRequest(day, roster, slots)
	if err != nil {
		return nil, err
	}

	token := c.issue(date)
	log := c.logger.With(zap.String("date", date), zap.Uint64("token", token))
	log.Debug("requesting schedule", zap.Int("employees", len(req.Employees)))

	resp, err := c.solver.Solve(ctx, req)
	if err != nil {
		log.Warn("solver call failed; keeping previous schedule", zap.Error(err))
		return nil, err
	}
	assignments, err := MapResponse(resp, roster, c.order)
	if err != nil {
		log.Warn("solver reply rejected; keeping previous schedule", zap.Error(err))
		return nil, err
	}

	if err := c.publish(ctx, date, token, assignments); err != nil {
		log.Info("discarding stale solver reply")
		return nil, err
	}
	log.Info("schedule published", zap.Int("hours", len(assignments)))
	return models.CloneAssignments(assignments), nil
}

func (c *Coordinator) buildRequest(day time.Time, roster []models.Employee, slots []models.DemandSlot) (models.SolverRequest, error) {
	matrix, err := DemandMatrix(slots, c.order)
	if err != nil {
		return models.SolverRequest{}, err
	}
	req := models.SolverRequest{
		Employees:       Summaries(roster),
		Demand:          matrix,
		Roles:           append([]string(nil), c.order.Roles...),
		ContractVersion: c.order.Version,
	}
	if c.calendar != nil {
		req.SchoolInSession = c.calendar.InSession(day)
	}
	if c.settings != nil {
		req.TotalHours = c.settings.Get().TotalHours
	}
	return req, nil
}

func (c *Coordinator) issue(date string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued[date]++
	return c.issued[date]
}

func (c *Coordinator) track(date string) {
	c.mu.Lock()
	c.tracked[date] = struct{}{}
	c.mu.Unlock()
}

// publish swaps in the new assignments if token is still the latest for date, then mirrors them
// to the cache outside c.mu. Cache writes for a date never go backwards in token order.
func (c *Coordinator) publish(ctx context.Context, date string, token uint64, assignments []models.ScheduleAssignment) error {
	c.mu.Lock()
	if c.issued[date] != token {
		c.mu.Unlock()
		return errs.ErrSuperseded
	}
	p := models.PublishedSchedule{
		Date:             date,
		Token:            token,
		RoleOrderVersion: c.order.Version,
		GeneratedAt:      c.now().UTC(),
		Assignments:      models.CloneAssignments(assignments),
	}
	c.published[date] = p
	c.mu.Unlock()

	if c.cache != nil {
		c.mirror(ctx, p.Clone())
	}
	return nil
}

func (c *Coordinator) mirror(ctx context.Context, p models.PublishedSchedule) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	if c.cachedTokens[p.Date] >= p.Token {
		return
	}
	if err := c.cache.Save(ctx, p); err != nil {
		c.logger.Warn("schedule cache write failed", zap.String("date", p.Date), zap.Error(err))
		return
	}
	c.cachedTokens[p.Date] = p.Token
}

// Published returns the latest publication for date, falling back to the cache after a restart.
func (c *Coordinator) Published(ctx context.Context, date string) (models.PublishedSchedule, bool, error) {
	if _, err := models.ParseDate(date); err != nil {
		return models.PublishedSchedule{}, false, err
	}
	c.mu.Lock()
	p, ok := c.published[date]
	c.mu.Unlock()
	if ok {
		return p.Clone(), true, nil
	}
	if c.cache == nil {
		return models.PublishedSchedule{}, false, nil
	}

	cached, err := c.cache.Load(ctx, date)
	if err != nil {
		return models.PublishedSchedule{}, false, &errs.RemoteError{Op: "load cached schedule", Err: err}
	}
	if cached == nil {
		return models.PublishedSchedule{}, false, nil
	}
	c.mu.Lock()
	if _, raced := c.published[date]; !raced {
		c.published[date] = cached.Clone()
	}
	p = c.published[date]
	c.mu.Unlock()
	return p.Clone(), true, nil
}

// TrackedDates returns the dates generate has been asked for, sorted.
func (c *Coordinator) TrackedDates() []string {
	c.mu.Lock()
	dates := make([]string, 0, len(c.tracked))
	for d := range c.tracked {
		dates = append(dates, d)
	}
	c.mu.Unlock()
	sort.Strings(dates)
	return dates
}

// RegenerateAll regenerates every tracked date. Dates without demand are skipped.
func (c *Coordinator) RegenerateAll(ctx context.Context) error {
	var failures []error
	for _, date := range c.TrackedDates() {
		if _, err := c.Generate(ctx, date); err != nil {
			if errs.IsPrecondition(err) || errors.Is(err, errs.ErrSuperseded) {
				continue
			}
			failures = append(failures, fmt.Errorf("%s: %w", date, err))
		}
	}
	return errors.Join(failures...)
}

// Regenerate handles one regeneration request; an empty date means every tracked date.
func (c *Coordinator) Regenerate(ctx context.Context, date string) error {
	if date == "" {
		return c.RegenerateAll(ctx)
	}
	_, err := c.Generate(ctx, date)
	if errs.IsPrecondition(err) || errors.Is(err, errs.ErrSuperseded) {
		return nil
	}
	return err
}

// RosterChanged regenerates every tracked date in line with the caller.
func (c *Coordinator) RosterChanged(ctx context.Context) {
	c.logRegeneration("roster", "", c.Regenerate(ctx, ""))
}

// DemandChanged regenerates date in line with the caller.
func (c *Coordinator) DemandChanged(ctx context.Context, date string) {
	c.logRegeneration("demand", date, c.Regenerate(ctx, date))
}

// SettingsChanged regenerates every tracked date in line with the caller.
func (c *Coordinator) SettingsChanged(ctx context.Context) {
	c.logRegeneration("settings", "", c.Regenerate(ctx, ""))
}

func (c *Coordinator) logRegeneration(reason, date string, err error) {
	if err != nil {
		c.logger.Warn("regeneration failed", zap.String("reason", reason), zap.String("date", date), zap.Error(err))
	}
}
