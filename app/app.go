// Package app assembles the stores and the schedule coordinator from configuration.
package app

import (
	"context"
	"fmt"

	"shiftdesk/config"
	"shiftdesk/models"
	"shiftdesk/services/demand"
	"shiftdesk/services/remote"
	"shiftdesk/services/roster"
	"shiftdesk/services/schedule"
	"shiftdesk/services/settings"

	"go.uber.org/zap"
)

// Notifier receives every confirmed change that affects published schedules.
type Notifier interface {
	roster.ChangeNotifier
	demand.ChangeNotifier
	settings.ChangeNotifier
}

// Deps are the optional collaborators of the app.
type Deps struct {
	SettingsRepo settings.Repository
	Cache        schedule.Cache
	Roster       remote.RosterService
	Demand       remote.DemandService
	Solver       remote.Solver
}

// App holds the wired stores.
type App struct {
	Settings    *settings.Store
	Roster      *roster.Store
	Demand      *demand.Store
	Coordinator *schedule.Coordinator
}

// DefaultSettings builds the initial settings from configuration.
func DefaultSettings(cfg config.Config) models.Settings {
	jobs := make([]models.Job, len(cfg.DefaultJobs))
	for i, name := range cfg.DefaultJobs {
		jobs[i] = models.Job{Name: name}
	}
	return models.Settings{
		TotalHours: cfg.DefaultTotalHours,
		ShowStart:  cfg.DefaultShowStart,
		ShowEnd:    cfg.DefaultShowEnd,
		Jobs:       jobs,
	}
}

// New wires the stores and the coordinator. Remote clients missing from deps are built from cfg.
// The coordinator regenerates in line with mutations until UseNotifier installs another trigger.
func New(cfg config.Config, logger *zap.Logger, deps Deps) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Roster == nil {
		deps.Roster = remote.NewRosterClient(cfg.RosterServiceURL, cfg.RemoteTimeout, logger.Named("roster-client"))
	}
	if deps.Demand == nil {
		deps.Demand = remote.NewDemandClient(cfg.DemandServiceURL, cfg.RemoteTimeout, logger.Named("demand-client"))
	}
	if deps.Solver == nil {
		deps.Solver = remote.NewSolverClient(cfg.SolverURL, cfg.SolverTimeout, logger.Named("solver-client"))
	}

	var settingsOpts []settings.Option
	if deps.SettingsRepo != nil {
		settingsOpts = append(settingsOpts, settings.WithRepository(deps.SettingsRepo))
	}
	settingsStore, err := settings.NewStore(DefaultSettings(cfg), logger.Named("settings"), settingsOpts...)
	if err != nil {
		return nil, err
	}

	rosterStore := roster.NewStore(deps.Roster, logger.Named("roster"), roster.WithJobCatalog(settingsStore))
	settingsStore.UseReferences(rosterStore)
	demandStore := demand.NewStore(deps.Demand, logger.Named("demand"), demand.WithRoleCatalog(settingsStore))

	order, err := schedule.NewRoleOrder(cfg.SolverContractVersion, cfg.SolverRoleOrder)
	if err != nil {
		return nil, fmt.Errorf("solver role order: %w", err)
	}
	calendar, err := schedule.NewWeekdayCalendar(cfg.SchoolDays)
	if err != nil {
		return nil, fmt.Errorf("school days: %w", err)
	}
	coordOpts := []schedule.Option{
		schedule.WithSettings(settingsStore),
		schedule.WithCalendar(calendar),
	}
	if deps.Cache != nil {
		coordOpts = append(coordOpts, schedule.WithCache(deps.Cache))
	}
	coordinator := schedule.NewCoordinator(rosterStore, demandStore, deps.Solver, order, logger.Named("coordinator"), coordOpts...)

	a := &App{
		Settings:    settingsStore,
		Roster:      rosterStore,
		Demand:      demandStore,
		Coordinator: coordinator,
	}
	a.UseNotifier(coordinator)
	return a, nil
}

// UseNotifier routes change notifications of all three stores to n.
func (a *App) UseNotifier(n Notifier) {
	a.Roster.UseNotifier(n)
	a.Demand.UseNotifier(n)
	a.Settings.UseNotifier(n)
}

// Warm loads persisted settings and the roster. A roster failure is returned but leaves the
// app usable with an empty cache.
func (a *App) Warm(ctx context.Context) error {
	if err := a.Settings.Load(ctx); err != nil {
		return err
	}
	_, err := a.Roster.List(ctx)
	return err
}
