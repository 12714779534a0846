package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shiftdesk/models"
	"shiftdesk/services/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2024-05-01" // a Wednesday

type staticRoster []models.Employee

func (r staticRoster) Snapshot() []models.Employee { return append([]models.Employee(nil), r...) }

type staticDemand struct {
	slots map[string][]models.DemandSlot
	err   error
}

func (d staticDemand) Snapshot(ctx context.Context, date string) ([]models.DemandSlot, error) {
	if d.err != nil {
		return nil, d.err
	}
	return models.CloneSlots(d.slots[date]), nil
}

type staticSettings models.Settings

func (s staticSettings) Get() models.Settings { return models.Settings(s).Clone() }

// fakeSolver answers through fn and records every request.
type fakeSolver struct {
	mu       sync.Mutex
	requests []models.SolverRequest
	fn       func(call int, req models.SolverRequest) (models.SolverResponse, error)
}

func (s *fakeSolver) Solve(ctx context.Context, req models.SolverRequest) (models.SolverResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	call := len(s.requests)
	s.mu.Unlock()
	return s.fn(call, req)
}

func (s *fakeSolver) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func respond(schedule map[string]map[string][]models.EmployeeID) func(int, models.SolverRequest) (models.SolverResponse, error) {
	return func(int, models.SolverRequest) (models.SolverResponse, error) {
		return models.SolverResponse{Schedule: schedule}, nil
	}
}

func aliceRoster() staticRoster {
	return staticRoster{{ID: "1", Name: "Alice", Job: "manager", Start: "08:00", End: "16:00"}}
}

func aliceDemand() staticDemand {
	return staticDemand{slots: map[string][]models.DemandSlot{
		testDate: {{Hour: "08:00", PerRole: map[string]int{"manager": 1, "server": 0, "driver": 0}}},
	}}
}

func newTestCoordinator(t *testing.T, solver *fakeSolver, opts ...Option) *Coordinator {
	t.Helper()
	return NewCoordinator(aliceRoster(), aliceDemand(), solver, testOrder(t), nil, opts...)
}

func TestGenerate_ResolvesAliceExample(t *testing.T) {
	solver := &fakeSolver{fn: respond(map[string]map[string][]models.EmployeeID{"8": {"manager": {"1"}}})}
	cal, err := NewWeekdayCalendar([]string{"mon", "tue", "wed", "thu", "fri"})
	require.NoError(t, err)
	coord := newTestCoordinator(t, solver,
		WithCalendar(cal),
		WithSettings(staticSettings{TotalHours: 40, ShowStart: "08:00", ShowEnd: "20:00"}),
	)

	assignments, err := coord.Generate(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, []models.ScheduleAssignment{{
		Hour:    "08:00",
		PerRole: map[string][]string{"manager": {"Alice"}, "server": {}, "driver": {}},
	}}, assignments)

	require.Equal(t, 1, solver.calls())
	req := solver.requests[0]
	assert.Len(t, req.Demand, HoursPerDay)
	assert.Equal(t, []int{1, 0, 0}, req.Demand[8])
	assert.Equal(t, []string{"manager", "server", "driver"}, req.Roles)
	assert.Equal(t, "v1", req.ContractVersion)
	assert.True(t, req.SchoolInSession)
	assert.Equal(t, 40, req.TotalHours)

	published, ok, err := coord.Published(context.Background(), testDate)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, assignments, published.Assignments)
	assert.Equal(t, "v1", published.RoleOrderVersion)
}

func TestGenerate_NoDemandIsPreconditionWithoutSolverCall(t *testing.T) {
	solver := &fakeSolver{fn: respond(map[string]map[string][]models.EmployeeID{})}
	coord := newTestCoordinator(t, solver)

	_, err := coord.Generate(context.Background(), "2024-06-01")
	assert.True(t, errs.IsPrecondition(err))
	assert.Equal(t, 0, solver.calls())
}

func TestGenerate_InvalidDate(t *testing.T) {
	solver := &fakeSolver{fn: respond(nil)}
	coord := newTestCoordinator(t, solver)
	_, err := coord.Generate(context.Background(), "not-a-date")
	assert.True(t, errs.IsValidation(err))
	assert.Empty(t, coord.TrackedDates())
}

func TestGenerate_DemandErrorPropagates(t *testing.T) {
	solver := &fakeSolver{fn: respond(nil)}
	remoteErr := &errs.RemoteError{Op: "get demand", Status: 503}
	coord := NewCoordinator(aliceRoster(), staticDemand{err: remoteErr}, solver, testOrder(t), nil)

	_, err := coord.Generate(context.Background(), testDate)
	assert.True(t, errs.IsRemote(err))
	assert.Equal(t, 0, solver.calls())
}

func TestGenerate_FailureKeepsPreviousSchedule(t *testing.T) {
	solver := &fakeSolver{fn: func(call int, _ models.SolverRequest) (models.SolverResponse, error) {
		switch call {
		case 1:
			return models.SolverResponse{Schedule: map[string]map[string][]models.EmployeeID{"8": {"manager": {"1"}}}}, nil
		case 2:
			return models.SolverResponse{}, &errs.RemoteError{Op: "solve schedule", Status: 500}
		default:
			return models.SolverResponse{Schedule: map[string]map[string][]models.EmployeeID{"8": {"chef": {"1"}}}}, nil
		}
	}}
	coord := newTestCoordinator(t, solver)

	first, err := coord.Generate(context.Background(), testDate)
	require.NoError(t, err)

	_, err = coord.Generate(context.Background(), testDate)
	assert.True(t, errs.IsRemote(err))
	_, err = coord.Generate(context.Background(), testDate)
	assert.True(t, errs.IsMalformed(err))

	published, ok, err := coord.Published(context.Background(), testDate)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, published.Assignments)
}

func TestGenerate_UnknownIDResolvesToMarker(t *testing.T) {
	solver := &fakeSolver{fn: respond(map[string]map[string][]models.EmployeeID{"8": {"manager": {"1", "99"}}})}
	coord := newTestCoordinator(t, solver)

	assignments, err := coord.Generate(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", models.UnknownEmployee}, assignments[0].PerRole["manager"])
}

func TestGenerate_LateReplyIsDiscarded(t *testing.T) {
	firstEntered := make(chan struct{})
	releaseFirst := make(chan struct{})
	solver := &fakeSolver{fn: func(call int, _ models.SolverRequest) (models.SolverResponse, error) {
		if call == 1 {
			close(firstEntered)
			<-releaseFirst
			return models.SolverResponse{Schedule: map[string]map[string][]models.EmployeeID{"8": {"manager": {"stale"}}}}, nil
		}
		return models.SolverResponse{Schedule: map[string]map[string][]models.EmployeeID{"8": {"manager": {"1"}}}}, nil
	}}
	coord := newTestCoordinator(t, solver)

	firstErr := make(chan error, 1)
	go func() {
		_, err := coord.Generate(context.Background(), testDate)
		firstErr <- err
	}()
	<-firstEntered

	second, err := coord.Generate(context.Background(), testDate)
	require.NoError(t, err)

	close(releaseFirst)
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, errs.ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("first generate never returned")
	}

	published, ok, err := coord.Published(context.Background(), testDate)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, published.Assignments)
	assert.Equal(t, []string{"Alice"}, published.Assignments[0].PerRole["manager"])
	assert.Equal(t, uint64(2), published.Token)
}

func TestRegenerateAll_SkipsDatesWithoutDemand(t *testing.T) {
	solver := &fakeSolver{fn: respond(map[string]map[string][]models.EmployeeID{"8": {"manager": {"1"}}})}
	coord := newTestCoordinator(t, solver)

	_, err := coord.Generate(context.Background(), testDate)
	require.NoError(t, err)
	_, err = coord.Generate(context.Background(), "2024-06-01")
	require.Error(t, err)
	assert.Equal(t, []string{testDate, "2024-06-01"}, coord.TrackedDates())

	require.NoError(t, coord.RegenerateAll(context.Background()))
	assert.Equal(t, 2, solver.calls())

	coord.RosterChanged(context.Background())
	coord.SettingsChanged(context.Background())
	coord.DemandChanged(context.Background(), testDate)
	assert.Equal(t, 5, solver.calls())
}

func TestRegenerateAll_CollectsFailures(t *testing.T) {
	solver := &fakeSolver{fn: func(call int, _ models.SolverRequest) (models.SolverResponse, error) {
		if call == 1 {
			return models.SolverResponse{Schedule: map[string]map[string][]models.EmployeeID{}}, nil
		}
		return models.SolverResponse{}, errors.New("solver crashed")
	}}
	coord := newTestCoordinator(t, solver)
	_, err := coord.Generate(context.Background(), testDate)
	require.NoError(t, err)

	err = coord.Regenerate(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), testDate)
}

func TestPublished_FallsBackToCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRedisCache(client, time.Hour)

	fixed := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	solver := &fakeSolver{fn: respond(map[string]map[string][]models.EmployeeID{"8": {"manager": {"1"}}})}
	writer := newTestCoordinator(t, solver, WithCache(cache), WithClock(func() time.Time { return fixed }))
	assignments, err := writer.Generate(context.Background(), testDate)
	require.NoError(t, err)
	assert.True(t, mr.Exists(publishedKeyPrefix+testDate))

	// A restarted coordinator has nothing in memory.
	reader := newTestCoordinator(t, &fakeSolver{fn: respond(nil)}, WithCache(cache))
	published, ok, err := reader.Published(context.Background(), testDate)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, assignments, published.Assignments)
	assert.True(t, fixed.Equal(published.GeneratedAt))

	_, ok, err = reader.Published(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRedisCache(client, time.Minute)

	require.NoError(t, cache.Save(context.Background(), models.PublishedSchedule{Date: testDate, Token: 3}))
	mr.FastForward(2 * time.Minute)

	loaded, err := cache.Load(context.Background(), testDate)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

// slowCache blocks its first Save until release is closed.
type slowCache struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once

	mu    sync.Mutex
	saved map[string]models.PublishedSchedule
}

func newSlowCache() *slowCache {
	return &slowCache{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		saved:   make(map[string]models.PublishedSchedule),
	}
}

func (c *slowCache) Save(ctx context.Context, p models.PublishedSchedule) error {
	first := false
	c.once.Do(func() { first = true })
	if first {
		close(c.entered)
		<-c.release
	}
	c.mu.Lock()
	c.saved[p.Date] = p
	c.mu.Unlock()
	return nil
}

func (c *slowCache) Load(ctx context.Context, date string) (*models.PublishedSchedule, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.saved[date]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func TestPublish_SlowCacheDoesNotBlockReaders(t *testing.T) {
	cache := newSlowCache()
	solver := &fakeSolver{fn: respond(map[string]map[string][]models.EmployeeID{"8": {"manager": {"1"}}})}
	coord := newTestCoordinator(t, solver, WithCache(cache))

	done := make(chan error, 1)
	go func() {
		_, err := coord.Generate(context.Background(), testDate)
		done <- err
	}()
	<-cache.entered

	read := make(chan models.PublishedSchedule, 1)
	go func() {
		p, ok, err := coord.Published(context.Background(), testDate)
		if err == nil && ok {
			read <- p
		}
		close(read)
	}()
	select {
	case p, ok := <-read:
		require.True(t, ok)
		assert.Equal(t, uint64(1), p.Token)
	case <-time.After(2 * time.Second):
		t.Fatal("Published blocked behind the cache write")
	}
	assert.Equal(t, []string{testDate}, coord.TrackedDates())

	close(cache.release)
	require.NoError(t, <-done)
	cached, err := cache.Load(context.Background(), testDate)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, uint64(1), cached.Token)
}

func TestMirror_KeepsNewestToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRedisCache(client, time.Hour)
	coord := newTestCoordinator(t, &fakeSolver{fn: respond(nil)}, WithCache(cache))

	coord.mirror(context.Background(), models.PublishedSchedule{Date: testDate, Token: 2})
	coord.mirror(context.Background(), models.PublishedSchedule{Date: testDate, Token: 1})

	loaded, err := cache.Load(context.Background(), testDate)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, uint64(2), loaded.Token)
}
