package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"shiftdesk/app"
	"shiftdesk/config"
	"shiftdesk/models"
	"shiftdesk/services/errs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type memRoster struct {
	mu        sync.Mutex
	employees []models.Employee
}

func (m *memRoster) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Employee(nil), m.employees...), nil
}

func (m *memRoster) CreateEmployee(ctx context.Context, d models.EmployeeDraft) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := d.WithID(models.EmployeeID(fmt.Sprint(len(m.employees) + 1)))
	m.employees = append(m.employees, e)
	return e, nil
}

func (m *memRoster) UpdateEmployee(ctx context.Context, id models.EmployeeID, d models.EmployeeDraft) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.employees {
		if m.employees[i].ID == id {
			m.employees[i] = d.WithID(id)
			return m.employees[i], nil
		}
	}
	return models.Employee{}, &errs.NotFoundError{Resource: "employee", ID: id.String()}
}

func (m *memRoster) DeleteEmployee(ctx context.Context, id models.EmployeeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.employees {
		if m.employees[i].ID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return &errs.NotFoundError{Resource: "employee", ID: id.String()}
}

type memDemand struct {
	byDate map[string][]models.DemandSlot
}

func (m *memDemand) GetDemand(ctx context.Context, date string) ([]models.DemandSlot, error) {
	return models.CloneSlots(m.byDate[date]), nil
}

func (m *memDemand) ReplaceDemand(ctx context.Context, date string, slots []models.DemandSlot) error {
	m.byDate[date] = models.CloneSlots(slots)
	return nil
}

type jobSolver struct{}

// Solve staffs every hour with demand by putting each employee on their own job.
func (jobSolver) Solve(ctx context.Context, req models.SolverRequest) (models.SolverResponse, error) {
	out := map[string]map[string][]models.EmployeeID{}
	for hour, row := range req.Demand {
		total := 0
		for _, n := range row {
			total += n
		}
		if total == 0 {
			continue
		}
		perRole := map[string][]models.EmployeeID{}
		for _, e := range req.Employees {
			perRole[e.Job] = append(perRole[e.Job], e.ID)
		}
		out[fmt.Sprint(hour)] = perRole
	}
	return models.SolverResponse{Schedule: out}, nil
}

func age(n int) *int { return &n }

func useTestApp(t *testing.T) (*memRoster, *memDemand) {
	t.Helper()
	rosterSvc := &memRoster{employees: []models.Employee{
		{ID: "1", Name: "Alice", Age: age(30), Job: "Manager", Start: "08:00", End: "16:00"},
		{ID: "2", Name: "Bob", Job: "Server", Start: "09:00", End: "17:00"},
	}}
	demandSvc := &memDemand{byDate: map[string][]models.DemandSlot{}}
	cfg := config.Config{
		DefaultTotalHours:     40,
		DefaultShowStart:      "08:00",
		DefaultShowEnd:        "20:00",
		DefaultJobs:           []string{"Manager", "Server", "Driver"},
		SolverRoleOrder:       []string{"manager", "server", "driver"},
		SolverContractVersion: "v1",
		SchoolDays:            []string{"mon", "tue", "wed", "thu", "fri"},
	}

	prev := newApp
	t.Cleanup(func() { newApp = prev })
	newApp = func(ctx context.Context) (*app.App, error) {
		return app.New(cfg, nil, app.Deps{Roster: rosterSvc, Demand: demandSvc, Solver: jobSolver{}})
	}
	return rosterSvc, demandSvc
}

func execute(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRosterList(t *testing.T) {
	useTestApp(t)

	out, err := execute(newRosterCmd(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
}

func TestRosterEdit_AppliesOnlyGivenFlags(t *testing.T) {
	rosterSvc, _ := useTestApp(t)

	out, err := execute(newRosterCmd(), "", "edit", "1", "--end", "18:00", "--age", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated Alice (1)")

	updated := rosterSvc.employees[0]
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "Manager", updated.Job)
	assert.Equal(t, "08:00", updated.Start)
	assert.Equal(t, "18:00", updated.End)
	assert.Nil(t, updated.Age)
}

func TestRosterEdit_Rejections(t *testing.T) {
	rosterSvc, _ := useTestApp(t)

	_, err := execute(newRosterCmd(), "", "edit", "42", "--name", "Zed")
	assert.Error(t, err)

	_, err = execute(newRosterCmd(), "", "edit", "2", "--job", "Chef")
	assert.Error(t, err)
	assert.Equal(t, "Server", rosterSvc.employees[1].Job)
}

func TestRosterDelete(t *testing.T) {
	t.Run("declined prompt keeps the employee", func(t *testing.T) {
		rosterSvc, _ := useTestApp(t)
		out, err := execute(newRosterCmd(), "n\n", "delete", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "Delete employee 2? [y/N]: ")
		assert.Contains(t, out, "Aborted")
		assert.Len(t, rosterSvc.employees, 2)
	})

	t.Run("accepted prompt deletes", func(t *testing.T) {
		rosterSvc, _ := useTestApp(t)
		out, err := execute(newRosterCmd(), "y\n", "delete", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted employee 2")
		assert.Len(t, rosterSvc.employees, 1)
	})

	t.Run("yes flag skips the prompt", func(t *testing.T) {
		rosterSvc, _ := useTestApp(t)
		out, err := execute(newRosterCmd(), "", "delete", "1", "--yes")
		require.NoError(t, err)
		assert.NotContains(t, out, "[y/N]")
		assert.Len(t, rosterSvc.employees, 1)
	})

	t.Run("missing employee is only a warning", func(t *testing.T) {
		useTestApp(t)
		out, err := execute(newRosterCmd(), "", "delete", "99", "-y")
		require.NoError(t, err)
		assert.Contains(t, out, "already gone")
	})
}

func TestScheduleGenerate(t *testing.T) {
	_, demandSvc := useTestApp(t)

	_, err := execute(newScheduleCmd(), "", "generate", "--date", "2024-05-01")
	assert.Error(t, err, "no demand defined yet")

	demandSvc.byDate["2024-05-01"] = []models.DemandSlot{
		{Hour: "08:00", PerRole: map[string]int{"manager": 1, "server": 1}},
	}
	out, err := execute(newScheduleCmd(), "", "generate", "--date", "2024-05-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Generating schedule for 2024-05-01")
	assert.Contains(t, out, "MANAGER")

	var row string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "08:00") {
			row = line
		}
	}
	require.NotEmpty(t, row)
	assert.Equal(t, []string{"08:00", "Alice", "Bob", "-"}, strings.Fields(row))
}

func TestDemandSetAndShow(t *testing.T) {
	_, demandSvc := useTestApp(t)

	path := filepath.Join(t.TempDir(), "demand.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- hour: 08:00
  Manager: 1
  server: 2
- hour: "9:00"
  driver: 1
`), 0o600))

	out, err := execute(newDemandCmd(), "", "set", "2024-05-01", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 slots for 2024-05-01")
	assert.Equal(t, []models.DemandSlot{
		{Hour: "08:00", PerRole: map[string]int{"manager": 1, "server": 2}},
		{Hour: "09:00", PerRole: map[string]int{"driver": 1}},
	}, demandSvc.byDate["2024-05-01"])

	out, err = execute(newDemandCmd(), "", "show", "2024-05-01")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"HOUR", "MANAGER", "SERVER", "DRIVER"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"08:00", "1", "2", "0"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"09:00", "0", "0", "1"}, strings.Fields(lines[2]))
}

func TestDemandSet_RejectsBadFiles(t *testing.T) {
	_, demandSvc := useTestApp(t)
	dir := t.TempDir()

	testCases := map[string]string{
		"no hour":      "- manager: 1\n",
		"not a number": "- hour: \"08:00\"\n  manager: lots\n",
		"negative":     "- hour: \"08:00\"\n  manager: -1\n",
		"duplicate":    "- hour: \"08:00\"\n- hour: \"08:30\"\n",
	}
	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := execute(newDemandCmd(), "", "set", "2024-05-02", "-f", path)
			assert.Error(t, err)
		})
	}
	assert.NotContains(t, demandSvc.byDate, "2024-05-02")
}
