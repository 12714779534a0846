package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"shiftdesk/models"
	"shiftdesk/services/errs"
)

// HoursPerDay is the number of demand rows sent to the solver; row h is hour of day h.
const HoursPerDay = 24

// NewRoleOrder builds a role order from configured names, rejecting blanks and duplicates.
func NewRoleOrder(version string, roles []string) (models.RoleOrder, error) {
	if strings.TrimSpace(version) == "" {
		return models.RoleOrder{}, errors.New("role order version is required")
	}
	if len(roles) == 0 {
		return models.RoleOrder{}, errors.New("role order is empty")
	}
	order := models.RoleOrder{Version: version, Roles: make([]string, 0, len(roles))}
	for _, r := range roles {
		key := models.RoleKey(r)
		if key == "" {
			return models.RoleOrder{}, errors.New("role order contains a blank role")
		}
		if order.Index(key) >= 0 {
			return models.RoleOrder{}, fmt.Errorf("role %q listed twice", key)
		}
		order.Roles = append(order.Roles, key)
	}
	return order, nil
}

// DemandMatrix encodes slots as HoursPerDay rows, each ordered by order.Roles.
// Roles outside the order are not sent; hours without a slot are zero rows.
func DemandMatrix(slots []models.DemandSlot, order models.RoleOrder) ([][]int, error) {
	matrix := make([][]int, HoursPerDay)
	for h := range matrix {
		matrix[h] = make([]int, len(order.Roles))
	}
	for _, slot := range slots {
		hour, err := slot.HourOfDay()
		if err != nil {
			return nil, errs.NewValidation("hour", "%v", err)
		}
		for role, n := range slot.PerRole {
			if idx := order.Index(role); idx >= 0 {
				matrix[hour][idx] += n
			}
		}
	}
	return matrix, nil
}

// Summaries converts a roster snapshot into the solver's employee records.
func Summaries(roster []models.Employee) []models.EmployeeSummary {
	out := make([]models.EmployeeSummary, len(roster))
	for i, e := range roster {
		e = e.Clone()
		out[i] = models.EmployeeSummary{
			ID:    e.ID,
			Name:  e.Name,
			Age:   e.Age,
			Job:   models.RoleKey(e.Job),
			Start: e.Start,
			End:   e.End,
		}
	}
	return out
}

// MapResponse resolves the solver's ids against the roster snapshot and returns assignments
// sorted by hour. Every role in the order appears in each hour, empty when unassigned. Ids
// missing from the snapshot resolve to models.UnknownEmployee.
func MapResponse(resp models.SolverResponse, roster []models.Employee, order models.RoleOrder) ([]models.ScheduleAssignment, error) {
	if resp.Schedule == nil {
		return nil, &errs.MalformedResponseError{Op: "map schedule", Err: errors.New("missing schedule")}
	}

	names := make(map[models.EmployeeID]string, len(roster))
	for _, e := range roster {
		names[e.ID] = e.Name
	}

	byHour := make(map[string]models.ScheduleAssignment, len(resp.Schedule))
	for rawHour, roles := range resp.Schedule {
		hour, err := normalizeHourKey(rawHour)
		if err != nil {
			return nil, &errs.MalformedResponseError{Op: "map schedule", Err: err}
		}
		if _, dup := byHour[hour]; dup {
			return nil, &errs.MalformedResponseError{Op: "map schedule", Err: fmt.Errorf("hour %s listed twice", hour)}
		}

		assignment := models.ScheduleAssignment{Hour: hour, PerRole: make(map[string][]string, len(order.Roles))}
		for _, role := range order.Roles {
			assignment.PerRole[role] = []string{}
		}
		for role, ids := range roles {
			key := models.RoleKey(role)
			if order.Index(key) < 0 {
				return nil, &errs.MalformedResponseError{Op: "map schedule", Err: fmt.Errorf("unknown role %q at hour %s", role, hour)}
			}
			resolved := make([]string, 0, len(ids))
			for _, id := range ids {
				name, ok := names[id]
				if !ok {
					name = models.UnknownEmployee
				}
				resolved = append(resolved, name)
			}
			assignment.PerRole[key] = resolved
		}
		byHour[hour] = assignment
	}

	hours := make([]string, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Strings(hours)

	out := make([]models.ScheduleAssignment, 0, len(hours))
	for _, h := range hours {
		out = append(out, byHour[h])
	}
	return out, nil
}

// normalizeHourKey accepts "8", "08" or "08:00" and returns the zero-padded HH:MM key.
func normalizeHourKey(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ":") {
		mins, err := models.ParseClock(raw)
		if err != nil {
			return "", fmt.Errorf("hour key %q: %w", raw, err)
		}
		return models.FormatClock(mins), nil
	}
	h, err := strconv.Atoi(raw)
	if err != nil || h < 0 || h >= HoursPerDay {
		return "", fmt.Errorf("hour key %q is not an hour of day", raw)
	}
	return models.HourKey(h), nil
}

// Window keeps the assignments whose hour lies in [showStart, showEnd).
func Window(assignments []models.ScheduleAssignment, showStart, showEnd string) ([]models.ScheduleAssignment, error) {
	start, err := models.ParseClock(showStart)
	if err != nil {
		return nil, errs.NewValidation("showStart", "%v", err)
	}
	end, err := models.ParseClock(showEnd)
	if err != nil {
		return nil, errs.NewValidation("showEnd", "%v", err)
	}
	out := make([]models.ScheduleAssignment, 0, len(assignments))
	for _, a := range assignments {
		mins, err := models.ParseClock(a.Hour)
		if err != nil {
			continue
		}
		if mins >= start && mins < end {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}
