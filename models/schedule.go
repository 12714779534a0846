package models

import "time"

// UnknownEmployee is shown in place of a solver-assigned id that is not in the roster snapshot.
const UnknownEmployee = "(unknown)"

// RoleOrder is the versioned, explicit role order shared with the solver. Demand rows are
// encoded in this order; it never follows catalog iteration order.
type RoleOrder struct {
	Version string   `json:"version"`
	Roles   []string `json:"roles"`
}

// Index returns the position of role in the order, or -1.
func (o RoleOrder) Index(role string) int {
	key := RoleKey(role)
	for i, r := range o.Roles {
		if r == key {
			return i
		}
	}
	return -1
}

// SolverRequest is the body of POST /api/schedule.
type SolverRequest struct {
	Employees       []EmployeeSummary `json:"employees"`
	Demand          [][]int           `json:"demand"`
	SchoolInSession bool              `json:"school_in_session"`
	Roles           []string          `json:"roles"`
	ContractVersion string            `json:"contract_version"`
	TotalHours      int               `json:"total_hours,omitempty"`
}

// SolverResponse is the decoded solver reply: hour key -> role -> employee ids.
// Fields the coordinator does not use (shifts, hours_per_person, ...) are ignored.
type SolverResponse struct {
	Schedule map[string]map[string][]EmployeeID `json:"schedule"`
}

// ScheduleAssignment is one display-ready hour of a published schedule.
// PerRole holds resolved employee names in solver order.
type ScheduleAssignment struct {
	Hour    string              `json:"hour"`
	PerRole map[string][]string `json:"perRole"`
}

// Clone returns a deep copy of a.
func (a ScheduleAssignment) Clone() ScheduleAssignment {
	out := ScheduleAssignment{Hour: a.Hour, PerRole: make(map[string][]string, len(a.PerRole))}
	for role, names := range a.PerRole {
		out.PerRole[role] = append([]string{}, names...)
	}
	return out
}

// PublishedSchedule is the latest successful generation for a date.
type PublishedSchedule struct {
	Date             string               `json:"date"`
	Token            uint64               `json:"token"`
	RoleOrderVersion string               `json:"roleOrderVersion"`
	GeneratedAt      time.Time            `json:"generatedAt"`
	Assignments      []ScheduleAssignment `json:"assignments"`
}

// Clone returns a deep copy of p.
func (p PublishedSchedule) Clone() PublishedSchedule {
	p.Assignments = CloneAssignments(p.Assignments)
	return p
}

// CloneAssignments deep-copies an assignment sequence.
func CloneAssignments(in []ScheduleAssignment) []ScheduleAssignment {
	out := make([]ScheduleAssignment, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

// RegeneratePayload is the queued regeneration request. An empty Date means every tracked date.
type RegeneratePayload struct {
	Reason string `json:"reason"`
	Date   string `json:"date,omitempty"`
}
