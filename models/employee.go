package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"shiftdesk/services/errs"
)

// EmployeeID is the opaque identifier assigned by the roster service.
// It decodes from either a JSON string or a JSON number and always encodes as a string.
type EmployeeID string

func (id *EmployeeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = EmployeeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("employee id must be a string or number, got %s", string(data))
	}
	*id = EmployeeID(n.String())
	return nil
}

func (id EmployeeID) String() string { return string(id) }

// Employee is a roster entry as stored by the roster service.
type Employee struct {
	ID    EmployeeID `bson:"id" json:"id"`
	Name  string     `bson:"name" json:"name"`
	Age   *int       `bson:"age,omitempty" json:"age,omitempty"`
	Job   string     `bson:"job" json:"job"`
	Start string     `bson:"start" json:"start"` // HH:MM
	End   string     `bson:"end" json:"end"`     // HH:MM
}

// EmployeeDraft is the editable body of an employee, without an id.
type EmployeeDraft struct {
	Name  string `json:"name"`
	Age   *int   `json:"age,omitempty"`
	Job   string `json:"job"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Draft returns the editable fields of e.
func (e Employee) Draft() EmployeeDraft {
	return EmployeeDraft{
		Name:  e.Name,
		Age:   cloneInt(e.Age),
		Job:   e.Job,
		Start: e.Start,
		End:   e.End,
	}
}

// Clone returns a copy of e that shares no memory with it.
func (e Employee) Clone() Employee {
	e.Age = cloneInt(e.Age)
	return e
}

// WithID materialises the draft as an Employee.
func (d EmployeeDraft) WithID(id EmployeeID) Employee {
	return Employee{
		ID:    id,
		Name:  d.Name,
		Age:   cloneInt(d.Age),
		Job:   d.Job,
		Start: d.Start,
		End:   d.End,
	}
}

// Normalize validates the draft and returns it with trimmed strings and canonical HH:MM times.
func (d EmployeeDraft) Normalize() (EmployeeDraft, error) {
	out := EmployeeDraft{
		Name:  strings.TrimSpace(d.Name),
		Age:   cloneInt(d.Age),
		Job:   strings.TrimSpace(d.Job),
		Start: strings.TrimSpace(d.Start),
		End:   strings.TrimSpace(d.End),
	}
	if out.Name == "" {
		return d, errs.NewValidation("name", "is required")
	}
	if out.Job == "" {
		return d, errs.NewValidation("job", "is required")
	}
	if out.Start == "" {
		return d, errs.NewValidation("start", "is required")
	}
	if out.End == "" {
		return d, errs.NewValidation("end", "is required")
	}
	if out.Age != nil && *out.Age < 0 {
		return d, errs.NewValidation("age", "must not be negative")
	}

	start, err := ParseClock(out.Start)
	if err != nil {
		return d, errs.NewValidation("start", "%v", err)
	}
	end, err := ParseClock(out.End)
	if err != nil {
		return d, errs.NewValidation("end", "%v", err)
	}
	if start >= end {
		return d, errs.NewValidation("end", "must be later than start")
	}
	out.Start = FormatClock(start)
	out.End = FormatClock(end)
	return out, nil
}

// EmployeeSummary is the roster entry as sent to the solver.
type EmployeeSummary struct {
	ID    EmployeeID `json:"id"`
	Name  string     `json:"name"`
	Age   *int       `json:"age,omitempty"`
	Job   string     `json:"job"`
	Start string     `json:"start"`
	End   string     `json:"end"`
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
