package models

import (
	"strings"
	"time"

	"shiftdesk/services/errs"
)

// Job is a job catalog entry.
type Job struct {
	Name string `bson:"name" json:"name"`
}

// Settings are the global scheduling parameters and the job catalog.
type Settings struct {
	TotalHours int       `bson:"totalHours" json:"totalHours"` // weekly cap per employee
	ShowStart  string    `bson:"showStart" json:"showStart"`
	ShowEnd    string    `bson:"showEnd" json:"showEnd"`
	Jobs       []Job     `bson:"jobs" json:"jobs"`
	UpdatedAt  time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Clone returns a copy of s with its own job slice.
func (s Settings) Clone() Settings {
	s.Jobs = append([]Job(nil), s.Jobs...)
	return s
}

// RoleKeys returns the catalog's role keys in catalog order.
func (s Settings) RoleKeys() []string {
	keys := make([]string, len(s.Jobs))
	for i, j := range s.Jobs {
		keys[i] = RoleKey(j.Name)
	}
	return keys
}

// NormalizeParameters validates the scalar settings and returns them with canonical times.
// The job catalog is carried over untouched.
func (s Settings) NormalizeParameters() (Settings, error) {
	out := s.Clone()
	if out.TotalHours <= 0 {
		return s, errs.NewValidation("totalHours", "must be a positive integer")
	}
	if strings.TrimSpace(out.ShowStart) == "" || strings.TrimSpace(out.ShowEnd) == "" {
		return s, errs.NewValidation("showStart", "show start and end are required")
	}
	start, err := ParseClock(out.ShowStart)
	if err != nil {
		return s, errs.NewValidation("showStart", "%v", err)
	}
	end, err := ParseClock(out.ShowEnd)
	if err != nil {
		return s, errs.NewValidation("showEnd", "%v", err)
	}
	if start >= end {
		return s, errs.NewValidation("showEnd", "must be later than show start")
	}
	out.ShowStart = FormatClock(start)
	out.ShowEnd = FormatClock(end)
	return out, nil
}

// ValidJobName reports whether name can be used as a catalog entry.
func ValidJobName(name string) error {
	key := RoleKey(name)
	if key == "" {
		return errs.NewValidation("name", "job name must not be blank")
	}
	if key == hourField {
		return errs.NewValidation("name", "%q is reserved", name)
	}
	return nil
}
