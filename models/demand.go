package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"shiftdesk/services/errs"
)

// DateLayout is the calendar date format used to key demand and schedules.
const DateLayout = "2006-01-02"

// hourField is the only non-role key of a flat demand slot.
const hourField = "hour"

// RoleKey normalises a job name into the key used for demand and schedules.
func RoleKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, errs.NewValidation("date", "%q is not a YYYY-MM-DD date", date)
	}
	return t, nil
}

// DemandSlot is the required headcount per role for one hour of a date.
// On the wire it is flat: {"hour":"08:00","manager":1,"server":2}.
type DemandSlot struct {
	Hour    string         `bson:"hour"`
	PerRole map[string]int `bson:"perRole"`
}

func (s DemandSlot) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(s.PerRole)+1)
	for role, n := range s.PerRole {
		flat[role] = n
	}
	flat[hourField] = s.Hour
	return json.Marshal(flat)
}

func (s *DemandSlot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := DemandSlot{PerRole: make(map[string]int, len(raw))}
	for key, value := range raw {
		if key == hourField {
			if err := json.Unmarshal(value, &out.Hour); err != nil {
				return fmt.Errorf("demand hour must be a string: %w", err)
			}
			continue
		}
		var n int
		if err := json.Unmarshal(value, &n); err != nil {
			return fmt.Errorf("headcount for %q is not numeric: %s", key, string(value))
		}
		out.PerRole[RoleKey(key)] = n
	}
	*s = out
	return nil
}

// Clone returns a deep copy of s.
func (s DemandSlot) Clone() DemandSlot {
	out := DemandSlot{Hour: s.Hour, PerRole: make(map[string]int, len(s.PerRole))}
	for role, n := range s.PerRole {
		out.PerRole[role] = n
	}
	return out
}

// HourOfDay returns the hour bucket of the slot.
func (s DemandSlot) HourOfDay() (int, error) {
	mins, err := ParseClock(s.Hour)
	if err != nil {
		return 0, err
	}
	return mins / 60, nil
}

// Roles returns the slot's role keys in sorted order.
func (s DemandSlot) Roles() []string {
	roles := make([]string, 0, len(s.PerRole))
	for role := range s.PerRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// BlankSlot returns a midnight slot with zero headcount for every role.
func BlankSlot(roles []string) DemandSlot {
	slot := DemandSlot{Hour: "00:00", PerRole: make(map[string]int, len(roles))}
	for _, role := range roles {
		slot.PerRole[RoleKey(role)] = 0
	}
	return slot
}

// NormalizeDemand validates a full day of demand and returns canonical copies of the slots.
// Headcounts must be non-negative and no two slots may share an hour of day.
func NormalizeDemand(slots []DemandSlot) ([]DemandSlot, error) {
	out := make([]DemandSlot, 0, len(slots))
	seen := make(map[int]int, len(slots))
	for i, slot := range slots {
		mins, err := ParseClock(slot.Hour)
		if err != nil {
			return nil, errs.NewValidation(fmt.Sprintf("slots[%d].hour", i), "%v", err)
		}
		hour := mins / 60
		if prev, dup := seen[hour]; dup {
			return nil, errs.NewValidation(fmt.Sprintf("slots[%d].hour", i),
				"hour %s duplicates slots[%d]", HourKey(hour), prev)
		}
		seen[hour] = i

		clean := DemandSlot{Hour: FormatClock(mins), PerRole: make(map[string]int, len(slot.PerRole))}
		for role, n := range slot.PerRole {
			key := RoleKey(role)
			if key == "" {
				return nil, errs.NewValidation(fmt.Sprintf("slots[%d]", i), "role name is blank")
			}
			if n < 0 {
				return nil, errs.NewValidation(fmt.Sprintf("slots[%d].%s", i, key), "headcount must not be negative")
			}
			clean.PerRole[key] = n
		}
		out = append(out, clean)
	}
	return out, nil
}

// CloneSlots deep-copies a slot sequence. A nil input yields an empty, non-nil slice.
func CloneSlots(slots []DemandSlot) []DemandSlot {
	out := make([]DemandSlot, len(slots))
	for i, s := range slots {
		out[i] = s.Clone()
	}
	return out
}

// DemandDocument is the persisted demand of one date.
type DemandDocument struct {
	Date      string       `bson:"date" json:"date"`
	Slots     []DemandSlot `bson:"slots" json:"slots"`
	UpdatedAt time.Time    `bson:"updatedAt" json:"updatedAt"`
}
