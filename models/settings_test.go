package models

import (
	"testing"

	"shiftdesk/services/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_NormalizeParameters(t *testing.T) {
	base := Settings{TotalHours: 40, ShowStart: "8:00", ShowEnd: "20:00", Jobs: []Job{{Name: "Manager"}}}

	clean, err := base.NormalizeParameters()
	require.NoError(t, err)
	assert.Equal(t, "08:00", clean.ShowStart)
	assert.Equal(t, base.Jobs, clean.Jobs)

	testCases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{name: "zero total hours", mutate: func(s *Settings) { s.TotalHours = 0 }},
		{name: "missing show start", mutate: func(s *Settings) { s.ShowStart = "" }},
		{name: "invalid show end", mutate: func(s *Settings) { s.ShowEnd = "late" }},
		{name: "inverted window", mutate: func(s *Settings) { s.ShowStart, s.ShowEnd = "20:00", "08:00" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := base.Clone()
			tc.mutate(&s)
			_, err := s.NormalizeParameters()
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestSettings_RoleKeysAndClone(t *testing.T) {
	s := Settings{Jobs: []Job{{Name: "Manager"}, {Name: " Server "}}}
	assert.Equal(t, []string{"manager", "server"}, s.RoleKeys())

	c := s.Clone()
	c.Jobs[0].Name = "Boss"
	assert.Equal(t, "Manager", s.Jobs[0].Name)
}

func TestValidJobName(t *testing.T) {
	assert.NoError(t, ValidJobName("Driver"))
	assert.True(t, errs.IsValidation(ValidJobName("   ")))
	assert.True(t, errs.IsValidation(ValidJobName("Hour")))
}

func TestRoleOrder_Index(t *testing.T) {
	order := RoleOrder{Version: "v1", Roles: []string{"manager", "server"}}
	assert.Equal(t, 1, order.Index("Server"))
	assert.Equal(t, -1, order.Index("driver"))
}
