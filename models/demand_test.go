package models

import (
	"encoding/json"
	"testing"

	"shiftdesk/services/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemandSlot_FlatJSON(t *testing.T) {
	var slot DemandSlot
	require.NoError(t, json.Unmarshal([]byte(`{"hour":"08:00","Manager":1,"server":2,"driver":0}`), &slot))
	assert.Equal(t, "08:00", slot.Hour)
	assert.Equal(t, map[string]int{"manager": 1, "server": 2, "driver": 0}, slot.PerRole)

	out, err := json.Marshal(slot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hour":"08:00","manager":1,"server":2,"driver":0}`, string(out))
}

func TestDemandSlot_RejectsNonNumericHeadcount(t *testing.T) {
	var slot DemandSlot
	err := json.Unmarshal([]byte(`{"hour":"08:00","manager":"two"}`), &slot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not numeric")
}

func TestBlankSlot(t *testing.T) {
	slot := BlankSlot([]string{"Manager", "server"})
	assert.Equal(t, "00:00", slot.Hour)
	assert.Equal(t, map[string]int{"manager": 0, "server": 0}, slot.PerRole)
	assert.Equal(t, []string{"manager", "server"}, slot.Roles())
}

func TestNormalizeDemand(t *testing.T) {
	t.Run("canonicalises hours and role keys", func(t *testing.T) {
		out, err := NormalizeDemand([]DemandSlot{
			{Hour: "8:00", PerRole: map[string]int{"Manager": 1}},
			{Hour: "09:00", PerRole: map[string]int{"server": 0}},
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "08:00", out[0].Hour)
		assert.Equal(t, 1, out[0].PerRole["manager"])
	})

	t.Run("rejects negative headcount", func(t *testing.T) {
		_, err := NormalizeDemand([]DemandSlot{{Hour: "08:00", PerRole: map[string]int{"server": -1}}})
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("rejects two slots in the same hour", func(t *testing.T) {
		_, err := NormalizeDemand([]DemandSlot{
			{Hour: "08:00", PerRole: map[string]int{"server": 1}},
			{Hour: "08:30", PerRole: map[string]int{"server": 2}},
		})
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "duplicates")
	})

	t.Run("rejects bad hour", func(t *testing.T) {
		_, err := NormalizeDemand([]DemandSlot{{Hour: "8am"}})
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("empty demand is valid", func(t *testing.T) {
		out, err := NormalizeDemand(nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestCloneSlots(t *testing.T) {
	assert.NotNil(t, CloneSlots(nil))

	in := []DemandSlot{{Hour: "08:00", PerRole: map[string]int{"server": 1}}}
	out := CloneSlots(in)
	out[0].PerRole["server"] = 5
	assert.Equal(t, 1, in[0].PerRole["server"])
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2024-05-01")
	assert.NoError(t, err)

	_, err = ParseDate("05/01/2024")
	assert.True(t, errs.IsValidation(err))
}
