package confirm

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	ok, err := Await(context.Background(), Fixed(true).Confirm(context.Background(), "go?"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Await(context.Background(), Fixed(false).Confirm(context.Background(), "go?"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTerminal(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{input: "y\n", expected: true},
		{input: "YES\n", expected: true},
		{input: "n\n", expected: false},
		{input: "\n", expected: false},
		{input: "", expected: false},
		{input: "yes", expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			var out bytes.Buffer
			term := NewTerminal(strings.NewReader(tc.input), &out)
			ok, err := Await(context.Background(), term.Confirm(context.Background(), "Delete employee 1?"))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
			assert.Equal(t, "Delete employee 1? [y/N]: ", out.String())
		})
	}
}

func TestAwait_ContextEnds(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	never := make(chan Answer)
	_, err := Await(ctx, never)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
