package roster

import (
	"context"
	"testing"

	"shiftdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditSession_NewCreates(t *testing.T) {
	remote := &fakeRoster{}
	store := NewStore(remote, nil)

	session := NewEmployeeSession()
	_, ok := session.Target()
	assert.False(t, ok)

	session.Draft = alice()
	created, err := session.Save(context.Background(), store)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, store.Snapshot(), 1)
}

func TestEditSession_EditUpdatesTarget(t *testing.T) {
	remote := &fakeRoster{}
	store := NewStore(remote, nil)
	created, err := store.Create(context.Background(), alice())
	require.NoError(t, err)

	session := EditEmployeeSession(created)
	id, ok := session.Target()
	require.True(t, ok)
	assert.Equal(t, created.ID, id)
	assert.Equal(t, "Alice", session.Draft.Name)

	session.Draft.Name = "Alicia"
	updated, err := session.Save(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, []models.Employee{updated}, store.Snapshot())
}

func TestEditSession_ReplacingDiscardsDraft(t *testing.T) {
	session := EditEmployeeSession(models.Employee{ID: "1", Name: "Alice"})
	session.Draft.Name = "unsaved"

	session = NewEmployeeSession()
	_, ok := session.Target()
	assert.False(t, ok)
	assert.Empty(t, session.Draft.Name)
}
