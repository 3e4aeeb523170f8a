package site

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/israil64/laptop-galaxy/internal/models"
)

func TestSessionRoundTrip(t *testing.T) {
	session := NewSession(filepath.Join(t.TempDir(), "profile.json"))

	require.False(t, session.Authenticated())
	require.Nil(t, session.Load())

	user := models.PublicUser{ID: "7", Username: "ravi", Email: "ravi@example.com"}
	require.NoError(t, session.Save(user))

	require.True(t, session.Authenticated())
	loaded := session.Load()
	require.NotNil(t, loaded)
	require.Equal(t, user, *loaded)

	require.NoError(t, session.Clear())
	require.False(t, session.Authenticated())

	// Clearing an already-cleared session is fine.
	require.NoError(t, session.Clear())
}
