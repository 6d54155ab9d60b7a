package config

import (
	"os"
	"path/filepath"
	"testing"

	"front-auditor/lib/testutil"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	return NewStore(filepath.Join(t.TempDir(), FileName), testutil.NewTelemetryRecorder(t))
}

func TestLoadMissingWritesDefaults(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Load())

	cfg := store.Get()
	require.Empty(t, cfg.LastUsernameSession)
	require.Empty(t, cfg.AuthToken)
	require.Equal(t, DefaultViewState, cfg.StaticFormFields[KeyViewState])
	require.Equal(t, DefaultButtonContext, cfg.StaticFormFields[KeyButtonContext])
	require.False(t, store.IsAuthenticated())

	contents, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	require.Contains(t, string(contents), `"lastUsernameSession": null`)
	require.Contains(t, string(contents), `"ASPXAUTH": null`)
}

func TestLoadCorruptFallsBackToDefaults(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
	}{
		{name: "garbage", contents: "{not json"},
		{name: "array", contents: "[1, 2]"},
		{name: "null", contents: "null"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			recorder := testutil.NewTelemetryRecorder(t)
			store := NewStore(filepath.Join(t.TempDir(), FileName), recorder)
			require.NoError(t, os.WriteFile(store.Path(), []byte(test.contents), 0600))

			require.NoError(t, store.Load())
			require.False(t, store.IsAuthenticated())
			require.Equal(t, DefaultButtonContext, store.Get().StaticFormFields[KeyButtonContext])
			require.Len(t, recorder.Events("warning"), 1)
		})
	}
}

func TestLoadUnwritableKeepsDefaultsInMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	// parent is a regular file so the directory cannot be created
	store := NewStore(filepath.Join(blocker, FileName), testutil.NewTelemetryRecorder(t))
	require.Error(t, store.Load())
	require.Equal(t, DefaultViewState, store.Get().StaticFormFields[KeyViewState])
}

func TestSetAuthRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Load())
	require.NoError(t, store.SetAuth("alice", "ABC123"))
	require.True(t, store.IsAuthenticated())

	restarted := NewStore(store.Path(), testutil.NewTelemetryRecorder(t))
	require.NoError(t, restarted.Load())
	cfg := restarted.Get()
	require.Equal(t, "alice", cfg.LastUsernameSession)
	require.Equal(t, "ABC123", cfg.AuthToken)
	require.True(t, restarted.IsAuthenticated())
}

func TestSetAuthIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{
		"lastUsernameSession": null,
		"ASPXAUTH": null,
		"VIEWSTATE": "vs",
		"BUTTON_CONTEXT": "login",
		"printer": {"name": "HP LaserJet", "copies": 2}
	}`), 0600))
	require.NoError(t, store.Load())

	require.NoError(t, store.SetAuth("alice", "ABC123"))
	first, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	require.NoError(t, store.SetAuth("alice", "ABC123"))
	second, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
	require.Contains(t, string(second), `"HP LaserJet"`)
}

func TestSetAuthPreservesConcurrentKeys(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Load())

	// another process adds a key after we loaded
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"extra": "kept", "VIEWSTATE": "other"}`), 0600))

	require.NoError(t, store.SetAuth("bob", "T0K3N"))
	cfg := store.Get()
	require.Equal(t, "kept", cfg.StaticFormFields["extra"])
	require.Equal(t, "other", cfg.StaticFormFields[KeyViewState])
	require.Equal(t, "bob", cfg.LastUsernameSession)
}

func TestGetReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Load())

	cfg := store.Get()
	cfg.StaticFormFields[KeyViewState] = "mutated"
	require.Equal(t, DefaultViewState, store.Get().StaticFormFields[KeyViewState])
}
