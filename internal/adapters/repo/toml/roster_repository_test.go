package toml

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newTestRosterRepository(t *testing.T, rosterPath string) *RosterRepository {
	t.Helper()

	config := viper.New()
	config.Set("roster.path", rosterPath)

	repo, err := NewRosterRepository(config, fixedClock{now: time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	return repo
}

func TestRosterRepositoryAttachDetachRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRosterRepository(t, filepath.Join(t.TempDir(), "roster.toml"))

	require.NoError(t, repo.Attach(context.Background(), "1"))
	require.NoError(t, repo.Attach(context.Background(), "2"))

	roster, err := repo.Roster(context.Background())
	require.NoError(t, err)
	assert.True(t, roster.Contains("1"))
	assert.True(t, roster.Contains("2"))
	assert.Len(t, roster.Present, 2)

	require.NoError(t, repo.Detach(context.Background(), "1"))

	roster, err = repo.Roster(context.Background())
	require.NoError(t, err)
	assert.False(t, roster.Contains("1"))
	assert.True(t, roster.Contains("2"))
}

func TestRosterRepositoryAttachIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := newTestRosterRepository(t, filepath.Join(t.TempDir(), "roster.toml"))

	require.NoError(t, repo.Attach(context.Background(), "1"))
	require.NoError(t, repo.Attach(context.Background(), "1"))

	roster, err := repo.Roster(context.Background())
	require.NoError(t, err)
	assert.Len(t, roster.Present, 1)
}

func TestRosterRepositoryDetachUnknownSubjectIsNoop(t *testing.T) {
	t.Parallel()

	repo := newTestRosterRepository(t, filepath.Join(t.TempDir(), "roster.toml"))

	require.NoError(t, repo.Detach(context.Background(), "ghost"))

	roster, err := repo.Roster(context.Background())
	require.NoError(t, err)
	assert.Empty(t, roster.Present)
}

func TestRosterRepositoryPeerCountExcludesSelf(t *testing.T) {
	t.Parallel()

	repo := newTestRosterRepository(t, filepath.Join(t.TempDir(), "roster.toml"))

	require.NoError(t, repo.Attach(context.Background(), "1"))
	require.NoError(t, repo.Attach(context.Background(), "2"))
	require.NoError(t, repo.Attach(context.Background(), "3"))

	peers, err := repo.PeerCount(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 2, peers)

	peers, err = repo.PeerCount(context.Background(), "absent")
	require.NoError(t, err)
	assert.Equal(t, 3, peers)
}

func TestRosterRepositoryMissingFileYieldsEmptyRoster(t *testing.T) {
	t.Parallel()

	repo := newTestRosterRepository(t, filepath.Join(t.TempDir(), "missing", "roster.toml"))

	roster, err := repo.Roster(context.Background())
	require.NoError(t, err)
	assert.Empty(t, roster.Present)

	peers, err := repo.PeerCount(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 0, peers)
}

func TestRosterRepositoryRecordsUpdateTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	repo := newTestRosterRepository(t, filepath.Join(t.TempDir(), "roster.toml"))

	require.NoError(t, repo.Attach(context.Background(), "1"))

	roster, err := repo.Roster(context.Background())
	require.NoError(t, err)
	assert.True(t, roster.UpdatedAt.Equal(now))
}
