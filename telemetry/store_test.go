package telemetry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "db", "matches.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_MatchLifecycle(t *testing.T) {
	s := openTestStore(t)
	started := time.UnixMilli(1_700_000_000_000)

	require.NoError(t, s.StartMatch(Match{
		ID: "m1", Player: "brood", Race: "zerg", Map: "Abyssal Reef", Profile: "balanced", StartedAt: started,
	}))

	m, err := s.Match("m1")
	require.NoError(t, err)
	assert.Equal(t, "zerg", m.Race)
	assert.Equal(t, "Abyssal Reef", m.Map)
	assert.True(t, m.StartedAt.Equal(started))
	assert.True(t, m.FinishedAt.IsZero())
	assert.Equal(t, "", m.Result)

	finished := started.Add(12 * time.Minute)
	require.NoError(t, s.FinishMatch("m1", "victory", finished))

	m, err = s.Match("m1")
	require.NoError(t, err)
	assert.Equal(t, "victory", m.Result)
	assert.True(t, m.FinishedAt.Equal(finished))
}

func TestStore_Samples(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.StartMatch(Match{ID: "m1", Player: "brood", Race: "zerg", Map: "m", Profile: "p", StartedAt: time.Now()}))

	require.NoError(t, s.RecordSample("m1", Sample{Time: 20, Workers: 14, MineralRate: 500}))
	require.NoError(t, s.RecordSample("m1", Sample{Time: 10, Workers: 12}))

	got, err := s.Samples("m1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 10.0, got[0].Time)
	assert.Equal(t, 14, got[1].Workers)
	assert.Equal(t, 500.0, got[1].MineralRate)

	none, err := s.Samples("other")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_UnknownMatch(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Match("nope")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.ErrorIs(t, s.FinishMatch("nope", "defeat", time.Now()), ErrNoMatch)
	assert.Error(t, s.RecordSample("nope", Sample{}), "foreign key rejects samples for unknown matches")
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.db")
	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.StartMatch(Match{ID: "m1", Player: "p", Race: "terran", Map: "m", Profile: "marines", StartedAt: time.Now()}))
	require.NoError(t, s.Close())

	s, err = OpenStore(path)
	require.NoError(t, err)
	defer s.Close()
	m, err := s.Match("m1")
	require.NoError(t, err)
	assert.Equal(t, "marines", m.Profile)
}

func TestOpenStore_EmptyPath(t *testing.T) {
	_, err := OpenStore("")
	assert.Error(t, err)
}
