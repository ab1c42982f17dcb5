package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgraildata/station-registry/station"
)

func TestSaveAndLoadJSON(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	in := []station.Consolidated{
		{
			OfficialName: "YISHUN MRT STATION",
			MRTCodes:     []string{"NS13"},
			Exits:        []station.ExitPoint{{ExitCode: "Exit A", Lat: 1.4295, Lng: 103.8350}},
		},
	}
	require.NoError(t, store.SaveJSON(in, "registry.json"))

	var out []station.Consolidated
	require.NoError(t, store.LoadJSON(&out, "registry.json"))
	assert.Equal(t, in, out)
}

func TestLoadJSONMissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	var out any
	assert.Error(t, store.LoadJSON(&out, "missing.json"))
}

func TestCheckpointRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	cp, err := LoadCheckpoint(store, "checkpoint.json")
	require.NoError(t, err)
	assert.False(t, cp.Seen("YISHUN"))

	cp.RecordMatch("YISHUN", station.RawMatch{
		OfficialName: "YISHUN MRT STATION",
		Codes:        []string{"NS13"},
		Exits:        []station.ExitPoint{{ExitCode: "A", Lat: 1.4295, Lng: 103.8350}},
	})
	cp.RecordUnmatched("UNKNOWN PLACE")
	require.NoError(t, cp.Flush())

	// A fresh load sees both outcomes.
	resumed, err := LoadCheckpoint(store, "checkpoint.json")
	require.NoError(t, err)
	assert.True(t, resumed.Seen("YISHUN"))
	assert.True(t, resumed.Seen("UNKNOWN PLACE"))
	assert.False(t, resumed.Seen("KHATIB"))
	assert.Equal(t, []string{"NS13"}, resumed.Matched["YISHUN"].Codes)
}

func TestCheckpointMatchSupersedesUnmatched(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	cp, err := LoadCheckpoint(store, "checkpoint.json")
	require.NoError(t, err)
	cp.RecordUnmatched("YISHUN")
	cp.RecordMatch("YISHUN", station.RawMatch{OfficialName: "YISHUN MRT STATION", Codes: []string{"NS13"}})

	assert.True(t, cp.Seen("YISHUN"))
	assert.False(t, cp.Unmatched["YISHUN"])
}
