package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgraildata/station-registry/station"
)

// Latitude offsets for test distances (1 degree of latitude ~ 111.2km).
const (
	lat50m  = 0.00045
	lat200m = 0.0018
	lat750m = 0.00675
	lat5km  = 0.045
)

func exit(code string, lat, lng float64) station.ExitPoint {
	return station.ExitPoint{ExitCode: code, Lat: lat, Lng: lng}
}

func TestConsolidateCodeOverlapMerge(t *testing.T) {
	c := New(DefaultConfig())
	matches := []station.RawMatch{
		{
			OfficialName: "YISHUN MRT STATION",
			Codes:        []string{"NS13"},
			Exits:        []station.ExitPoint{exit("A", 1.4295, 103.8350)},
		},
		{
			OfficialName: "YISHUN MRT STATION",
			Codes:        []string{"NS13", "NS14"},
			Exits:        []station.ExitPoint{exit("B", 1.4295+lat50m, 103.8350)},
		},
	}

	out := c.Consolidate(matches)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"NS13", "NS14"}, out[0].MRTCodes)
	require.Len(t, out[0].Exits, 2)
	assert.Equal(t, "Exit A", out[0].Exits[0].ExitCode)
	assert.Equal(t, "Exit B", out[0].Exits[1].ExitCode)
}

func TestConsolidateBaseNameMergesInterchange(t *testing.T) {
	// The MRT and LRT halves of Bukit Panjang arrive as separate records
	// with disjoint code sets; the shared base name fuses them.
	c := New(DefaultConfig())
	matches := []station.RawMatch{
		{
			OfficialName: "BUKIT PANJANG MRT STATION",
			Codes:        []string{"DT1"},
			Exits:        []station.ExitPoint{exit("A", 1.3782, 103.7630)},
		},
		{
			OfficialName: "BUKIT PANJANG LRT STATION",
			Codes:        []string{"BP1"},
			Exits:        []station.ExitPoint{exit("B", 1.3782+lat200m, 103.7630)},
		},
	}

	out := c.Consolidate(matches)
	require.Len(t, out, 1)
	assert.Equal(t, "BUKIT PANJANG MRT STATION", out[0].OfficialName)
	assert.Equal(t, []string{"BP1", "DT1"}, out[0].MRTCodes)
	assert.Len(t, out[0].Exits, 2)
}

func TestConsolidateExactNameTightProximity(t *testing.T) {
	c := New(DefaultConfig())
	matches := []station.RawMatch{
		{
			OfficialName: "OUTRAM PARK MRT STATION",
			Codes:        []string{"EW16"},
			Exits:        []station.ExitPoint{exit("A", 1.2802, 103.8396)},
		},
		{
			OfficialName: "OUTRAM PARK MRT STATION",
			Codes:        []string{"NE3"},
			Exits:        []station.ExitPoint{exit("B", 1.2802+lat200m, 103.8396)},
		},
	}

	out := c.Consolidate(matches)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"EW16", "NE3"}, out[0].MRTCodes)
}

func TestConsolidateNoFalseMerge(t *testing.T) {
	c := New(DefaultConfig())
	matches := []station.RawMatch{
		{
			OfficialName: "YISHUN MRT STATION",
			Codes:        []string{"NS13"},
			Exits:        []station.ExitPoint{exit("A", 1.4295, 103.8350)},
		},
		{
			OfficialName: "SEMBAWANG MRT STATION",
			Codes:        []string{"NS11"},
			Exits:        []station.ExitPoint{exit("A", 1.4295+lat5km, 103.8350)},
		},
	}

	out := c.Consolidate(matches)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"NS13"}, out[0].MRTCodes)
	assert.Equal(t, []string{"NS11"}, out[1].MRTCodes)
}

func TestConsolidateDuplicateExitSuppression(t *testing.T) {
	// Both records report an exit normalizing to "Exit A"; the first
	// processed keeps its coordinates.
	c := New(DefaultConfig())
	matches := []station.RawMatch{
		{
			OfficialName: "YISHUN MRT STATION",
			Codes:        []string{"NS13"},
			Exits:        []station.ExitPoint{exit("A", 1.4295, 103.8350)},
		},
		{
			OfficialName: "YISHUN MRT STATION",
			Codes:        []string{"NS13"},
			Exits:        []station.ExitPoint{exit("EXIT A", 1.4295+lat50m, 103.8351)},
		},
	}

	out := c.Consolidate(matches)
	require.Len(t, out, 1)
	require.Len(t, out[0].Exits, 1)
	assert.Equal(t, "Exit A", out[0].Exits[0].ExitCode)
	assert.Equal(t, 1.4295, out[0].Exits[0].Lat, "first-seen coordinates win")
}

func TestConsolidateDedupesExitsWithinSingleMatch(t *testing.T) {
	c := New(DefaultConfig())
	matches := []station.RawMatch{
		{
			OfficialName: "YISHUN MRT STATION",
			Codes:        []string{"NS13"},
			Exits: []station.ExitPoint{
				exit("A", 1.4295, 103.8350),
				exit("Exit A", 1.4296, 103.8351),
				exit("1", 1.4297, 103.8352),
			},
		},
	}

	out := c.Consolidate(matches)
	require.Len(t, out, 1)
	require.Len(t, out[0].Exits, 2)
	assert.Equal(t, "Exit A", out[0].Exits[0].ExitCode)
	assert.Equal(t, "Exit 1", out[0].Exits[1].ExitCode)
}

func TestConsolidateExitsNaturallySorted(t *testing.T) {
	c := New(DefaultConfig())
	matches := []station.RawMatch{
		{
			OfficialName: "DHOBY GHAUT MRT STATION",
			Codes:        []string{"NS24"},
			Exits: []station.ExitPoint{
				exit("B", 1.2990, 103.8455),
				exit("10", 1.2991, 103.8456),
				exit("A", 1.2992, 103.8457),
				exit("2", 1.2993, 103.8458),
			},
		},
	}

	out := c.Consolidate(matches)
	require.Len(t, out, 1)
	codes := make([]string, len(out[0].Exits))
	for i, ex := range out[0].Exits {
		codes[i] = ex.ExitCode
	}
	assert.Equal(t, []string{"Exit A", "Exit B", "Exit 2", "Exit 10"}, codes)
}

func TestConsolidateIsOrderDependent(t *testing.T) {
	// The greedy scan never revisits a merge, so which records fuse depends
	// on input order. Three records share a code and sit 750m apart in a
	// line; the middle one joins whichever neighbour was seen first. This
	// pins the accepted trade-off so a future union-find refactor shows up
	// as a deliberate change.
	a := station.RawMatch{
		OfficialName: "ALPHA STATION",
		Codes:        []string{"NS1"},
		Exits: []station.ExitPoint{
			exit("A", 1.3000, 103.8000),
			exit("B", 1.3000, 103.8000),
		},
	}
	b := station.RawMatch{
		OfficialName: "BRAVO STATION",
		Codes:        []string{"NS1"},
		Exits:        []station.ExitPoint{exit("C", 1.3000+lat750m, 103.8000)},
	}
	cc := station.RawMatch{
		OfficialName: "CHARLIE STATION",
		Codes:        []string{"NS1"},
		Exits:        []station.ExitPoint{exit("D", 1.3000+2*lat750m, 103.8000)},
	}

	cons := New(DefaultConfig())

	out1 := cons.Consolidate([]station.RawMatch{a, b, cc})
	require.Len(t, out1, 2)
	assert.Equal(t, "ALPHA STATION", out1[0].OfficialName)
	assert.Len(t, out1[0].Exits, 3, "bravo fused with alpha")
	assert.Equal(t, "CHARLIE STATION", out1[1].OfficialName)

	out2 := cons.Consolidate([]station.RawMatch{b, cc, a})
	require.Len(t, out2, 2)
	assert.Equal(t, "BRAVO STATION", out2[0].OfficialName)
	require.Len(t, out2[0].Exits, 2, "bravo fused with charlie instead")
	assert.Equal(t, "Exit C", out2[0].Exits[0].ExitCode)
	assert.Equal(t, "Exit D", out2[0].Exits[1].ExitCode)
	assert.Equal(t, "ALPHA STATION", out2[1].OfficialName)
}

func TestConsolidateNoSharedCodesAcrossOutput(t *testing.T) {
	// Post-hoc invariant check over a realistic mixed input: no code may
	// appear in two output stations.
	c := New(DefaultConfig())
	matches := []station.RawMatch{
		{OfficialName: "YISHUN MRT STATION", Codes: []string{"NS13"}, Exits: []station.ExitPoint{exit("A", 1.4295, 103.8350)}},
		{OfficialName: "YISHUN MRT STATION", Codes: []string{"NS13", "NS14"}, Exits: []station.ExitPoint{exit("B", 1.4296, 103.8351)}},
		{OfficialName: "BUKIT PANJANG MRT STATION", Codes: []string{"DT1"}, Exits: []station.ExitPoint{exit("A", 1.3782, 103.7630)}},
		{OfficialName: "BUKIT PANJANG LRT STATION", Codes: []string{"BP1"}, Exits: []station.ExitPoint{exit("1", 1.3784, 103.7631)}},
		{OfficialName: "SEMBAWANG MRT STATION", Codes: []string{"NS11"}, Exits: []station.ExitPoint{exit("A", 1.4491, 103.8201)}},
	}

	out := c.Consolidate(matches)
	seen := map[string]string{}
	for _, s := range out {
		for _, code := range s.MRTCodes {
			if prev, dup := seen[code]; dup {
				t.Fatalf("code %s appears in both %q and %q", code, prev, s.OfficialName)
			}
			seen[code] = s.OfficialName
		}
	}
}

func TestConsolidateEmptyInput(t *testing.T) {
	c := New(DefaultConfig())
	assert.Empty(t, c.Consolidate(nil))
}
