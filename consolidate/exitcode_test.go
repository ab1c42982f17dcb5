package consolidate

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExitCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A", "Exit A"},
		{"Exit A", "Exit A"},
		{"EXIT   a", "Exit A"},
		{"Exit   b ", "Exit B"},
		{"EXIT1", "Exit 1"},
		{"1", "Exit 1"},
		{"exit 10", "Exit 10"},
		{" C ", "Exit C"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeExitCode(tt.in))
		})
	}
}

func TestNormalizeExitCodeIdempotent(t *testing.T) {
	inputs := []string{"A", "Exit A", "EXIT   a", "EXIT1", "10", "b2", ""}
	for _, in := range inputs {
		once := NormalizeExitCode(in)
		assert.Equal(t, once, NormalizeExitCode(once), "normalize(normalize(%q))", in)
	}
}

func TestNormalizeExitCodeEquivalenceClass(t *testing.T) {
	want := NormalizeExitCode("A")
	assert.Equal(t, want, NormalizeExitCode("Exit A"))
	assert.Equal(t, want, NormalizeExitCode("EXIT   a"))
}

func TestNaturalExitOrder(t *testing.T) {
	codes := []string{"B", "10", "A", "2"}
	for i, c := range codes {
		codes[i] = NormalizeExitCode(c)
	}
	sort.SliceStable(codes, func(i, j int) bool {
		return lessExitCode(codes[i], codes[j])
	})
	assert.Equal(t, []string{"Exit A", "Exit B", "Exit 2", "Exit 10"}, codes)
}

func TestLessExitCodeLettersBeforeNumbers(t *testing.T) {
	assert.True(t, lessExitCode("Exit A", "Exit 1"))
	assert.False(t, lessExitCode("Exit 1", "Exit A"))
	assert.True(t, lessExitCode("Exit 2", "Exit 10"), "numeric, not lexicographic")
	assert.True(t, lessExitCode("Exit A", "Exit B"))
	assert.True(t, lessExitCode("Exit A1", "Exit B2"), "mixed identifiers compare alphabetically")
}
