package consolidate

import (
	"strings"
)

// NormalizeExitCode renders a free-form exit label in the canonical
// "Exit <identifier>" form: "A" -> "Exit A", "Exit   b " -> "Exit B",
// "EXIT1" -> "Exit 1". The function is idempotent.
func NormalizeExitCode(code string) string {
	s := strings.ToUpper(strings.TrimSpace(code))
	s = strings.TrimSpace(strings.TrimPrefix(s, "EXIT"))
	s = strings.TrimSpace(strings.TrimSuffix(s, "EXIT"))
	return "Exit " + s
}

// exitSortKey splits a normalized exit code for natural ordering: exits
// with a non-numeric identifier sort before purely numeric ones; within a
// group, comparison is alphabetical (case-insensitive) or numerical.
func exitSortKey(code string) (numeric bool, alpha string, num int) {
	val := strings.TrimSpace(strings.TrimPrefix(code, "Exit"))
	if n, ok := atoiStrict(val); ok {
		return true, "", n
	}
	return false, strings.ToUpper(val), 0
}

// lessExitCode reports whether a sorts before b in the natural exit order.
func lessExitCode(a, b string) bool {
	aNum, aAlpha, aN := exitSortKey(a)
	bNum, bAlpha, bN := exitSortKey(b)
	if aNum != bNum {
		return !aNum // letters before numbers
	}
	if aNum {
		return aN < bN
	}
	return aAlpha < bAlpha
}

func atoiStrict(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
