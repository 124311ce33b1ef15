package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Selection is the ordered list of years chosen by the user. Order matters:
// a year's position decides its color on both charts.
type Selection []int

// ParseSelection converts raw form values into years, skipping anything that
// is not an integer. Comma separated values are split ("2022,2023").
func ParseSelection(values []string) Selection {
	var sel Selection
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			year, err := strconv.Atoi(part)
			if err != nil {
				continue
			}
			sel = append(sel, year)
		}
	}
	return sel
}

// Normalize removes duplicates, keeping each year at its first position. An
// empty selection falls back to fallback, since the selector cannot be cleared.
func (s Selection) Normalize(fallback Selection) Selection {
	if len(s) == 0 {
		return slices.Clone(fallback)
	}
	out := make(Selection, 0, len(s))
	seen := make(map[int]bool, len(s))
	for _, y := range s {
		if seen[y] {
			continue
		}
		seen[y] = true
		out = append(out, y)
	}
	return out
}

// Index returns the position of year in the selection, or -1.
func (s Selection) Index(year int) int {
	return slices.Index(s, year)
}

// Contains reports whether year is selected.
func (s Selection) Contains(year int) bool {
	return s.Index(year) >= 0
}

// Strings formats the years for query strings and labels.
func (s Selection) Strings() []string {
	out := make([]string, len(s))
	for i, y := range s {
		out[i] = strconv.Itoa(y)
	}
	return out
}
