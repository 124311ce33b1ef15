package domain

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var monthNumbers = map[string]int{
	"enero": 1, "january": 1, "ene": 1, "jan": 1,
	"febrero": 2, "february": 2, "feb": 2,
	"marzo": 3, "march": 3, "mar": 3,
	"abril": 4, "april": 4, "abr": 4, "apr": 4,
	"mayo": 5, "may": 5,
	"junio": 6, "june": 6, "jun": 6,
	"julio": 7, "july": 7, "jul": 7,
	"agosto": 8, "august": 8, "ago": 8, "aug": 8,
	"septiembre": 9, "setiembre": 9, "september": 9, "sep": 9, "sept": 9, "set": 9,
	"octubre": 10, "october": 10, "oct": 10,
	"noviembre": 11, "november": 11, "nov": 11,
	"diciembre": 12, "december": 12, "dic": 12, "dec": 12,
}

// Fold normalizes a label for matching: trims, strips accents and case-folds.
// "  AÑO " and "ano" fold to the same value.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	// transform.Chain is stateful, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// MonthNumber maps a month label to 1–12. Spanish and English names, their
// common abbreviations and plain numbers are recognized.
func MonthNumber(label string) (int, bool) {
	f := Fold(label)
	if n, ok := monthNumbers[strings.TrimSuffix(f, ".")]; ok {
		return n, true
	}
	if n, err := strconv.Atoi(f); err == nil && n >= 1 && n <= 12 {
		return n, true
	}
	return 0, false
}

// MonthOrder sorts distinct labels for the category axis: recognized months
// in calendar order, then unrecognized labels in the order given.
func MonthOrder(labels []string) []string {
	type entry struct {
		label string
		num   int
		pos   int
	}

	entries := make([]entry, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for i, l := range labels {
		if seen[l] {
			continue
		}
		seen[l] = true
		n, ok := MonthNumber(l)
		if !ok {
			n = 13
		}
		entries = append(entries, entry{label: l, num: n, pos: i})
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		if a.num != b.num {
			return a.num - b.num
		}
		return a.pos - b.pos
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.label
	}
	return out
}
