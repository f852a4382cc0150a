package service

import (
	"strconv"
	"strings"

	"github.com/jask/authorpubs/internal/database/repository"
)

// EarliestDate returns the earliest of the record's preprint, thesis,
// publication year and imprint dates, in the form it was stored, or ""
// when the record carries none. Partial dates compare with missing month
// and day as zero, so "1998" sorts before "1998-02-20".
func EarliestDate(rec repository.Record) string {
	var candidates []string
	for _, p := range []*string{rec.PreprintDate, rec.ThesisDate, rec.ImprintDate} {
		if p != nil && strings.TrimSpace(*p) != "" {
			candidates = append(candidates, strings.TrimSpace(*p))
		}
	}
	if rec.PublicationYear != nil {
		candidates = append(candidates, strconv.Itoa(*rec.PublicationYear))
	}

	best := ""
	var bestKey [3]int
	for _, c := range candidates {
		key, ok := partialDate(c)
		if !ok {
			continue
		}
		if best == "" || less(key, bestKey) {
			best, bestKey = c, key
		}
	}
	return best
}

func partialDate(s string) ([3]int, bool) {
	var out [3]int
	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return out, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return out, false
		}
		out[i] = n
	}
	return out, out[0] > 0
}

func less(a, b [3]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
