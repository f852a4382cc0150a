package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/authorpubs/internal/database/repository"
)

// SuggestAuthors ranks authors by edit distance between name and either
// the author's full name or BAI, closest first. Names containing the query
// as a substring always rank ahead of the rest.
func (s *LiteratureService) SuggestAuthors(ctx context.Context, name string, limit int) ([]repository.Author, error) {
	all, err := s.Authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, nil
	}

	type scored struct {
		author   repository.Author
		contains bool
		dist     int
	}
	ranked := make([]scored, 0, len(all))
	for _, a := range all {
		candidates := []string{strings.ToLower(a.FullName)}
		if a.BAI != nil {
			candidates = append(candidates, strings.ToLower(*a.BAI))
		}
		best := scored{author: a, dist: -1}
		for _, c := range candidates {
			d := levenshtein.ComputeDistance(needle, c)
			if best.dist < 0 || d < best.dist {
				best.dist = d
			}
			if strings.Contains(c, needle) {
				best.contains = true
			}
		}
		ranked = append(ranked, best)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].contains != ranked[j].contains {
			return ranked[i].contains
		}
		return ranked[i].dist < ranked[j].dist
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]repository.Author, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.author)
	}
	return out, nil
}
