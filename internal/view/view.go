// Package view assembles the unified request view: concurrent per-family
// fetch with partial-failure tolerance, recency ordering, type/search
// filtering and pagination.
package view

import (
	"context"
	"log"
	"sort"
	"sync"

	"jetdash/internal/model"
	"jetdash/internal/search"
	"jetdash/internal/source"
)

// FilterAll is the type filter value that matches every record.
const FilterAll = "all"

type Aggregator struct {
	sources []source.Source
}

func New(sources ...source.Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// Snapshot is one user's fetched records, grouped by family. Records are
// immutable once fetched; a mutation against the store needs a new Load to
// be observed.
type Snapshot struct {
	byFamily map[string][]model.UnifiedRequest
	// Degraded lists families whose fetch failed and came back empty.
	Degraded []string
}

type result struct {
	family   string
	requests []model.UnifiedRequest
	err      error
}

// Load fetches all families concurrently. A failed family degrades to an
// empty list and is recorded in Degraded; the other families are unaffected.
func (a *Aggregator) Load(ctx context.Context, userID string) Snapshot {
	results := make(chan result, len(a.sources))
	var wg sync.WaitGroup
	for _, src := range a.sources {
		src := src
		wg.Add(1)
		go func() {
			defer wg.Done()
			reqs, err := src.Fetch(ctx, userID)
			results <- result{family: src.Name(), requests: reqs, err: err}
		}()
	}
	wg.Wait()
	close(results)

	snap := Snapshot{byFamily: make(map[string][]model.UnifiedRequest, len(a.sources))}
	for res := range results {
		if res.err != nil {
			log.Printf("fetch %s: %v", res.family, res.err)
			snap.Degraded = append(snap.Degraded, res.family)
			continue
		}
		snap.byFamily[res.family] = res.requests
	}
	sort.Strings(snap.Degraded)
	return snap
}

// Requests is the primary listing: bookings and service requests, newest
// first. CO2 certificate requests are deliberately excluded here; they only
// surface in RecentActivity.
func (s Snapshot) Requests() []model.UnifiedRequest {
	return s.merged(model.FamilyBooking, model.FamilyService)
}

// RecentActivity merges every family, newest first, capped at limit.
// limit <= 0 means no cap.
func (s Snapshot) RecentActivity(limit int) []model.UnifiedRequest {
	out := s.merged(model.FamilyBooking, model.FamilyService, model.FamilyCO2)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Family returns one family's records as fetched.
func (s Snapshot) Family(name string) []model.UnifiedRequest {
	return s.byFamily[name]
}

func (s Snapshot) merged(families ...string) []model.UnifiedRequest {
	var out []model.UnifiedRequest
	seen := make(map[string]bool)
	for _, fam := range families {
		for _, r := range s.byFamily[fam] {
			// ids are only unique per family
			if seen[r.Key()] {
				continue
			}
			seen[r.Key()] = true
			out = append(out, r)
		}
	}
	SortByRecency(out)
	return out
}

// SortByRecency orders records by created_at descending in place. The sort
// is stable so fetch order breaks ties.
func SortByRecency(list []model.UnifiedRequest) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// Filter selects records whose type matches typeFilter (or FilterAll) and
// which match the free-text query. Input order is preserved.
func Filter(list []model.UnifiedRequest, typeFilter, query string) []model.UnifiedRequest {
	out := make([]model.UnifiedRequest, 0, len(list))
	for _, r := range list {
		if typeFilter != FilterAll && typeFilter != "" && r.Type != typeFilter {
			continue
		}
		if !search.Matches(r, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Paginate slices out the 1-based page. A page past the end yields an empty
// slice, never an error; page < 1 is treated as 1.
func Paginate(list []model.UnifiedRequest, pageSize, page int) []model.UnifiedRequest {
	if pageSize <= 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []model.UnifiedRequest{}
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// PageCount is ceil(n / pageSize).
func PageCount(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}
