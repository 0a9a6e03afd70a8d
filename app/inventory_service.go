package app

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"invdash/adapters/sheets"
	"invdash/domain/table"
)

// InventoryService loads the two inventory tables through a fetcher,
// normalizes them, and serves filter/search views to the presentation layer.
// Load results are cached for a TTL; concurrent cache misses for the same
// table coalesce into a single fetch.
type InventoryService struct {
	fetcher sheets.Fetcher
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[sheets.TableID]cachedTable
	group singleflight.Group
}

type cachedTable struct {
	table    table.Table
	cachedAt time.Time
}

// NewInventoryService creates a service over the given transport.
func NewInventoryService(fetcher sheets.Fetcher, ttl time.Duration) *InventoryService {
	return &InventoryService{
		fetcher: fetcher,
		ttl:     ttl,
		cache:   make(map[sheets.TableID]cachedTable),
	}
}

// Load returns the normalized table for a logical table ID. On any transport
// or parse failure it returns the empty table together with the error, so the
// caller can render a degraded view plus a message instead of failing the
// request. Failures are not cached; the next request retries the source.
func (s *InventoryService) Load(ctx context.Context, id sheets.TableID) (table.Table, error) {
	s.mu.RLock()
	entry, ok := s.cache[id]
	s.mu.RUnlock()
	if ok && time.Since(entry.cachedAt) < s.ttl {
		return entry.table, nil
	}

	result, err, shared := s.group.Do(string(id), func() (interface{}, error) {
		// Re-check after winning the flight; a sibling may have filled it.
		s.mu.RLock()
		entry, ok := s.cache[id]
		s.mu.RUnlock()
		if ok && time.Since(entry.cachedAt) < s.ttl {
			return entry.table, nil
		}

		raw, err := s.fetcher.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}

		t := table.Normalize(raw.Headers, raw.Rows)
		s.mu.Lock()
		s.cache[id] = cachedTable{table: t, cachedAt: time.Now()}
		s.mu.Unlock()

		log.Printf("[InventoryService.Load] %s loaded: %d columns, %d rows (snapshot %s)",
			id, len(t.Columns), len(t.Rows), t.SnapshotID)
		return t, nil
	})
	if err != nil {
		log.Printf("[InventoryService.Load] FAILED - %s: %v", id, err)
		return table.Empty(), err
	}
	if shared {
		log.Printf("[InventoryService.Load] %s request coalesced with concurrent load", id)
	}
	return result.(table.Table), nil
}

// LoadAll loads both tables, collecting non-fatal load errors.
func (s *InventoryService) LoadAll(ctx context.Context) (stock, arrivals table.Table, errs []error) {
	stock, err := s.Load(ctx, sheets.TableStock)
	if err != nil {
		errs = append(errs, err)
	}
	arrivals, err = s.Load(ctx, sheets.TableNewArrivals)
	if err != nil {
		errs = append(errs, err)
	}
	return stock, arrivals, errs
}

// Categories returns the selectable category choices across both tables,
// sentinel first, along with user-visible warning messages for anything
// non-fatal hit along the way (unavailable tables, schema mismatches).
func (s *InventoryService) Categories(ctx context.Context) ([]string, []string) {
	stock, arrivals, errs := s.LoadAll(ctx)

	var warnings []string
	for _, err := range errs {
		warnings = append(warnings, err.Error())
	}

	choices, warn := table.Categories(stock, arrivals)
	if warn != nil {
		warnings = append(warnings, warn.Error())
	}
	return choices, warnings
}

// FilterAndSearch applies the category filter and then, when a query is
// active, the free-text search. A blank query means no search and is
// suppressed here rather than treated as match-everything.
func (s *InventoryService) FilterAndSearch(t table.Table, category, query string) table.Table {
	t = table.FilterByCategory(t, category)
	if !SearchActive(query) {
		return t
	}
	return table.Search(t, query)
}

// Refresh drops all cached loads and reloads both tables.
func (s *InventoryService) Refresh(ctx context.Context) []error {
	s.Invalidate()
	_, _, errs := s.LoadAll(ctx)
	return errs
}

// Invalidate drops all cached loads without refetching.
func (s *InventoryService) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[sheets.TableID]cachedTable)
	s.mu.Unlock()
	log.Printf("[InventoryService.Invalidate] load cache dropped")
}

// SearchActive reports whether a query activates search after trimming.
func SearchActive(query string) bool {
	return strings.TrimSpace(query) != ""
}
