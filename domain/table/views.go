package table

import (
	"sort"
	"strings"

	"invdash/internal/errors"
)

// Categories computes the selectable category values across the given tables:
// trimmed, non-empty values, deduplicated, sorted ascending, with the
// AllCategories sentinel always first.
//
// Normalization guarantees the category column exists, but if a table somehow
// lacks it the index degrades to the sentinel alone and a SchemaMismatch
// warning is returned alongside it. Every row then matches AllCategories.
func Categories(tables ...Table) ([]string, error) {
	var warn error
	seen := make(map[string]bool)
	for _, t := range tables {
		if t.IsUnavailable() {
			continue
		}
		if !t.HasColumn(CategoryColumn) {
			warn = errors.SchemaMismatch("category column missing, filtering disabled")
			return []string{AllCategories}, warn
		}
		for _, row := range t.Rows {
			value := strings.TrimSpace(row.Get(CategoryColumn))
			if value == "" {
				continue
			}
			seen[value] = true
		}
	}

	categories := make([]string, 0, len(seen)+1)
	for value := range seen {
		categories = append(categories, value)
	}
	sort.Strings(categories)

	return append([]string{AllCategories}, categories...), warn
}

// FilterByCategory returns the rows whose category matches the selection.
// The AllCategories sentinel is the identity view. Matching is exact and
// case-sensitive on whitespace-trimmed values.
func FilterByCategory(t Table, category string) Table {
	selected := strings.TrimSpace(category)
	if selected == "" || selected == AllCategories {
		return t
	}

	matched := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if strings.TrimSpace(row.Get(CategoryColumn)) == selected {
			matched = append(matched, row)
		}
	}
	return t.view(t.Columns, matched)
}

// Search returns the rows where the query is a substring of the item barcode
// or the description, case-insensitively. Row order is preserved. A blank
// query means no search is active; callers suppress the call, and invoking it
// anyway yields the identity view.
func Search(t Table, query string) Table {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return t
	}

	matched := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		for _, column := range SearchColumns {
			if strings.Contains(strings.ToLower(row.Get(column)), q) {
				matched = append(matched, row)
				break
			}
		}
	}
	return t.view(t.Columns, matched)
}

// ProjectForDisplay trims a table down to its presentation columns. The
// category column never reaches display; it exists only to drive filtering.
// The cost column is dropped entirely unless revealCost is set, in which case
// it is renamed to the human-facing label with values unchanged. Dropping an
// absent column is a no-op.
func ProjectForDisplay(t Table, revealCost bool) Table {
	columns := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		switch c {
		case CategoryColumn:
			continue
		case CostColumn:
			if !revealCost {
				continue
			}
			columns = append(columns, CostDisplayLabel)
		default:
			columns = append(columns, c)
		}
	}

	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		projected := make(Row, len(columns))
		for name, value := range row {
			switch name {
			case CategoryColumn:
				continue
			case CostColumn:
				if revealCost {
					projected[CostDisplayLabel] = value
				}
			default:
				projected[name] = value
			}
		}
		rows = append(rows, projected)
	}

	return t.view(columns, rows)
}
