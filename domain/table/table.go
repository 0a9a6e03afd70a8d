package table

import (
	"strings"

	"invdash/domain/core"
)

// Column conventions shared by both source tables. The cost header is matched
// case-insensitively on load and standardized under one internal name; the
// display label is the uppercased form of that name.
const (
	CategoryColumn   = "Category"
	CostColumn       = "internal_cost"
	CostDisplayLabel = "INTERNAL_COST"
	DefaultCategory  = "Uncategorized"
	AllCategories    = "All Categories"

	costHeader = "cost"
)

// SearchColumns are the two fields free-text search matches against.
var SearchColumns = []string{"Item Barcode", "Description"}

// Row represents a single record as column name -> value.
// A missing value is the empty string; absent keys read the same way.
type Row map[string]string

// Get returns the value for a column, with absent keys reading as empty.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is an ordered collection of rows produced by normalization. It is
// immutable once built; filter/search/projection derive fresh views from it.
type Table struct {
	SnapshotID core.SnapshotID `json:"snapshot_id"`
	LoadedAt   core.Timestamp  `json:"loaded_at"`
	Columns    []string        `json:"columns"`
	Rows       []Row           `json:"rows"`
}

// Empty returns the table substituted when a source is unavailable.
// Zero rows and no columns; distinct from an available table that a
// filter happened to empty out.
func Empty() Table {
	return Table{
		SnapshotID: core.NewSnapshotID(),
		LoadedAt:   core.Now(),
	}
}

// IsUnavailable reports whether this is the empty substitute table.
func (t Table) IsUnavailable() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// view derives a read-only copy sharing snapshot provenance with t.
func (t Table) view(columns []string, rows []Row) Table {
	return Table{
		SnapshotID: t.SnapshotID,
		LoadedAt:   t.LoadedAt,
		Columns:    columns,
		Rows:       rows,
	}
}

// Normalize builds a Table from a raw header row and data rows.
//
// Headers are whitespace-trimmed before anything else. Any header matching
// "cost" case-insensitively is renamed to the standardized internal name; if
// none matches, the standardized column is appended with the missing-value
// marker in every row. The category column is appended with the default
// sentinel when absent. Rows empty across all columns are discarded.
func Normalize(headers []string, rows [][]string) Table {
	columns := make([]string, 0, len(headers))
	for _, h := range headers {
		columns = append(columns, strings.TrimSpace(h))
	}

	// Standardize the cost column in place so column order is preserved.
	costFound := false
	for i, c := range columns {
		if !costFound && strings.EqualFold(c, costHeader) {
			columns[i] = CostColumn
			costFound = true
		}
	}
	if !costFound {
		columns = append(columns, CostColumn)
	}

	hasCategory := false
	for _, c := range columns {
		if c == CategoryColumn {
			hasCategory = true
			break
		}
	}
	if !hasCategory {
		columns = append(columns, CategoryColumn)
	}

	normalized := make([]Row, 0, len(rows))
	for _, raw := range rows {
		row := make(Row, len(columns))
		empty := true
		for j, cell := range raw {
			if j >= len(headers) {
				break
			}
			value := strings.TrimSpace(cell)
			row[columns[j]] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		if _, ok := row[CostColumn]; !ok {
			row[CostColumn] = ""
		}
		if !hasCategory {
			row[CategoryColumn] = DefaultCategory
		} else if _, ok := row[CategoryColumn]; !ok {
			row[CategoryColumn] = ""
		}
		normalized = append(normalized, row)
	}

	return Table{
		SnapshotID: core.NewSnapshotID(),
		LoadedAt:   core.Now(),
		Columns:    columns,
		Rows:       normalized,
	}
}
