package sheets

import "context"

// TableID names one of the two logical tables the dashboard knows about.
type TableID string

const (
	TableStock       TableID = "stock"
	TableNewArrivals TableID = "new_arrivals"
)

// KnownTables lists the valid logical tables in display order.
var KnownTables = []TableID{TableStock, TableNewArrivals}

// Valid reports whether the ID names a known logical table.
func (id TableID) Valid() bool {
	for _, known := range KnownTables {
		if id == known {
			return true
		}
	}
	return false
}

// DisplayName returns the human-facing table title.
func (id TableID) DisplayName() string {
	switch id {
	case TableStock:
		return "Warehouse Stock"
	case TableNewArrivals:
		return "New Arrival"
	default:
		return string(id)
	}
}

// RawData is unnormalized tabular content: the trimmed-off header row plus
// data rows, exactly as the source presented them.
type RawData struct {
	Headers []string
	Rows    [][]string
}

// Fetcher retrieves raw tabular content for a logical table.
type Fetcher interface {
	Fetch(ctx context.Context, id TableID) (*RawData, error)
}
