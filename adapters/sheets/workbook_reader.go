package sheets

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"invdash/internal/errors"
)

// WorkbookReader fetches logical tables from named worksheets within a single
// xlsx workbook, the transport used when the spreadsheet is pulled down
// through an authenticated API rather than public export URLs.
type WorkbookReader struct {
	filePath string
	sheets   map[TableID]string
}

// NewWorkbookReader creates a reader mapping the two logical tables to
// worksheet names inside the workbook at filePath.
func NewWorkbookReader(filePath, stockSheet, newArrivalsSheet string) *WorkbookReader {
	return &WorkbookReader{
		filePath: filePath,
		sheets: map[TableID]string{
			TableStock:       stockSheet,
			TableNewArrivals: newArrivalsSheet,
		},
	}
}

// Fetch reads the worksheet backing a logical table.
func (r *WorkbookReader) Fetch(ctx context.Context, id TableID) (*RawData, error) {
	if !id.Valid() {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown table %q", id))
	}
	sheetName := r.sheets[id]
	if sheetName == "" {
		return nil, errors.ConfigInvalid(fmt.Sprintf("no worksheet configured for table %q", id))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.FetchFailed(id.DisplayName(), fmt.Errorf("workbook not found: %s", r.filePath))
	}

	openStart := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.FetchFailed(id.DisplayName(), fmt.Errorf("failed to open workbook: %w", err))
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.FetchFailed(id.DisplayName(), fmt.Errorf("failed to read worksheet %q: %w", sheetName, err))
	}
	log.Printf("[WorkbookReader] %s read from %q in %.2fms (%d rows)", id, sheetName, float64(time.Since(openStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, errors.FetchFailed(id.DisplayName(), fmt.Errorf("worksheet %q has no header row", sheetName))
	}

	return &RawData{
		Headers: rows[0],
		Rows:    rows[1:],
	}, nil
}
