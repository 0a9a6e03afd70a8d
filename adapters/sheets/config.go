package sheets

import (
	"invdash/internal/config"
)

// NewFetcher builds the transport selected by configuration. A configured
// workbook wins over CSV export URLs.
func NewFetcher(cfg config.SourceConfig) Fetcher {
	if cfg.UsesWorkbook() {
		return NewWorkbookReader(cfg.WorkbookFile, cfg.StockSheet, cfg.NewArrivalsSheet)
	}
	return NewCSVReader(cfg.StockURL, cfg.NewArrivalsURL, cfg.FetchTimeout)
}
