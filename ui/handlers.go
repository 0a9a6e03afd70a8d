package ui

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"invdash/adapters/sheets"
	"invdash/app"
	"invdash/domain/table"
)

// tabInfo describes one dataset tab in the browsing view.
type tabInfo struct {
	ID     string
	Name   string
	Active bool
}

func parseTableID(raw string) (sheets.TableID, bool) {
	id := sheets.TableID(raw)
	if id.Valid() {
		return id, true
	}
	return sheets.TableStock, false
}

func (s *Server) tabs(active sheets.TableID) []tabInfo {
	tabs := make([]tabInfo, 0, len(sheets.KnownTables))
	for _, id := range sheets.KnownTables {
		tabs = append(tabs, tabInfo{
			ID:     string(id),
			Name:   id.DisplayName(),
			Active: id == active,
		})
	}
	return tabs
}

// handleIndex renders the default tabbed browsing view: category filter in the
// sidebar, cost hidden.
func (s *Server) handleIndex(c *gin.Context) {
	activeTab, _ := parseTableID(c.DefaultQuery("tab", string(sheets.TableStock)))
	category := c.DefaultQuery("category", table.AllCategories)

	categories, warnings := s.service.Categories(c.Request.Context())

	active, err := s.service.Load(c.Request.Context(), activeTab)
	if err != nil {
		// Already surfaced through the categories warnings; the page
		// degrades to an empty table with the message shown.
		log.Printf("[handleIndex] %s unavailable: %v", activeTab, err)
	}

	filtered := s.service.FilterAndSearch(active, category, "")
	projected := table.ProjectForDisplay(filtered, false)

	s.renderTemplate(c, "index.html", gin.H{
		"Title":            "Inventory Dashboard",
		"Tabs":             s.tabs(activeTab),
		"ActiveTab":        string(activeTab),
		"Categories":       categories,
		"SelectedCategory": category,
		"Columns":          projected.Columns,
		"Rows":             projected.Rows,
		"RowCount":         len(projected.Rows),
		"Unavailable":      active.IsUnavailable(),
		"Warnings":         warnings,
	})
}

// handleSearch renders the search-result view. This is the one view where
// cost is revealed; a blank query renders the prompt without searching.
func (s *Server) handleSearch(c *gin.Context) {
	activeTab, _ := parseTableID(c.DefaultQuery("tab", string(sheets.TableStock)))
	category := c.DefaultQuery("category", table.AllCategories)
	query := c.Query("q")

	data := gin.H{
		"Title":            "Search Inventory",
		"Tabs":             s.tabs(activeTab),
		"ActiveTab":        string(activeTab),
		"SelectedCategory": category,
		"Query":            query,
		"Searched":         false,
	}

	if !app.SearchActive(query) {
		s.renderTemplate(c, "search.html", data)
		return
	}

	active, err := s.service.Load(c.Request.Context(), activeTab)
	if err != nil {
		data["Warnings"] = []string{err.Error()}
	}

	matched := s.service.FilterAndSearch(active, category, query)
	projected := table.ProjectForDisplay(matched, true)

	data["Searched"] = true
	data["Columns"] = projected.Columns
	data["Rows"] = projected.Rows
	data["RowCount"] = len(projected.Rows)
	data["Unavailable"] = active.IsUnavailable()
	if summary, ok := table.SummarizeCost(matched); ok {
		data["CostSummary"] = summary
	}

	s.renderTemplate(c, "search.html", data)
}

// handleAbout renders the embedded markdown notes.
func (s *Server) handleAbout(c *gin.Context) {
	src, err := embeddedFiles.ReadFile("about.md")
	if err != nil {
		log.Printf("[handleAbout] about.md missing from embedded files: %v", err)
		c.String(http.StatusInternalServerError, "about page unavailable")
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.ToHTML(src, p, renderer)

	s.renderTemplate(c, "about.html", gin.H{
		"Title":   "About",
		"Content": templateHTML(rendered),
	})
}

// handleTable serves a projected table view as JSON.
// Query params: category, q, reveal.
func (s *Server) handleTable(c *gin.Context) {
	id, ok := parseTableID(c.Param("name"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown table: " + c.Param("name")})
		return
	}

	category := c.DefaultQuery("category", table.AllCategories)
	query := c.Query("q")
	reveal := c.Query("reveal") == "true"

	t, err := s.service.Load(c.Request.Context(), id)
	resp := gin.H{
		"table_id":     string(id),
		"display_name": id.DisplayName(),
		"snapshot_id":  t.SnapshotID.String(),
		"loaded_at":    t.LoadedAt,
	}
	if err != nil {
		resp["warning"] = err.Error()
	}

	view := table.ProjectForDisplay(s.service.FilterAndSearch(t, category, query), reveal)
	resp["columns"] = view.Columns
	resp["rows"] = view.Rows
	resp["row_count"] = len(view.Rows)
	resp["unavailable"] = t.IsUnavailable()

	c.JSON(http.StatusOK, resp)
}

// handleCategories serves the category index as JSON.
func (s *Server) handleCategories(c *gin.Context) {
	categories, warnings := s.service.Categories(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"warnings":   warnings,
	})
}

// handleRefresh drops the load cache and reloads both tables.
func (s *Server) handleRefresh(c *gin.Context) {
	errs := s.service.Refresh(c.Request.Context())
	if len(errs) > 0 {
		messages := make([]string, 0, len(errs))
		for _, err := range errs {
			messages = append(messages, err.Error())
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "refresh completed with warnings",
			"warnings": messages,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh completed"})
}
