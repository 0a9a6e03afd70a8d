package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invdash/app"
)

//go:embed templates/*.html about.md
var embeddedFiles embed.FS

// Server is the gin-backed dashboard server.
type Server struct {
	router    *gin.Engine
	service   *app.InventoryService
	templates *template.Template
}

// NewServer creates the dashboard server over an inventory service.
func NewServer(service *app.InventoryService) (*Server, error) {
	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
		"add":   func(a, b int) int { return a + b },
		"cell": func(row map[string]string, column string) string {
			return row[column]
		},
		"money": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		service:   service,
		templates: templates,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	// Browser-facing pages
	s.router.GET("/", s.handleIndex)
	s.router.GET("/search", s.handleSearch)
	s.router.GET("/about", s.handleAbout)

	// JSON API
	s.router.GET("/api/tables/:name", s.handleTable)
	s.router.GET("/api/categories", s.handleCategories)
	s.router.POST("/api/refresh", s.handleRefresh)
}

// Start begins serving on the given address
func (s *Server) Start(addr string) error {
	log.Printf("[Server.Start] Inventory dashboard listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// templateHTML marks pre-rendered markup as safe for template injection.
// Only ever fed from the embedded about.md, never from user input.
func templateHTML(b []byte) template.HTML {
	return template.HTML(b)
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
