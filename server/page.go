package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"jpanalyzer/tokenize"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var pageFS embed.FS

const pageName = "index.html"

// loadPage parses the host page. Actions use %% delimiters so the page can carry a
// front-end framework's {{ }} syntax untouched.
func loadPage(dir string) (*template.Template, error) {
	tmpl := template.New(pageName).Delims("%%", "%%")
	var err error
	if dir == "" {
		tmpl, err = tmpl.ParseFS(pageFS, "templates/"+pageName)
	} else {
		tmpl, err = tmpl.ParseFiles(filepath.Join(dir, pageName))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageName, err)
	}
	return tmpl, nil
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, pageName, gin.H{
		"Dictionary": h.dictName,
		"Modes":      tokenize.ModeCodes,
		"Default":    h.defaultMode,
	})
}
