package view

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html templates/partials/*.html
var templatesFS embed.FS

// NewEngine builds the template engine over the embedded templates.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("ftime", func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04 MST")
	})
	engine.AddFunc("f2", func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	})
	engine.AddFunc("pct", func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	})
	engine.AddFunc("deref", func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	})
	return engine, nil
}
