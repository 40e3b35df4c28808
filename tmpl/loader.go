package tmpl

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/LianHaeming/sleepwell/models"
)

//go:embed templates
var files embed.FS

// Templates holds all page templates, keyed by page name.
type Templates struct {
	pages map[string]*template.Template
}

// ExecuteTemplate renders a page template by name. Partials ("partials/x.html")
// render their "x-inner" block without the layout.
func (t *Templates) ExecuteTemplate(w io.Writer, name string, data any) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	if strings.HasPrefix(name, "partials/") {
		inner := strings.TrimSuffix(path.Base(name), ".html") + "-inner"
		return tmpl.ExecuteTemplate(w, inner, data)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// Funcs returns the helpers available to every template. Dates render in
// time.Local; sessions are stored in UTC.
func Funcs() template.FuncMap {
	return template.FuncMap{
		// Formatting
		"pct":            func(quality int) int { return quality * 10 },
		"formatDuration": models.FormatDuration,
		"sessionDuration": func(s models.SleepSession) string {
			return models.FormatDuration(s.Duration())
		},

		// Quality bands
		"tiers":        func() []models.QualityTier { return models.Tiers },
		"qualityColor": models.QualityColor,
		"qualityLabel": func(q int) string { return models.Tier(q).Label() },

		// Time
		"longDate":  func(t time.Time) string { return t.Local().Format("Monday, January 2, 2006") },
		"clockTime": func(t time.Time) string { return t.Local().Format("03:04 PM") },

		"safeCSS": func(s string) template.CSS { return template.CSS(s) },
	}
}

// Load parses the embedded templates. Each page gets its own clone of the
// shared layout and partials so {{define "content"}} doesn't collide.
func Load() *Templates {
	funcMap := Funcs()

	base := template.Must(
		template.New("base").Funcs(funcMap).ParseFS(files, "templates/layout.html", "templates/partials/*.html"),
	)

	pages := map[string]*template.Template{}
	pageFiles, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		panic("failed to glob page templates: " + err.Error())
	}
	for _, f := range pageFiles {
		name := path.Base(f)
		if name == "layout.html" {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			panic("failed to clone base template: " + err.Error())
		}
		template.Must(clone.ParseFS(files, f))
		pages[name] = clone
	}

	partialFiles, _ := fs.Glob(files, "templates/partials/*.html")
	for _, f := range partialFiles {
		name := "partials/" + path.Base(f)
		pages[name] = template.Must(template.New("").Funcs(funcMap).ParseFS(files, f))
	}

	return &Templates{pages: pages}
}
