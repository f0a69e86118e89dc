// Package web holds the embedded page templates and stylesheet.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"math"
	"regexp"
	"time"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

// DateLayout renders timestamps the way a browser's toLocaleString does for en-US.
const DateLayout = "Jan 2, 2006, 3:04:05 PM"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("base").Funcs(FuncMap()).ParseFS(assetsFS, "templates/*.html")
}

// Static returns the stylesheet directory.
func Static() fs.FS {
	sub, err := fs.Sub(assetsFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"toastColor":     toastColor,
		"refreshSeconds": refreshSeconds,
	}
}

// FormatDate renders t in the server's local zone. A nil time renders empty.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// toastColor lets hex colors through to a style attribute and drops anything else.
func toastColor(c string) template.CSS {
	if hexColor.MatchString(c) {
		return template.CSS(c)
	}
	return template.CSS("#333333")
}

// refreshSeconds rounds a delay up to the whole seconds a meta refresh understands.
func refreshSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
