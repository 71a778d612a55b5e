package notes

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{
			"datetime": func(t time.Time) string {
				return t.Format("2006-01-02 15:04")
			},
		}).
		ParseFS(templatesFS, "templates/index.html"),
)

type indexData struct {
	Notes     []Note
	Total     int64
	Flash     string
	FlashKind string
}
