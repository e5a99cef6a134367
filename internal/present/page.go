package present

import (
	"fmt"
	"html/template"
	"io"
)

// Failure is a per-file error badge.
type Failure struct {
	RequestID uint64
	Name      string
	Kind      string
	Message   string
}

// Page is everything the HTML view shows.
type Page struct {
	Title    string
	Items    []Item
	Texts    []Text
	Failures []Failure
}

type pageItem struct {
	Item
	Src template.URL
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
pre { font-family: monospace; line-height: 1; }
.badge { display: inline-block; padding: 2px 6px; border-radius: 4px; background: #c0392b; color: #fff; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Failures}}
<div class="failure" data-request="{{.RequestID}}">
<span class="badge">failed to load image</span> {{.Name}} ({{.Kind}}): {{.Message}}
</div>
{{- end}}
{{- range .Items}}
<div class="item" data-request="{{.RequestID}}" data-role="{{.Role}}">
<img src="{{.Src}}" alt="{{.Name}} ({{.Role}})"/>
</div>
{{- end}}
{{- range .Texts}}
<div class="ascii" data-request="{{.RequestID}}">
<pre>{{.Body}}</pre>
</div>
{{- end}}
</body>
</html>
`))

// WritePage renders p as a standalone HTML document.
func WritePage(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "invascii"
	}
	items := make([]pageItem, len(p.Items))
	for i, it := range p.Items {
		// html/template rewrites data: URIs to #ZgotmplZ unless marked safe.
		// Every URI here comes from DataURI.
		items[i] = pageItem{Item: it, Src: template.URL(it.URI)}
	}

	data := struct {
		Title    string
		Items    []pageItem
		Texts    []Text
		Failures []Failure
	}{p.Title, items, p.Texts, p.Failures}

	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
