// internal/writer/render.go
package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/benchkit/weightgen/internal/bench"
	"github.com/benchkit/weightgen/internal/util"
)

// TemplateData is everything a template can reference when rendering
// one group's artifact.
type TemplateData struct {
	Args        []string            `json:"args"`
	Date        string              `json:"date"`
	Version     string              `json:"version"`
	Pallet      string              `json:"pallet"`
	Instance    string              `json:"instance"`
	Header      string              `json:"header"`
	Cmd         string              `json:"cmd"`
	StorageInfo []bench.StorageInfo `json:"storage_info"`
	Benchmarks  []BenchmarkData     `json:"benchmarks"`
}

// Renderer turns template text plus one group's data into artifact
// bytes.
type Renderer interface {
	Render(templateText string, data TemplateData) ([]byte, error)
}

// WeightRenderer renders Rust weight source files with text/template.
// No escaping is applied since the output is source code, not markup.
type WeightRenderer struct{}

func templateFuncs() texttemplate.FuncMap {
	return texttemplate.FuncMap{
		"underscore": util.ToSnakeCase,
		"join":       strings.Join,
	}
}

func (WeightRenderer) Render(templateText string, data TemplateData) ([]byte, error) {
	tmpl, err := texttemplate.New("weights").Funcs(templateFuncs()).Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportRenderer renders a standalone HTML page. The group data is
// embedded as a JSON payload that the page's script reads, so the
// template itself stays small.
type ReportRenderer struct{}

type reportView struct {
	Title string
	JSON  htmltemplate.JS
}

func (ReportRenderer) Render(templateText string, data TemplateData) ([]byte, error) {
	tmpl, err := htmltemplate.New("report").Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding report payload: %w", err)
	}

	title := data.Pallet
	if data.Instance != "" {
		title += " (" + data.Instance + ")"
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, reportView{
		Title: title,
		JSON:  htmltemplate.JS(payload),
	})
	if err != nil {
		return nil, fmt.Errorf("executing report template: %w", err)
	}
	return buf.Bytes(), nil
}

func rendererFor(mode Mode) Renderer {
	if mode == ModeReport {
		return ReportRenderer{}
	}
	return WeightRenderer{}
}
