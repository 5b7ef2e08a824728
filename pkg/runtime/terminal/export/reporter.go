package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
)

type TableConfig struct {
	LabelWidth int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth: 30,
		ValueWidth: 24,
	}
}

// Reporter prints report data as plain-text tables for the CLI runtime.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type reportView struct {
	Title    string
	Period   string
	Sections []sectionView
}

type sectionView struct {
	Title string
	Rows  []rowView
}

type rowView struct {
	Label string
	Value string
}

// HandlePreview prints the four headline counters for a period.
func (r *Reporter) HandlePreview(period domain.Period, preview domain.Preview) error {
	view := reportView{
		Title:  "Prévia do Relatório",
		Period: period.String(),
		Sections: []sectionView{{
			Title: "Contadores",
			Rows: []rowView{
				{Label: "Total de Animais", Value: fmt.Sprintf("%d", preview.TotalAnimals)},
				{Label: "Nascimentos", Value: fmt.Sprintf("%d", preview.Births)},
				{Label: "Mortes", Value: fmt.Sprintf("%d", preview.Deaths)},
				{Label: "Vendas", Value: fmt.Sprintf("%d", preview.Sales)},
			},
		}},
	}
	return r.render(view)
}

// HandlePayload prints aggregate sections in full and list sections as row
// counts; full listings belong to the rendered artifacts, not the terminal.
func (r *Reporter) HandlePayload(period domain.Period, types []domain.ReportType, payload domain.Payload) error {
	view := reportView{
		Title:  "Relatório Gerencial",
		Period: period.String(),
	}

	for _, rt := range types {
		sections, ok := payload[rt]
		if !ok {
			continue
		}
		sv := sectionView{Title: rt.DisplayName()}
		for _, name := range rt.SectionOrder() {
			switch s := sections[name].(type) {
			case domain.Aggregate:
				for _, label := range sortedLabels(s) {
					sv.Rows = append(sv.Rows, rowView{
						Label: domain.SectionTitle(name) + " / " + label,
						Value: fmt.Sprintf("%v", s[label]),
					})
				}
			case domain.List:
				sv.Rows = append(sv.Rows, rowView{
					Label: domain.SectionTitle(name),
					Value: fmt.Sprintf("%d registros", len(s.Rows)),
				})
			}
		}
		view.Sections = append(view.Sections, sv)
	}

	return r.render(view)
}

func (r *Reporter) render(view reportView) error {
	funcMap := template.FuncMap{
		"formatRow": func(label, value string) string {
			return fmt.Sprintf("| %-*s | %-*s |",
				r.config.LabelWidth, label,
				r.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", r.config.LabelWidth+2),
				strings.Repeat("-", r.config.ValueWidth+2))
		},
	}

	tmpl := `
{{.Title}}
Período: {{.Period}}
{{range .Sections}}
=== {{.Title}} ===
{{separator}}
{{range .Rows}}{{formatRow .Label .Value}}
{{end}}{{separator}}
{{end}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, view)
}

func sortedLabels(agg domain.Aggregate) []string {
	labels := make([]string, 0, len(agg))
	for label := range agg {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
