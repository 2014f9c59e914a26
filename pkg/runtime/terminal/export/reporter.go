package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  32,
		ValueWidth: 16,
	}
}

// Reporter renders a report as a text table on the terminal.
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

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, current, prior float64) string {
			return fmt.Sprintf("| %-*s | %*.2f | %*.2f |",
				c.config.NameWidth, name,
				c.config.ValueWidth, current,
				c.config.ValueWidth, prior)
		},
		"header": func() string {
			return fmt.Sprintf("| %-*s | %*s | %*s |",
				c.config.NameWidth, "Name",
				c.config.ValueWidth, "Current Year",
				c.config.ValueWidth, "Last Year")
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"summaryRows": func(summary map[string]float64) []string {
			keys := make([]string, 0, len(summary))
			for k := range summary {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			rows := make([]string, 0, len(keys))
			for _, k := range keys {
				rows = append(rows, fmt.Sprintf("%-*s %.0f", c.config.NameWidth, k, summary[k]))
			}
			return rows
		},
	}

	tmpl := `
{{.Title}} ({{.Practice}})

Current period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}
Prior period:   {{.Comparison.Start.Format "2006-01-02"}} to {{.Comparison.End.Format "2006-01-02"}}
{{if .Rows}}
{{separator}}
{{header}}
{{separator}}
{{- range .Rows}}
{{formatRow .Name .Current .Prior}}
{{- end}}
{{separator}}
{{end}}
{{- if .Summary}}
{{- range summaryRows .Summary}}
{{.}}
{{- end}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	return t.Execute(c.writer, report)
}
