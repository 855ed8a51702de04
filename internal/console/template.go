package console

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// ExpandTemplate expands a template string using the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

const (
	helpTemplate = `Available commands:
{{- range . }}
  {{ .Usage | printf "%-24s" }} {{ .Description }}
{{- end }}`

	itemsTemplate = `{{ if not . }}No items are defined.{{ else }}Inventory:
{{- range . }}
  {{ .Name | printf "%-16s" }} {{ .Count | printf "%8d" }}{{ if not .Unlocked }}  (locked){{ end }}
{{- end }}{{ end }}`

	unlockedTemplate = `Unlocked {{ .Type }}s: {{ .Names | join ", " | default "none" }}`

	statsTemplate = `{{ if not .Items }}Nothing delivered this session.{{ else }}Delivered this session:
{{- range .Items }}
  {{ .Name | printf "%-16s" }} {{ .Delivered | printf "%8d" }}
{{- end }}
  {{ "total" | printf "%-16s" }} {{ .Total | printf "%8d" }}{{ end }}`

	zonesTemplate = `{{ if not . }}No zones are defined.{{ else }}Zones:
{{- range . }}
  {{ .Name | printf "%-20s" }} best {{ .Best | printf "%4d" }} / {{ .Condition | printf "%-4d" }} {{ if .Completed }}completed{{ else }}in progress{{ end }}{{ if not .Unlocked }} (locked){{ end }}
{{- end }}{{ end }}`

	waveTemplate = `{{ .Name | title }}: best wave {{ .Best }} of {{ .Condition }}{{ if .Completed }}, completed{{ end }}.`

	launchTemplate = `Launched to {{ .Name | title }}. Spent {{ .Spent | join ", " }}.`
)
