package cli

const noteTemplate = `
=== {{.Title}} ===

ID:       {{.ID}}
Color:    {{.ColorName}} ({{.Shade}})
{{- if .Tags }}
Tags:     {{join .Tags ", "}}
{{- end}}
{{- if .Flags }}
Flags:    {{join .Flags ", "}}
{{- end}}
Created:  {{.Created}}
Updated:  {{.Updated}}

---
{{.Content}}
---
`
