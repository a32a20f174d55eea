package notifications

var commonTemplates = map[string]string{
	"default-legacy": `
{{- range $i, $e := . -}}
{{- if $i}}{{- println -}}{{- end -}}
{{- $msg := $e.Message -}}
{{- if eq $msg "Transferred image" -}}
    Transferred image: {{$e.Data.source}} -> {{$e.Data.destination}}
{{- else if eq $msg "Image transfer failed" -}}
    Failed to transfer image: {{$e.Data.source}} ({{with $e.Data.error}}{{.}}{{else}}unknown error{{end}})
{{- else if eq $msg "Tag listing failed" -}}
    Could not list tags: {{$e.Data.repository}} ({{with $e.Data.error}}{{.}}{{else}}unknown error{{end}})
{{- else if $e.Data -}}
    {{$msg}} | {{range $k, $v := $e.Data -}}{{$k}}={{$v}} {{- end}}
{{- else -}}
    {{$msg}}
{{- end -}}
{{- end -}}`,

	`default`: `
{{- if .Report -}}
  {{- with .Report -}}
    {{len .Scanned}} Scanned, {{len .Transferred}} Transferred, {{len .Failed}} Failed, {{len .Skipped}} Skipped
    {{- range .Transferred}}
- {{.Source}} -> {{.Destination}}: {{.State}}
    {{- end -}}
    {{- range .Skipped}}
- {{.Source}}: {{.State}}{{with .Error}}: {{.}}{{end}}
    {{- end -}}
    {{- range .Failed}}
- {{.Source}}: {{.State}}: {{.Error}}
    {{- end -}}
  {{- end -}}
{{- else -}}
  {{range .Entries -}}{{.Message}}{{"\n"}}{{- end -}}
{{- end -}}`,

	`porcelain.v1.summary-no-log`: `
{{- if .Report -}}
  {{- range .Report.All }}
    {{- .Source}} -> {{.Destination}}: {{.State -}}
    {{- with .Error}} Error: {{.}}{{end}}{{ println }}
  {{- else -}}
    no images matched filter
  {{- end -}}
{{- end -}}`,

	`json.v1`: `{{ . | ToJSON }}`,
}
