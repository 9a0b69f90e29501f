package display

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var templateFuncs = sprig.TxtFuncMap()

// DefaultHUD is drawn above the board while a level is playing.
const DefaultHUD = `{{ .Title | default "Untitled" }} ({{ .Level }}/{{ .Count }})
Turn {{ .Turn }}: {{ .Phase | toString | title }}{{ if .Moving }} ...{{ end }}
Top {{ .Side }}{{ range .Golems }}  {{ .ID }} {{ .Side }}{{ if .Synced }} linked{{ end }}{{ end }}
Music {{ .Music }}% [{{ repeat .MusicBars "=" }}{{ repeat (sub 10 .MusicBars | int) " " }}]  Effects {{ .Effects }}% [{{ repeat .EffectsBars "=" }}{{ repeat (sub 10 .EffectsBars | int) " " }}]`

// ParseTemplate compiles a HUD template with the sprig functions.
func ParseTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("hud").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
