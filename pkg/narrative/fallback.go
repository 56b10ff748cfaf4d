package narrative

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for narration templates.
var templateFuncs = sprig.TxtFuncMap()

// Static narration templates, one per action kind. These are the
// deterministic fallback used when the narrative collaborator fails or
// is not configured.
var fallbackTemplates = map[ActionKind]string{
	ActionExamine: `{{ .LocationName }}. {{ .LocationDescription }}
{{- if .CharactersPresent }}
Present: {{ join ", " .CharactersPresent }}.
{{- end }}
{{- if .HasMoreToFind }}
This place hasn't been fully searched yet.
{{- else }}
You've seen all there is to see here.
{{- end }}`,

	ActionTalk: `You speak with {{ .Character.Name }}. They seem {{ .Character.Mood }}.
{{- range .SharedClues }}
New clue: {{ . }}.
{{- end }}
{{- if not .SharedClues }}
They have nothing new to tell you.
{{- end }}`,

	ActionSearch: `You search the area carefully.
{{- range .Discoveries }}
Found {{ .Kind }}: {{ .Name }}. {{ .Description }}
{{- end }}
{{- range .SkillsTooLow }}
Something here escapes you; sharper {{ . }} might reveal it.
{{- end }}
{{- if not .Discoveries }}
You find nothing new.
{{- end }}`,

	ActionTravel: `You travel to {{ .LocationName }}. {{ .LocationDescription }}
{{- if .CharactersPresent }}
Present: {{ join ", " .CharactersPresent }}.
{{- end }}
The time is {{ .TimeString }} on day {{ .Day }}.`,
}

var compiledFallbacks = func() map[ActionKind]*template.Template {
	out := make(map[ActionKind]*template.Template, len(fallbackTemplates))
	for kind, text := range fallbackTemplates {
		out[kind] = template.Must(template.New(string(kind)).Funcs(templateFuncs).Parse(text))
	}
	return out
}()

// Fallback renders the static narration for a context. It never depends
// on any external service and always succeeds for known action kinds.
func Fallback(ctx *Context) string {
	tmpl, ok := compiledFallbacks[ctx.Action]
	if !ok {
		return fmt.Sprintf("You %s.", ctx.Action)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		// Templates are static and tested; an execute error means a
		// malformed context, so degrade to the plainest possible line.
		return fmt.Sprintf("You %s.", ctx.Action)
	}
	return buf.String()
}
