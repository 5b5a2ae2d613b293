package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/abhisek/gapfill/internal/prompt"
)

const (
	bodyTag       = "<body>"
	containerDiv  = `<div class="container">`
	answerKeyDiv  = `<div class="answer-key">`
	templateStyle = "template-style"
)

var selectionTmpl = template.Must(template.New("selection").Parse(`
<div class="template-selection">
  <h3>템플릿 선택</h3>
  <div class="template-options">
  {{- range .}}
    <div class="template-option" data-template="{{.ID}}">
      <h4>{{.Name}}</h4>
      <p>{{.Description}}</p>
      <button class="select-template" data-template="{{.ID}}">선택</button>
    </div>
  {{- end}}
  </div>
</div>
<style>
  .template-selection { margin: 20px 0; padding: 20px; background-color: #f8f9fa; border-radius: 5px; border: 1px solid #dee2e6; }
  .template-options { display: flex; flex-wrap: wrap; gap: 20px; margin-top: 15px; }
  .template-option { flex: 1; min-width: 200px; padding: 15px; background-color: white; border-radius: 5px; border: 1px solid #dee2e6; }
  .template-option h4 { margin-top: 0; color: #4263eb; }
  .select-template { background-color: #4263eb; color: white; border: none; padding: 8px 15px; border-radius: 5px; cursor: pointer; }
</style>
<script>
  document.addEventListener('DOMContentLoaded', function() {
    var templates = {
    {{- range .}}
      {{.ID}}: {{.CSS}},
    {{- end}}
    };
    function changeTemplate(id) {
      var existing = document.getElementById('` + templateStyle + `');
      if (existing) { existing.remove(); }
      var style = document.createElement('style');
      style.id = '` + templateStyle + `';
      style.textContent = templates[id];
      document.head.appendChild(style);
    }
    document.querySelectorAll('.select-template').forEach(function(button) {
      button.addEventListener('click', function() {
        changeTemplate(this.getAttribute('data-template'));
      });
    });
    {{- with index . 0}}
    changeTemplate({{.ID}});
    {{- end}}
  });
</script>
`))

var grammarNotesTmpl = template.Must(template.New("notes").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`
{{- range .}}
<div class="grammar-note">
  <h4>{{.Description}}</h4>
  <p>{{.KoreanNote}}</p>
  <p>예시: {{join .Examples " / "}}</p>
</div>
{{- end}}
`))

// Optimizer adds the learner-optimization markup to a rendered page: a
// theme picker and grammar notes for the areas Korean learners find hard.
// The markup is rendered once, so Optimize is safe for concurrent use.
type Optimizer struct {
	selection string
	notes     string
}

// NewOptimizer renders the theme picker for templates and the grammar notes
// for focus. At least one template is required.
func NewOptimizer(templates []Template, focus []prompt.GrammarFocus) (*Optimizer, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("render: no templates")
	}

	var sel bytes.Buffer
	if err := selectionTmpl.Execute(&sel, templates); err != nil {
		return nil, fmt.Errorf("render template selection: %w", err)
	}

	var notes bytes.Buffer
	if err := grammarNotesTmpl.Execute(&notes, focus); err != nil {
		return nil, fmt.Errorf("render grammar notes: %w", err)
	}

	return &Optimizer{selection: sel.String(), notes: notes.String()}, nil
}

// Optimize inserts the theme picker after <body> (or after the container
// div, or at the very start) and places the grammar notes before every
// answer-key section.
func (o *Optimizer) Optimize(html string) string {
	switch {
	case strings.Contains(html, bodyTag):
		html = strings.Replace(html, bodyTag, bodyTag+"\n"+o.selection, 1)
	case strings.Contains(html, containerDiv):
		html = strings.Replace(html, containerDiv, containerDiv+"\n"+o.selection, 1)
	default:
		html = o.selection + html
	}

	if o.notes != "" {
		html = strings.ReplaceAll(html, answerKeyDiv, o.notes+"\n"+answerKeyDiv)
	}
	return html
}
