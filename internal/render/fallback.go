package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/abhisek/gapfill/internal/exercise"
)

type fallbackTier struct {
	ID      string
	Label   string
	Content *exercise.TierContent
}

type fallbackPage struct {
	Passage  string
	Tiers    []fallbackTier
	Exercise *exercise.Exercise
}

var fallbackTmpl = template.Must(template.New("fallback").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>갭필 문제</title>
</head>
<body>
<div class="container">
  <h1>갭필 문제</h1>
  <div class="tab">
  {{- range $i, $t := .Tiers}}
    <button class="tablinks{{if eq $i 0}} active{{end}}" data-tier="{{$t.ID}}">{{$t.Label}}</button>
  {{- end}}
  </div>
  {{- range $i, $t := .Tiers}}
  <div id="{{$t.ID}}" class="tabcontent"{{if eq $i 0}} style="display:block"{{end}}>
    <div class="gapfill-container">
      <p class="passage">{{if $t.Content.Text}}{{$t.Content.Text}}{{else}}{{$.Passage}}{{end}}</p>
      {{- if $t.Content.ShuffledAnswers}}
      <div class="word-bank">
        {{- range $t.Content.ShuffledAnswers}}
        <span class="word-item">{{.}}</span>
        {{- end}}
      </div>
      {{- end}}
      {{- if $t.Content.Hints}}
      <div class="hint-container">
        {{- range $n, $h := $t.Content.Hints}}
        <button class="hint-button" data-hint="{{$t.ID}}-{{$n}}">힌트 {{inc $n}}</button>
        <div class="hint" id="hint-{{$t.ID}}-{{$n}}">{{$h}}</div>
        {{- end}}
      </div>
      {{- end}}
    </div>
  </div>
  {{- end}}
  {{- with .Exercise.KoreanTranslation}}
  <div class="korean-translation">
    <h3>한국어 번역</h3>
    <p>{{.}}</p>
  </div>
  {{- end}}
  <button class="show-answers">정답 확인</button>
  <div class="answer-key">
    <h3>정답</h3>
    {{- range .Tiers}}
    {{- if .Content.Answers}}
    <h4>{{.Label}}</h4>
    <ol>
      {{- range .Content.Answers}}
      <li>{{.}}</li>
      {{- end}}
    </ol>
    {{- end}}
    {{- end}}
    {{- if .Exercise.AnswerKey}}
    <ul>
      {{- range .Exercise.AnswerKey}}
      <li>{{.}}</li>
      {{- end}}
    </ul>
    {{- end}}
  </div>
  {{- if .Exercise.CulturalNotes}}
  <div class="cultural-notes">
    <h3>문화적 참고사항</h3>
    <ul>
      {{- range .Exercise.CulturalNotes}}
      <li>{{.}}</li>
      {{- end}}
    </ul>
  </div>
  {{- end}}
</div>
<script>
  document.querySelectorAll('.tablinks').forEach(function(btn) {
    btn.addEventListener('click', function() {
      document.querySelectorAll('.tabcontent').forEach(function(c) { c.style.display = 'none'; });
      document.querySelectorAll('.tablinks').forEach(function(b) { b.classList.remove('active'); });
      document.getElementById(this.getAttribute('data-tier')).style.display = 'block';
      this.classList.add('active');
    });
  });
  document.querySelectorAll('.hint-button').forEach(function(btn) {
    btn.addEventListener('click', function() {
      document.getElementById('hint-' + this.getAttribute('data-hint')).style.display = 'block';
    });
  });
  document.querySelector('.show-answers').addEventListener('click', function() {
    document.querySelector('.answer-key').style.display = 'block';
  });
</script>
</body>
</html>
`))

// Fallback renders a self-contained exercise page locally. It is used when
// the model's render response carries no HTML.
func Fallback(passage string, ex *exercise.Exercise) (string, error) {
	if ex == nil {
		ex = exercise.New()
	}
	page := fallbackPage{Passage: passage, Exercise: ex}
	for _, t := range exercise.AllTiers {
		page.Tiers = append(page.Tiers, fallbackTier{
			ID:      string(t),
			Label:   t.Label(),
			Content: ex.Tier(t),
		})
	}

	var buf bytes.Buffer
	if err := fallbackTmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("render fallback page: %w", err)
	}
	return buf.String(), nil
}
