// Package prompt builds the instructions sent to the model for analysis,
// exercise generation and HTML rendering, and computes the local passage
// statistics that accompany an analysis.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/gapfill/internal/exercise"
)

const analysisSystem = `당신은 영어 교육 전문가로서 수능영어 지문을 분석하는 역할을 합니다.
주어진 영어 지문을 다음 언어적 측면에서 분석하세요:
1. 어휘-의미적 특성 (내용어, 학술 어휘, 전문 용어)
2. 문법-구문적 특성 (구조적 요소, 기능어)
3. 담화-화용적 특성 (응집 장치, 태도 표지, 화행)
4. 개념-인지적 특성 (은유, 이미지 스키마, 프레임)
5. 문화-번역적 특성 (문화 특정적 참조, 번역 과제)

분석 결과는 JSON 형식으로 반환하세요. "words" 배열의 각 항목에 다음 정보를 포함하세요:
- word: 단어/구문
- category: 언어적 범주 (위 5가지 중 하나)
- type: 세부 유형 (예: 학술 어휘, 접속사, 은유 등)
- importance: 교육적 중요성 (언어 학습자에게 왜 중요한지)
- difficulty: 난이도 (foundation, intermediate, advanced, expert)
한국어와 영어의 대조적 관점에서 중요한 점은 "contrastive_points" 배열에 넣으세요.`

const generationSystem = `당신은 영어 교육 전문가로서 수능영어 지문을 바탕으로 갭필 문제를 생성하는 역할을 합니다.
주어진 영어 지문을 분석하고, 다음 네 가지 난이도 수준의 갭필 문제를 생성하세요:

1. 기초 단계 (foundation): 핵심 의미 전달 요소 (기본 어휘)
2. 중급 단계 (intermediate): 구조적 및 연어 패턴 (문법 요소)
3. 고급 단계 (advanced): 담화 구성 및 화용적 특성 (응집성, 일관성)
4. 전문가 단계 (expert): 개념적 이해 및 문화적 뉘앙스 (은유, 함축)

각 난이도별로 다음을 포함하세요:
- text: 빈칸이 있는 지문
- blanks: 빈칸 목록
- answers: 빈칸 순서와 같은 순서의 정답 목록
- hints: 각 빈칸에 대한 힌트

한국 영어학습자를 위한 시스템이므로, 한국어 학습자가 어려워할 수 있는 부분을 고려하세요.
결과는 JSON 형식으로 반환하세요.`

const renderSystem = `당신은 웹 개발자로서 갭필 문제를 HTML 형식으로 변환하는 역할을 합니다.
주어진 갭필 문제 데이터를 사용하여 다음 요소를 포함하는 HTML 페이지를 생성하세요:

1. 반응형 디자인 (모바일 및 데스크톱 지원)
2. 부트스트랩 스타일링
3. 난이도별 탭 인터페이스
4. 드래그 앤 드롭 기능
5. 힌트 표시 기능
6. 정답 확인 기능
7. 한국어 인터페이스 (버튼, 설명 등)

완전한 HTML 파일을 생성하세요 (CSS 및 JavaScript 포함).
외부 의존성은 CDN을 통해 포함하세요.
정답 영역은 <div class="answer-key"> 로 감싸세요.`

// expectedShape is the document the generation prompt asks for. It matches
// the canonical exercise so the structured normalizer branch applies.
const expectedShape = `{
  "tiers": {
    "foundation":   {"text": "...", "blanks": ["..."], "answers": ["..."], "hints": ["..."]},
    "intermediate": {"text": "...", "blanks": ["..."], "answers": ["..."], "hints": ["..."]},
    "advanced":     {"text": "...", "blanks": ["..."], "answers": ["..."], "hints": ["..."]},
    "expert":       {"text": "...", "blanks": ["..."], "answers": ["..."], "hints": ["..."]}
  },
  "korean_translation": "...",
  "answer_key": ["..."],
  "cultural_notes": ["..."]
}`

// Composer builds model prompts. It holds the grammar focus table, which is
// read-only after construction, so a Composer is safe for concurrent use.
type Composer struct {
	focus []GrammarFocus
}

// NewComposer returns a Composer over the given grammar focus table.
// A nil table uses DefaultGrammarFocus.
func NewComposer(focus []GrammarFocus) *Composer {
	if focus == nil {
		focus = DefaultGrammarFocus()
	}
	return &Composer{focus: focus}
}

// Focus returns the grammar focus table.
func (c *Composer) Focus() []GrammarFocus {
	return c.focus
}

// ScanGrammar lists the grammar focus entries the passage exhibits.
// Zero matches is a normal result.
func (c *Composer) ScanGrammar(passage string) []GrammarMatch {
	return scanGrammar(c.focus, passage)
}

// AnalysisPrompt returns the prompt and system instruction for the
// linguistic analysis call.
func (c *Composer) AnalysisPrompt(passage string) (prompt, system string) {
	var b strings.Builder
	b.WriteString("다음 수능영어 지문을 분석해주세요:\n\n")
	b.WriteString(passage)
	b.WriteString("\n\nJSON 형식으로 응답해주세요.")
	return b.String(), analysisSystem
}

// GenerationPrompt returns the prompt and system instruction for the
// exercise generation call. analysis is embedded as indented JSON.
func (c *Composer) GenerationPrompt(passage string, analysis any) (prompt, system string) {
	var b strings.Builder
	b.WriteString("다음 수능영어 지문을 한국 영어학습자를 위한 갭필 문제로 변환해주세요:\n\n")
	b.WriteString(passage)

	b.WriteString("\n\n다음 문법 요소에 중점을 두어 갭필 문제를 생성해주세요:\n")
	for _, f := range c.focus {
		fmt.Fprintf(&b, "- %s\n", f.Description)
	}

	if found := FormatGrammar(c.ScanGrammar(passage)); found != "" {
		b.WriteString("\n지문에서 발견된 주요 문법 요소:\n")
		b.WriteString(found)
	}

	if analysis != nil {
		b.WriteString("\n사전 분석 결과:\n")
		b.WriteString(indentJSON(analysis))
		b.WriteString("\n")
	}

	b.WriteString("\n다음 사항을 포함해주세요:\n")
	b.WriteString("1. 난이도별 갭필 문제 (기초, 중급, 고급, 전문가)\n")
	b.WriteString("2. 각 빈칸에 대한 간단한 힌트\n")
	b.WriteString("3. 기본적인 한국어 번역만 제공 (상세한 문법 설명 없이)\n")
	b.WriteString("4. 정답 및 해설\n")
	b.WriteString("\n결과는 다음 형태의 JSON으로 반환해주세요:\n")
	b.WriteString(expectedShape)

	return b.String(), generationSystem
}

// RenderPrompt returns the prompt and system instruction for the HTML
// rendering call.
func (c *Composer) RenderPrompt(passage string, ex *exercise.Exercise) (prompt, system string, err error) {
	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshal exercise: %w", err)
	}

	var b strings.Builder
	b.WriteString("다음 원본 텍스트와 갭필 문제 데이터를 사용하여 HTML 페이지를 생성해주세요:\n\n")
	b.WriteString("원본 텍스트:\n")
	b.WriteString(passage)
	b.WriteString("\n\n갭필 문제 데이터:\n")
	b.Write(data)
	b.WriteString("\n\n완전한 HTML 코드를 반환해주세요.")
	return b.String(), renderSystem, nil
}

// indentJSON renders v as indented JSON, falling back to its %v form for
// values JSON cannot represent.
func indentJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
