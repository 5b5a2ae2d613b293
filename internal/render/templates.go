package render

// Template is a switchable CSS theme offered on the rendered page.
type Template struct {
	ID          string
	Name        string
	Description string
	CSS         string
}

// DefaultTemplates returns the basic, modern and academic themes. The first
// entry is applied when the page loads.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:          "basic",
			Name:        "기본 템플릿",
			Description: "심플한 디자인의 기본 갭필 문제",
			CSS:         basicCSS,
		},
		{
			ID:          "modern",
			Name:        "모던 템플릿",
			Description: "현대적인 디자인의 갭필 문제",
			CSS:         modernCSS,
		},
		{
			ID:          "academic",
			Name:        "학습용 템플릿",
			Description: "학습에 최적화된 갭필 문제",
			CSS:         academicCSS,
		},
	}
}

const basicCSS = `
body { font-family: 'Noto Sans KR', sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
.gapfill-container { background-color: #f9f9f9; border: 1px solid #ddd; border-radius: 5px; padding: 20px; margin-bottom: 20px; }
.blank { border-bottom: 1px solid #333; padding: 0 5px; min-width: 80px; display: inline-block; text-align: center; }
.word-bank { display: flex; flex-wrap: wrap; gap: 10px; margin: 20px 0; }
.word-item { background-color: #e9ecef; padding: 5px 10px; border-radius: 3px; cursor: pointer; }
.hint-container { margin-top: 20px; border-top: 1px solid #ddd; padding-top: 20px; }
.hint { margin-bottom: 10px; display: none; }
.hint-button { background-color: #4263eb; color: white; border: none; padding: 5px 10px; border-radius: 3px; cursor: pointer; }
.answer-key { margin-top: 20px; border-top: 1px solid #ddd; padding-top: 20px; display: none; }
.show-answers { background-color: #38d9a9; color: white; border: none; padding: 5px 10px; border-radius: 3px; cursor: pointer; margin-top: 20px; }
.tab { overflow: hidden; border: 1px solid #ccc; background-color: #f1f1f1; border-radius: 5px 5px 0 0; }
.tab button { background-color: inherit; float: left; border: none; outline: none; cursor: pointer; padding: 10px 16px; transition: 0.3s; }
.tab button:hover { background-color: #ddd; }
.tab button.active { background-color: #4263eb; color: white; }
.tabcontent { display: none; padding: 20px; border: 1px solid #ccc; border-top: none; border-radius: 0 0 5px 5px; }
`

const modernCSS = `
body { font-family: 'Noto Sans KR', sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f8f9fa; }
.gapfill-container { background-color: white; border-radius: 10px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); padding: 30px; margin-bottom: 30px; }
.blank { border: none; border-bottom: 2px solid #4263eb; padding: 0 5px; min-width: 100px; display: inline-block; text-align: center; color: #4263eb; font-weight: bold; }
.word-bank { display: flex; flex-wrap: wrap; gap: 10px; margin: 25px 0; }
.word-item { background-color: #e7f5ff; color: #1971c2; padding: 8px 15px; border-radius: 20px; cursor: pointer; transition: all 0.2s ease; }
.word-item:hover { background-color: #1971c2; color: white; }
.hint { margin-bottom: 15px; display: none; padding: 10px; background-color: #fff9db; border-left: 4px solid #fcc419; border-radius: 4px; }
.hint-button { background-color: #4263eb; color: white; border: none; padding: 8px 15px; border-radius: 5px; cursor: pointer; }
.answer-key { margin-top: 30px; border-top: 1px solid #e9ecef; padding-top: 20px; display: none; }
.show-answers { background-color: #38d9a9; color: white; border: none; padding: 8px 15px; border-radius: 5px; cursor: pointer; margin-top: 20px; }
.tab { overflow: hidden; border: none; background-color: transparent; display: flex; }
.tab button { background-color: #e9ecef; border: none; outline: none; cursor: pointer; padding: 12px 20px; border-radius: 5px; margin-right: 10px; font-weight: 500; }
.tab button.active { background-color: #4263eb; color: white; }
.tabcontent { display: none; padding: 30px; background-color: white; border-radius: 10px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
`

const academicCSS = `
body { font-family: 'Noto Sans KR', sans-serif; line-height: 1.8; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
.gapfill-container { background-color: white; border: 1px solid #d0d0d0; border-radius: 5px; padding: 25px; margin-bottom: 25px; }
.blank { background-color: #f0f4ff; border: 1px dashed #4263eb; padding: 2px 8px; min-width: 100px; display: inline-block; text-align: center; border-radius: 3px; }
.word-bank { display: flex; flex-wrap: wrap; gap: 12px; margin: 25px 0; padding: 15px; background-color: #f8f9fa; border-radius: 5px; }
.word-item { background-color: white; color: #495057; padding: 8px 15px; border-radius: 5px; cursor: pointer; border: 1px solid #ced4da; }
.hint { margin-bottom: 15px; display: none; padding: 12px; background-color: #f8f9fa; border-left: 4px solid #4263eb; border-radius: 4px; }
.hint-button { background-color: #4263eb; color: white; border: none; padding: 8px 15px; border-radius: 5px; cursor: pointer; margin-right: 10px; margin-bottom: 10px; }
.grammar-note { background-color: #e7f5ff; border: 1px solid #74c0fc; border-radius: 5px; padding: 15px; margin: 20px 0; }
.grammar-note h4 { color: #1971c2; margin-top: 0; }
.answer-key { margin-top: 30px; border-top: 1px solid #e9ecef; padding-top: 20px; display: none; }
.show-answers { background-color: #38d9a9; color: white; border: none; padding: 8px 15px; border-radius: 5px; cursor: pointer; margin-top: 20px; }
.tab { overflow: hidden; border: 1px solid #dee2e6; background-color: #f8f9fa; border-radius: 5px; display: flex; }
.tab button { background-color: inherit; border: none; outline: none; cursor: pointer; padding: 12px 20px; font-weight: 500; flex: 1; text-align: center; }
.tab button.active { background-color: #4263eb; color: white; }
.tabcontent { display: none; padding: 25px; border: 1px solid #dee2e6; border-top: none; border-radius: 0 0 5px 5px; background-color: white; }
.korean-translation { margin-top: 20px; padding: 15px; background-color: #f8f9fa; border-radius: 5px; border-left: 4px solid #adb5bd; }
`
