package summarize

import (
	"fmt"
	"strings"
)

// Prompt templates are data, not logic. Every template instructs the model to
// answer in Korean regardless of the transcript's language and constrains the
// output shape for its mode.

const keyPointsTemplate = `
다음은 유튜브 영상의 자막입니다. 자막 언어와 무관하게 내용을 **한국어**로 간단히 요약해줘.
중요한 핵심 내용만 **3~5문장**으로 정리해줘.

자막:
%s
`

const timelineTemplate = `
다음 유튜브 자막을 보고 **시간 흐름 순서에 따라** 내용을 정리해줘.
자막 언어와 상관없이 **한국어**로 정리하고, **타임스탬프 기준으로 구간별 요점**을 알려줘.

형식:
- 00:00~02:30: 내용 요약

자막:
%s
`

const keywordsTemplate = `
다음 자막에서 중요한 **핵심 키워드** 5~10개를 추출해줘.
각 키워드마다 **간단한 설명**을 붙이고, 자막 언어와 관계없이 반드시 **한국어**로 출력해줘.

형식:
- 키워드: 설명

자막:
%s
`

const reductionHeader = "다음은 영상 요약 조각들입니다. 이들을 하나의 요약으로 통합해줘.\n\n"

// BuildPrompt fills the mode's template with one chunk of transcript text.
func BuildPrompt(chunkText string, mode Mode) string {
	return fmt.Sprintf(modeTable[mode].template, chunkText)
}

// BuildReductionPrompt joins per-chunk summaries, in chunk order, into the
// prompt that merges them into one final summary.
func BuildReductionPrompt(summaries []string) string {
	return reductionHeader + strings.Join(summaries, "\n")
}
