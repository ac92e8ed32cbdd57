package openai

import (
	"strings"
	"testing"

	"github.com/sahilrangra/ayur-llm/ai"
	"github.com/stretchr/testify/assert"
)

func testContexts() []ai.Context {
	return []ai.Context{
		{
			Source:    "WHO",
			Title:     "WHO Benchmarks",
			FileName:  "who_benchmarks.pdf",
			Section:   "Document > Safety",
			PageStart: 3,
			PageEnd:   4,
			Text:      "Benchmark text about safety.",
		},
		{
			Source:    "CLASSICAL",
			Title:     "Charaka Samhita",
			FileName:  "Charak_Samhita.pdf",
			Section:   "Document > Sutrasthana",
			PageStart: 12,
			PageEnd:   12,
			Text:      "Dinacharya passage.",
		},
	}
}

func TestBuildAnswerPromptStrict(t *testing.T) {
	prompt := buildAnswerPrompt("What is dinacharya?", testContexts(), true)

	assert.True(t, strings.HasPrefix(prompt, "RULES:\n- "))
	assert.Contains(t, prompt, ai.NoInformationAnswer)
	assert.NotContains(t, prompt, cautiousRule)

	assert.Contains(t, prompt, "[SOURCE 1] source=WHO | title=WHO Benchmarks | file=who_benchmarks.pdf | pages=3-4 | section=Document > Safety")
	assert.Contains(t, prompt, "[SOURCE 2] source=CLASSICAL")
	assert.Contains(t, prompt, "Dinacharya passage.")

	assert.Contains(t, prompt, "QUESTION: What is dinacharya?")
	assert.True(t, strings.HasSuffix(prompt, "ANSWER (with short citations like [SOURCE 2], [SOURCE 4]):"))
}

func TestBuildAnswerPromptCautious(t *testing.T) {
	prompt := buildAnswerPrompt("What is dinacharya?", testContexts(), false)

	assert.Contains(t, prompt, cautiousRule)
	assert.NotContains(t, prompt, ai.NoInformationAnswer)
}

func TestBuildAnswerPromptRulesUnchanged(t *testing.T) {
	// Non-strict prompts must not mutate the shared rule set.
	_ = buildAnswerPrompt("q", nil, false)
	assert.Contains(t, answerRules[1], ai.NoInformationAnswer)
}
