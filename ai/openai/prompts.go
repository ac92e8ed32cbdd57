package openai

import (
	"fmt"
	"strings"

	"github.com/sahilrangra/ayur-llm/ai"
)

const systemPrompt = "You are a careful RAG assistant."

// answerRules are the ground rules prepended to every answer prompt.
// The second rule is swapped in non-strict mode.
var answerRules = []string{
	"You are an Ayurveda assistant. Answer ONLY using the provided sources.",
	"If the sources do not contain the answer, say: '" + ai.NoInformationAnswer + "'",
	"Do NOT invent facts, dosages, or medical claims.",
	"Be concise and practical.",
}

const cautiousRule = "If sources are weak, answer cautiously and explicitly say what is missing."

// buildAnswerPrompt assembles the user prompt: rules, numbered and labeled
// sources, the question, and the citation instruction.
func buildAnswerPrompt(question string, contexts []ai.Context, strict bool) string {
	rules := make([]string, len(answerRules))
	copy(rules, answerRules)
	if !strict {
		rules[1] = cautiousRule
	}

	ctxBlocks := make([]string, 0, len(contexts))
	for i, c := range contexts {
		header := fmt.Sprintf(
			"[SOURCE %d] source=%s | title=%s | file=%s | pages=%d-%d | section=%s",
			i+1, c.Source, c.Title, c.FileName, c.PageStart, c.PageEnd, c.Section,
		)
		ctxBlocks = append(ctxBlocks, header+"\n"+c.Text)
	}

	var b strings.Builder
	b.WriteString("RULES:\n- ")
	b.WriteString(strings.Join(rules, "\n- "))
	b.WriteString("\n\nSOURCES:\n")
	b.WriteString(strings.Join(ctxBlocks, "\n\n"))
	b.WriteString("\n\nQUESTION: ")
	b.WriteString(question)
	b.WriteString("\n\nANSWER (with short citations like [SOURCE 2], [SOURCE 4]):")
	return b.String()
}
