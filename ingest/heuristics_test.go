package ingest

import (
	"strings"
	"testing"

	"github.com/sahilrangra/ayur-llm/core"
	"github.com/stretchr/testify/assert"
)

func TestLooksLikeHeading(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"numbered section", "6.3 Strategic objective 3: promote universal health coverage", true},
		{"deep numbered section", "2.1.4 Quality control of raw materials", true},
		{"all caps header", "INTRODUCTION TO AYURVEDA", true},
		{"front matter", "Preface", true},
		{"front matter caps", "CONTENTS", true},
		{"too short", "Ix", false},
		{"page label", "Page ii", false},
		{"page of", "12 of 38", false},
		{"url", "www.who.int", false},
		{"email", "info@ccras.nic.in", false},
		{"date line", "New Delhi, January 2013", false},
		{"sentence with verb", "Ayurveda is one of the oldest medical systems", false},
		{"many commas", "Herbs, minerals, and animal products are used", false},
		{"period ending", "This chapter describes the methodology.", false},
		{"role line", "Compiled by the research division", false},
		{"isbn", "ISBN 978-92-4-150609-0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeHeading(tt.line, 4, 120))
		})
	}
}

func TestLooksLikeHeadingLengthBounds(t *testing.T) {
	assert.False(t, LooksLikeHeading("ABC", 4, 120))
	long := "1 " + strings.Repeat("A", 130)
	assert.False(t, LooksLikeHeading(long, 4, 120))
}

func TestInferSourceFromTitle(t *testing.T) {
	assert.Equal(t, core.SourceWHO, InferSourceFromTitle("WHO traditional medicine strategy 2014-2023"))
	assert.Equal(t, core.SourceAyushGov, InferSourceFromTitle("Integration of AYUSH under NPCDCS"))
	assert.Equal(t, core.SourceCCRAS, InferSourceFromTitle("CCRAS research compendium"))
	assert.Equal(t, core.SourceClassical, InferSourceFromTitle("Charaka Samhita Sutrasthana"))
	assert.Equal(t, core.SourceUnknown, InferSourceFromTitle("Random report"))
}

func TestAutoTags(t *testing.T) {
	tags := AutoTags("WHO benchmarks for training and safety in Ayurveda")
	assert.Equal(t, []string{"safety", "regulation"}, tags)

	tags = AutoTags("Charaka Samhita: diet and lifestyle strategy")
	assert.Equal(t, []string{"diet", "lifestyle", "policy", "evidence", "classical", "sutra"}, tags)

	assert.Empty(t, AutoTags("unrelated"))
}
