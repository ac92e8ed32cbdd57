package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSectionPaths(t *testing.T) {
	pages := map[int]string{
		1: "Cover page text without headings is a sentence",
		2: "1 Introduction\nbody text",
		3: "more body text",
		4: "1.1 Background\nbody text",
		5: "CONCLUSIONS AND RECOMMENDATIONS\nbody text",
	}

	paths := BuildSectionPaths(pages, 4, 120)

	assert.Equal(t, []string{"Document"}, paths[1])
	assert.Equal(t, []string{"Document", "1 Introduction"}, paths[2])
	// Pages without a heading inherit the current section.
	assert.Equal(t, []string{"Document", "1 Introduction"}, paths[3])
	// Numbered headings replace the H1.
	assert.Equal(t, []string{"Document", "1.1 Background"}, paths[4])
	// ALL CAPS headers replace the H1 too.
	assert.Equal(t, []string{"Document", "CONCLUSIONS AND RECOMMENDATIONS"}, paths[5])
}

func TestBuildSectionPathsNestsPlainHeadings(t *testing.T) {
	pages := map[int]string{
		1: "1 Introduction\nbody",
		2: "Glossary\nterm definitions",
	}

	paths := BuildSectionPaths(pages, 4, 120)

	require.Equal(t, []string{"Document", "1 Introduction"}, paths[1])
	// Whitelisted front-matter headings are neither numbered nor ALL
	// CAPS, so they nest as H2 under the current H1.
	assert.Equal(t, []string{"Document", "1 Introduction", "Glossary"}, paths[2])
}

func TestDedupeAdjacent(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "a"}, dedupeAdjacent([]string{"a", "a", "b", "a", "a"}))
	assert.Empty(t, dedupeAdjacent(nil))
}
