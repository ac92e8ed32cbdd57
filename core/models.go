package core

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier derived from content.
// Identical content always produces an identical ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Source classifies which body of literature a document belongs to.
type Source string

const (
	// SourceWHO marks World Health Organization publications.
	SourceWHO Source = "WHO"
	// SourceClassical marks classical Ayurvedic texts such as the Charaka Samhita.
	SourceClassical Source = "CLASSICAL"
	// SourceAyushGov marks Ministry of AYUSH and other Government of India material.
	SourceAyushGov Source = "AYUSH/GOV"
	// SourceCCRAS marks Central Council for Research in Ayurvedic Sciences material.
	SourceCCRAS Source = "CCRAS"
	// SourceUnknown is used when classification fails.
	SourceUnknown Source = "UNKNOWN"
)

// Document represents one ingested PDF and its extraction summary.
// Chunks reference their parent document via DocID.
type Document struct {
	DocID      string    `json:"doc_id"`
	Title      string    `json:"title"`
	Source     Source    `json:"source"`
	FileName   string    `json:"file_name"`
	PageCount  int       `json:"page_count"`
	KeptPages  int       `json:"kept_pages"`
	ChunkCount int       `json:"chunk_count"`
	Notes      []string  `json:"notes,omitempty"` // extraction warnings, kept for the manifest
	InsertedAt time.Time `json:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Chunk is the retrieval unit: a contiguous passage of document text with
// its page range, section path, and classification metadata.
// The JSON field names are the interchange format of the ingestion pipeline;
// JSONL corpus files, badger values, and index metadata all share them.
type Chunk struct {
	ChunkID     string    `json:"chunk_id"`
	DocID       string    `json:"doc_id"`
	Source      Source    `json:"source"`
	Title       string    `json:"title"`
	FileName    string    `json:"file_name"`
	PageStart   int       `json:"page_start"`
	PageEnd     int       `json:"page_end"`
	SectionPath []string  `json:"section_path"`
	Tags        []string  `json:"tags,omitempty"`
	Text        string    `json:"text"`
	InsertedAt  time.Time `json:"inserted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Citation points a generated answer back at the chunk it was drawn from.
type Citation struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	FileName  string `json:"file_name"`
	PageStart int    `json:"page_start"`
	PageEnd   int    `json:"page_end"`
	Section   string `json:"section"`
	Tags      string `json:"tags"`
	ChunkID   string `json:"chunk_id"`
}

// DocIDFromPath generates a stable document ID from a file path.
// The ID is a lowercased slug of the file stem plus a short content hash
// of the full path, e.g. "charak_samhita_1a2b3c4d5e".
func DocIDFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var b strings.Builder
	for _, r := range stem {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	slug := strings.Trim(b.String(), "_")

	h, _ := blake2b.New(8, nil)
	h.Write([]byte(path))
	digest := hex.EncodeToString(h.Sum(nil))[:10]

	if slug == "" {
		return digest
	}
	return slug + "_" + digest
}

// ChunkID generates the ID for the n-th chunk of a document.
// Chunk IDs sort lexicographically in document order.
func ChunkID(docID string, n int) string {
	return fmt.Sprintf("%s::c%05d", docID, n)
}

// Section returns the chunk's section path joined for display, e.g.
// "Document > Introduction > Scope".
func (c *Chunk) Section() string {
	return strings.Join(c.SectionPath, " > ")
}

// Citation builds the citation for this chunk.
func (c *Chunk) Citation() Citation {
	return Citation{
		Source:    string(c.Source),
		Title:     c.Title,
		FileName:  c.FileName,
		PageStart: c.PageStart,
		PageEnd:   c.PageEnd,
		Section:   c.Section(),
		Tags:      strings.Join(c.Tags, ","),
		ChunkID:   c.ChunkID,
	}
}

// DisplayName formats a document label for listings:
// "Title  •  SOURCE  •  file.pdf", with fallbacks for missing fields.
func (d *Document) DisplayName() string {
	title := strings.TrimSpace(d.Title)
	fileName := strings.TrimSpace(d.FileName)
	source := strings.TrimSpace(string(d.Source))

	if title == "" {
		title = fileName
	}
	if title == "" {
		title = "Untitled"
	}
	if fileName == "" {
		fileName = "unknown.pdf"
	}
	if source == "" {
		source = string(SourceUnknown)
	}
	return title + "  •  " + source + "  •  " + fileName
}
