package chunker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/IQ2i/thot/internal/core/domain"
)

var (
	whitespace = regexp.MustCompile(`\s+`)

	// A sentence ends with one or more terminators followed by whitespace
	// or the end of the text.
	sentenceEnd = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
)

// Split cuts text into chunks of at most chunkSize characters.
//
// Paragraphs (lines) are packed first. A paragraph longer than chunkSize
// is split into sentences, and a sentence longer than chunkSize into words.
// Sentence and word chunks are seeded with whole trailing units of the
// previous chunk, up to overlap characters. A single word longer than
// chunkSize is emitted on its own, never cut.
//
// Lengths are counted in characters (runes). The result is deterministic.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if err := ValidateParameters(chunkSize, overlap); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	s := splitter{size: chunkSize, overlap: overlap}
	return s.paragraphs(text), nil
}

// ValidateParameters checks chunkSize > 0 and 0 <= overlap < chunkSize.
func ValidateParameters(chunkSize, overlap int) error {
	switch {
	case chunkSize <= 0:
		return fmt.Errorf("%w: chunk size must be greater than 0, got %d", domain.ErrInvalidParameter, chunkSize)
	case overlap < 0:
		return fmt.Errorf("%w: overlap cannot be negative, got %d", domain.ErrInvalidParameter, overlap)
	case overlap >= chunkSize:
		return fmt.Errorf("%w: overlap %d must be less than chunk size %d", domain.ErrInvalidParameter, overlap, chunkSize)
	}
	return nil
}

type splitter struct {
	size    int
	overlap int
}

// run accumulates units joined by a separator and tracks the joined length.
type run struct {
	units  []string
	length int
}

func (r *run) lengthWith(unit string) int {
	if len(r.units) == 0 {
		return runeLen(unit)
	}
	return r.length + 1 + runeLen(unit)
}

func (r *run) add(unit string) {
	r.length = r.lengthWith(unit)
	r.units = append(r.units, unit)
}

func (r *run) reset(units []string) {
	r.units = r.units[:0:0]
	r.length = 0
	for _, u := range units {
		r.add(u)
	}
}

func (r *run) empty() bool {
	return len(r.units) == 0
}

func (s splitter) paragraphs(text string) []string {
	var chunks []string
	var current run

	for _, line := range strings.Split(text, "\n") {
		paragraph := strings.TrimSpace(line)
		if paragraph == "" {
			continue
		}

		if runeLen(paragraph) > s.size {
			if !current.empty() {
				chunks = append(chunks, strings.Join(current.units, "\n"))
				current.reset(nil)
			}
			chunks = append(chunks, s.sentences(paragraph)...)
			continue
		}

		if current.lengthWith(paragraph) > s.size && !current.empty() {
			chunks = append(chunks, strings.Join(current.units, "\n"))
			current.reset([]string{paragraph})
			continue
		}
		current.add(paragraph)
	}

	if !current.empty() {
		chunks = append(chunks, strings.Join(current.units, "\n"))
	}

	result := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			result = append(result, c)
		}
	}
	return result
}

func (s splitter) sentences(paragraph string) []string {
	text := whitespace.ReplaceAllString(strings.TrimSpace(paragraph), " ")

	sentences := extractSentences(text)
	if sentences == nil {
		return s.words(text)
	}

	var chunks []string
	var current run

	for _, sentence := range sentences {
		if runeLen(sentence) > s.size {
			if !current.empty() {
				chunks = append(chunks, strings.Join(current.units, " "))
				current.reset(nil)
			}
			chunks = append(chunks, s.words(sentence)...)
			continue
		}

		if current.lengthWith(sentence) > s.size && !current.empty() {
			chunks = append(chunks, strings.Join(current.units, " "))
			current.reset(append(s.overlapBuffer(current.units, sentence), sentence))
			continue
		}
		current.add(sentence)
	}

	if !current.empty() {
		chunks = append(chunks, strings.Join(current.units, " "))
	}
	return chunks
}

func (s splitter) words(text string) []string {
	var chunks []string
	var current run

	for _, word := range strings.Split(strings.TrimSpace(text), " ") {
		if word == "" {
			continue
		}

		if current.lengthWith(word) > s.size && !current.empty() {
			chunks = append(chunks, strings.Join(current.units, " "))
			current.reset(append(s.overlapBuffer(current.units, word), word))
			continue
		}
		current.add(word)
	}

	if !current.empty() {
		chunks = append(chunks, strings.Join(current.units, " "))
	}
	return chunks
}

// overlapBuffer walks backward through units and keeps whole units while
// their combined length stays within the overlap. The budget is reduced so
// that the buffer joined with next still fits in a chunk.
func (s splitter) overlapBuffer(units []string, next string) []string {
	budget := s.overlap
	if room := s.size - runeLen(next) - 1; room < budget {
		budget = room
	}
	if budget <= 0 {
		return nil
	}

	used := 0
	start := len(units)
	for i := len(units) - 1; i >= 0; i-- {
		cost := runeLen(units[i])
		if start < len(units) {
			cost++
		}
		if used+cost > budget {
			break
		}
		used += cost
		start = i
	}

	buffer := make([]string, len(units)-start)
	copy(buffer, units[start:])
	return buffer
}

// extractSentences returns the sentences of whitespace-normalised text with
// their terminators, or nil when the text has no sentence boundary.
func extractSentences(text string) []string {
	bounds := sentenceEnd.FindAllStringIndex(text, -1)
	if len(bounds) == 0 {
		return nil
	}

	var sentences []string
	start := 0
	for _, b := range bounds {
		if sentence := strings.TrimSpace(text[start:b[1]]); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = b[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
