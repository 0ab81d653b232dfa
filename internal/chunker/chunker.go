// Package chunker splits extracted document text into overlapping,
// boundary-aware segments suitable for indexing.
package chunker

import "strings"

// DefaultChunkSize is the default window width in characters.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of characters shared between
// consecutive chunks.
const DefaultOverlap = 200

// SplitText slides a window of chunkSize over text with a step of
// chunkSize-overlap. Windows that do not reach the end of the text are
// truncated at the last sentence terminator or line break, provided that
// break lies past the window's midpoint; otherwise the hard cut at
// chunkSize is kept. Output is a pure function of the inputs, which keeps
// re-ingestion idempotent.
func SplitText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	if len(text) <= chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		sliceEnd := end
		if sliceEnd > len(text) {
			sliceEnd = len(text)
		}
		chunk := text[start:sliceEnd]

		if end < len(text) {
			if bp := lastBreak(chunk); bp > chunkSize/2 {
				// Prefer a clean sentence/line boundary over a hard cut
				// and resume scanning just past the break.
				chunk = chunk[:bp+1]
				end = start + bp + 1
			}
		}

		chunks = append(chunks, strings.TrimSpace(chunk))
		start = end - overlap
	}
	return chunks
}

// lastBreak returns the index of the last sentence terminator or line
// break in s, or -1 when there is none.
func lastBreak(s string) int {
	period := strings.LastIndexByte(s, '.')
	newline := strings.LastIndexByte(s, '\n')
	if period > newline {
		return period
	}
	return newline
}
