package veritext

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Corruption detector defaults. The loose threshold is applied to raw
// fetched payloads to catch wholesale decompression or encoding failure;
// the tight threshold is applied to final cleaned text to decide whether
// the cleanup pass is necessary at all.
const (
	CorruptionSampleSize       = 1000
	PayloadCorruptionThreshold = 0.2
	CleanupCorruptionThreshold = 0.05
)

// CorruptionVerdict is the outcome of a statistical corruption check.
// It is produced and consumed within a single extraction attempt.
type CorruptionVerdict struct {
	IsCorrupt         bool
	NonPrintableRatio float64
}

// noiseChars matches characters outside printable ASCII, common
// whitespace, and U+0080–U+FFFF. The high range keeps legitimate
// non-Latin scripts intact.
var noiseChars = regexp.MustCompile(`[^\x20-\x7E\n\r\t\x{0080}-\x{FFFF}]`)

// excessNewlines matches runs of three or more newlines, optionally
// separated by spaces or tabs, for paragraph-spacing normalization.
var excessNewlines = regexp.MustCompile(`\n[ \t]*\n[ \t]*(?:\n[ \t]*)+`)

// DetectCorruption samples the first sampleSize characters of text and
// returns the fraction that are neither printable ASCII, whitespace, nor
// high-range Unicode. Invalid UTF-8 bytes count as corrupt. Cost is
// bounded regardless of document size. A non-positive sampleSize falls
// back to CorruptionSampleSize.
func DetectCorruption(text string, sampleSize int, threshold float64) CorruptionVerdict {
	if sampleSize <= 0 {
		sampleSize = CorruptionSampleSize
	}

	var total, bad int
	for i := 0; i < len(text) && total < sampleSize; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			// Raw byte that is not valid UTF-8, typical of a
			// decompression or charset mismatch.
			bad++
		} else if !allowedRune(r) {
			bad++
		}
		total++
		i += size
	}

	if total == 0 {
		return CorruptionVerdict{}
	}

	ratio := float64(bad) / float64(total)
	return CorruptionVerdict{
		IsCorrupt:         ratio > threshold,
		NonPrintableRatio: ratio,
	}
}

// allowedRune reports whether r belongs to the allowed character set:
// printable ASCII, \n \r \t space, or U+0080–U+FFFF.
func allowedRune(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return true
	}
	if r >= 0x20 && r <= 0x7E {
		return true
	}
	return r >= 0x80 && r <= 0xFFFF
}

// Clean removes characters outside the allowed set and collapses runs of
// three or more newlines to exactly two. Idempotent; never removes
// legitimate multilingual text.
func Clean(text string) string {
	s := strings.ToValidUTF8(text, "")
	s = noiseChars.ReplaceAllString(s, "")
	return CollapseWhitespace(s)
}

// CollapseWhitespace normalizes paragraph spacing: runs of three or more
// newlines become exactly two, and leading/trailing whitespace is trimmed.
// Shared by every extractor regardless of source markup.
func CollapseWhitespace(text string) string {
	s := excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(s)
}

// FinalizeContent applies the shared post-extraction pipeline: whitespace
// normalization, corruption-gated cleanup, the minimum-length gate, and
// prefix truncation to maxChars when positive. The cleanup pass only runs
// when the tight-threshold detector flags the text; Clean is idempotent,
// so re-running it on already-clean text would only burn cycles.
func FinalizeContent(text string, maxChars int) (string, error) {
	s := CollapseWhitespace(text)

	verdict := DetectCorruption(s, CorruptionSampleSize, CleanupCorruptionThreshold)
	if verdict.IsCorrupt {
		s = Clean(s)
	}

	if utf8.RuneCountInString(s) < MinContentLength {
		return "", Errorf(ETOOSHORT, "extracted content too short or empty")
	}

	if maxChars > 0 {
		if runes := []rune(s); len(runes) > maxChars {
			s = string(runes[:maxChars])
		}
	}

	return s, nil
}
