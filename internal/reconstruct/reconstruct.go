// Package reconstruct collapses word-level speech-to-text output into
// sentence-level annotation records. Tokens are assumed to belong to a single
// speaker; use EligibleSpeakers and FilterBySpeaker first when the stream is
// diarized.
package reconstruct

import (
	"sort"
	"strings"

	"speech-dataset-go/internal/types"
)

// sentenceTerminators are the only runes that close an accumulating sentence.
// Trailing quotes or parentheses after the punctuation are deliberately not
// handled; the transcription tool does not emit them inside word tokens.
const sentenceTerminators = ".!?"

// Sentences rebuilds sentence records from token records.
//
// Word and spacing tokens are kept, everything else is dropped. Kept tokens
// are stable-sorted by start time, then walked left to right: a sentence
// opens on the current token and keeps absorbing tokens until the trimmed
// accumulated text ends in a terminator rune. The check runs before the next
// token is consumed, so mid-token punctuation still terminates. Token text is
// concatenated raw; spacing tokens carry the whitespace between words. The
// trailing open sentence is always emitted. Sentences whose trimmed text is
// empty are discarded; kept sentences are trimmed and start unrated.
func Sentences(tokens []types.TokenRecord) []types.SentenceRecord {
	filtered := make([]types.TokenRecord, 0, len(tokens))
	for _, t := range tokens {
		if t.Type == types.TokenWord || t.Type == types.TokenSpacing {
			filtered = append(filtered, t)
		}
	}
	// Stable: speaker filtering can interleave equal start times and the
	// original relative order must survive.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Start < filtered[j].Start
	})

	var sentences []types.SentenceRecord
	n := len(filtered)
	i := 0
	for i < n {
		var text strings.Builder
		text.WriteString(filtered[i].Text)
		start := filtered[i].Start
		end := filtered[i].End
		i++

		for i < n {
			if terminated(text.String()) {
				break
			}
			text.WriteString(filtered[i].Text)
			end = filtered[i].End
			i++
		}

		trimmed := strings.TrimSpace(text.String())
		if trimmed == "" {
			continue
		}
		sentences = append(sentences, types.SentenceRecord{
			Text:   trimmed,
			Start:  start,
			End:    end,
			Rating: types.RatingUnrated,
		})
	}
	return sentences
}

func terminated(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return strings.ContainsRune(sentenceTerminators, rune(trimmed[len(trimmed)-1]))
}
