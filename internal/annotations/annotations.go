// Package annotations is the JSON boundary of the pipeline: it reads and
// writes the annotation file shapes and rejects malformed entries before they
// reach the core packages.
package annotations

import (
	"encoding/json"
	"fmt"
	"os"

	"speech-dataset-go/internal/types"
)

// LoadTokens reads a token-level annotation file (the raw speech-to-text
// export): a JSON array of {type, text, start, end, speaker_id?,
// speaker_name?}.
func LoadTokens(path string) ([]types.TokenRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var tokens []types.TokenRecord
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	return tokens, nil
}

// LoadSentences reads a sentence-level annotation file. Records without a
// rating come back unrated; an unknown rating value is an error, not a
// silent default.
func LoadSentences(path string) ([]types.SentenceRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var sentences []types.SentenceRecord
	if err := json.Unmarshal(raw, &sentences); err != nil {
		return nil, fmt.Errorf("decode sentences: %w", err)
	}
	for i := range sentences {
		if sentences[i].Rating == "" {
			sentences[i].Rating = types.RatingUnrated
			continue
		}
		if !sentences[i].Rating.Valid() {
			return nil, fmt.Errorf("record %d: unknown rating %q", i, sentences[i].Rating)
		}
	}
	return sentences, nil
}

// SaveSentences writes reconstruction output: a pretty-printed array of
// {text, start, end}, without the review rating.
func SaveSentences(path string, sentences []types.SentenceRecord) error {
	type sentenceOut struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}
	out := make([]sentenceOut, len(sentences))
	for i, s := range sentences {
		out[i] = sentenceOut{Text: s.Text, Start: s.Start, End: s.End}
	}
	return WriteJSON(path, out)
}

// WriteJSON writes v to path with the 2-space indentation every artifact in
// this repo uses.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
