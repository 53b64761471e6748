package reconstruct

import (
	"reflect"
	"strings"
	"testing"

	"speech-dataset-go/internal/types"
)

func word(text string, start, end float64) types.TokenRecord {
	return types.TokenRecord{Type: types.TokenWord, Text: text, Start: start, End: end}
}

func spacing(text string, start, end float64) types.TokenRecord {
	return types.TokenRecord{Type: types.TokenSpacing, Text: text, Start: start, End: end}
}

func TestSentencesHelloWorld(t *testing.T) {
	tokens := []types.TokenRecord{
		word("Hello", 0, 0.5),
		spacing(" ", 0.5, 0.6),
		word("world.", 0.6, 1.1),
	}

	got := Sentences(tokens)
	want := []types.SentenceRecord{
		{Text: "Hello world.", Start: 0, End: 1.1, Rating: types.RatingUnrated},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences() = %+v, want %+v", got, want)
	}
}

func TestSentencesEmptyInput(t *testing.T) {
	if got := Sentences(nil); len(got) != 0 {
		t.Errorf("Sentences(nil) = %+v, want empty", got)
	}
}

func TestSentencesSingleTokenNoPunctuation(t *testing.T) {
	got := Sentences([]types.TokenRecord{word("hello", 1.0, 1.5)})
	want := []types.SentenceRecord{
		{Text: "hello", Start: 1.0, End: 1.5, Rating: types.RatingUnrated},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences() = %+v, want %+v", got, want)
	}
}

func TestSentencesSpacingOnlyDropped(t *testing.T) {
	tokens := []types.TokenRecord{
		spacing(" ", 0, 0.1),
		spacing("  ", 0.1, 0.2),
	}
	if got := Sentences(tokens); len(got) != 0 {
		t.Errorf("pure spacing input produced %+v, want nothing", got)
	}
}

func TestSentencesDropsOtherTokenTypes(t *testing.T) {
	tokens := []types.TokenRecord{
		word("One.", 0, 0.5),
		{Type: "audio_event", Text: "(laughs)", Start: 0.5, End: 1.0},
		word("Two.", 1.0, 1.5),
	}
	got := Sentences(tokens)
	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2: %+v", len(got), got)
	}
	if got[0].Text != "One." || got[1].Text != "Two." {
		t.Errorf("texts = %q, %q", got[0].Text, got[1].Text)
	}
}

// Punctuation carried by a spacing token still terminates: the check looks at
// the trailing rune of the trimmed accumulated text, not at token boundaries.
func TestSentencesMidStreamPunctuation(t *testing.T) {
	tokens := []types.TokenRecord{
		word("Okay", 0, 0.4),
		spacing(". ", 0.4, 0.5),
		word("Next", 0.5, 1.0),
	}
	got := Sentences(tokens)
	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2: %+v", len(got), got)
	}
	if got[0].Text != "Okay." {
		t.Errorf("first sentence = %q, want %q", got[0].Text, "Okay.")
	}
	if got[0].End != 0.5 {
		t.Errorf("first sentence end = %v, want 0.5", got[0].End)
	}
	if got[1].Text != "Next" || got[1].Start != 0.5 {
		t.Errorf("second sentence = %+v", got[1])
	}
}

func TestSentencesTrailingTokensKept(t *testing.T) {
	tokens := []types.TokenRecord{
		word("Done.", 0, 0.5),
		spacing(" ", 0.5, 0.6),
		word("and", 0.6, 0.9),
		spacing(" ", 0.9, 1.0),
		word("more", 1.0, 1.4),
	}
	got := Sentences(tokens)
	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2: %+v", len(got), got)
	}
	if got[1].Text != "and more" {
		t.Errorf("trailing sentence = %q, want %q", got[1].Text, "and more")
	}
	if got[1].End != 1.4 {
		t.Errorf("trailing sentence end = %v, want 1.4", got[1].End)
	}
}

// Equal start times keep their original relative order: speaker filtering can
// interleave tokens that carry identical timestamps.
func TestSentencesStableSortOnEqualStart(t *testing.T) {
	tokens := []types.TokenRecord{
		word("first", 1.0, 1.2),
		word("second", 1.0, 1.3),
		word("third.", 1.0, 1.4),
	}
	got := Sentences(tokens)
	if len(got) != 1 {
		t.Fatalf("got %d sentences, want 1: %+v", len(got), got)
	}
	if got[0].Text != "firstsecondthird." {
		t.Errorf("text = %q, want %q", got[0].Text, "firstsecondthird.")
	}
}

// A token whose end equals the next token's start is nothing special; only
// start times drive ordering.
func TestSentencesAdjacentBoundaries(t *testing.T) {
	tokens := []types.TokenRecord{
		word("a", 0, 0.5),
		word("b.", 0.5, 1.0),
	}
	got := Sentences(tokens)
	if len(got) != 1 || got[0].Text != "ab." || got[0].End != 1.0 {
		t.Errorf("got %+v, want one sentence %q ending at 1.0", got, "ab.")
	}
}

// No characters are lost or duplicated: the concatenation of all retained
// token texts equals the concatenation of the emitted sentences, modulo the
// per-sentence trim.
func TestSentencesConcatenationProperty(t *testing.T) {
	tokens := []types.TokenRecord{
		word("It", 0, 0.2),
		spacing(" ", 0.2, 0.3),
		word("works!", 0.3, 0.8),
		spacing(" ", 0.8, 0.9),
		word("Mostly", 0.9, 1.3),
		spacing(" ", 1.3, 1.4),
		word("anyway", 1.4, 1.9),
	}
	got := Sentences(tokens)

	stripSpace := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}
	var inText, outText strings.Builder
	for _, tok := range tokens {
		inText.WriteString(tok.Text)
	}
	for _, s := range got {
		outText.WriteString(s.Text)
	}
	if stripSpace(inText.String()) != stripSpace(outText.String()) {
		t.Errorf("character mismatch: input %q, output %q", inText.String(), outText.String())
	}
}

func TestSentencesIdempotent(t *testing.T) {
	tokens := []types.TokenRecord{
		word("Out", 2.0, 2.3),
		word("of", 1.0, 1.2),
		word("order.", 3.0, 3.5),
	}
	first := Sentences(tokens)
	second := Sentences(tokens)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs differ: %+v vs %+v", first, second)
	}
}

func TestSentencesDoesNotMutateInput(t *testing.T) {
	tokens := []types.TokenRecord{
		word("b.", 2.0, 2.5),
		word("a.", 1.0, 1.5),
	}
	Sentences(tokens)
	if tokens[0].Text != "b." || tokens[1].Text != "a." {
		t.Errorf("input order changed: %+v", tokens)
	}
}
