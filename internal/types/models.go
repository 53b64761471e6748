package types

// TokenType tags a raw annotation record from the transcription/diarization
// tool. Anything other than word or spacing is ignored by reconstruction.
type TokenType string

const (
	TokenWord    TokenType = "word"
	TokenSpacing TokenType = "spacing"
)

// TokenRecord is one time-stamped unit of speech-to-text output. Read-only
// once loaded.
type TokenRecord struct {
	Type        TokenType `json:"type"`
	Text        string    `json:"text"`
	Start       float64   `json:"start"`
	End         float64   `json:"end"`
	SpeakerID   string    `json:"speaker_id,omitempty"`
	SpeakerName string    `json:"speaker_name,omitempty"`
}

// Rating is the reviewer's verdict on a sentence record.
type Rating string

const (
	RatingUnrated Rating = "unrated"
	RatingGood    Rating = "good"
	RatingOK      Rating = "ok"
	RatingBad     Rating = "bad"
)

// Ratings lists every rating value in save-partition order.
var Ratings = []Rating{RatingGood, RatingOK, RatingBad, RatingUnrated}

// Valid reports whether r is one of the known rating values.
func (r Rating) Valid() bool {
	switch r {
	case RatingUnrated, RatingGood, RatingOK, RatingBad:
		return true
	}
	return false
}

// SentenceRecord is a reconstructed, punctuation-terminated span of speech.
// Start and End are seconds into the source audio.
type SentenceRecord struct {
	Text   string  `json:"text"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Rating Rating  `json:"rating,omitempty"`
}

// Duration returns End - Start in seconds.
func (s SentenceRecord) Duration() float64 {
	return s.End - s.Start
}

// ClipRecord ties an extracted clip file back to its transcript text. One
// entry per successfully extracted segment, collected into metadata.json.
type ClipRecord struct {
	Text      string `json:"text"`
	AudioFile string `json:"audio_file"`
}

// SpeakerCandidate is one eligible speaker from the aggregate tally.
type SpeakerCandidate struct {
	ID    string
	Name  string
	Count int
}
