package reconstruct

import (
	"errors"
	"sort"

	"speech-dataset-go/internal/types"
)

// MinSpeakerOccurrences is the dataset-quality floor: speakers with fewer
// token records than this are not offered for selection.
const MinSpeakerOccurrences = 20

// ErrNoEligibleSpeaker means the aggregate retained no speaker with enough
// occurrences. Terminal for the pipeline; there is no fallback speaker.
var ErrNoEligibleSpeaker = errors.New("no speaker with enough occurrences")

// EligibleSpeakers tallies speaker occurrences across the full token stream
// and returns the candidates with at least MinSpeakerOccurrences records,
// sorted by speaker id. A token counts only when both speaker_id and
// speaker_name are present. Presenting the choice is the caller's job, even
// when a single candidate remains.
func EligibleSpeakers(tokens []types.TokenRecord) ([]types.SpeakerCandidate, error) {
	type tally struct {
		name  string
		count int
	}
	counts := map[string]*tally{}
	for _, t := range tokens {
		if t.SpeakerID == "" || t.SpeakerName == "" {
			continue
		}
		if c, ok := counts[t.SpeakerID]; ok {
			c.count++
		} else {
			counts[t.SpeakerID] = &tally{name: t.SpeakerName, count: 1}
		}
	}

	var out []types.SpeakerCandidate
	for id, c := range counts {
		if c.count < MinSpeakerOccurrences {
			continue
		}
		out = append(out, types.SpeakerCandidate{ID: id, Name: c.name, Count: c.count})
	}
	if len(out) == 0 {
		return nil, ErrNoEligibleSpeaker
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FilterBySpeaker keeps only the tokens attributed to the given speaker id,
// preserving input order.
func FilterBySpeaker(tokens []types.TokenRecord, speakerID string) []types.TokenRecord {
	var out []types.TokenRecord
	for _, t := range tokens {
		if t.SpeakerID == speakerID {
			out = append(out, t)
		}
	}
	return out
}
