// Package review holds the in-memory sentence-record list a human reviewer
// works through: text edits, ratings, and rating-partitioned saves.
package review

import (
	"fmt"
	"path/filepath"
	"strings"

	"speech-dataset-go/internal/annotations"
	"speech-dataset-go/internal/types"
)

// Store owns one ordered sequence of sentence records under review. It is not
// safe for concurrent use; review is a single-reviewer, single-pass activity.
type Store struct {
	records []types.SentenceRecord
}

// Load reads a sentence-level annotation file into a fresh store. Records
// without a rating come back unrated.
func Load(path string) (*Store, error) {
	records, err := annotations.LoadSentences(path)
	if err != nil {
		return nil, err
	}
	return &Store{records: records}, nil
}

// NewStore wraps an already-built record list, e.g. fresh reconstruction
// output reviewed before it is ever saved.
func NewStore(records []types.SentenceRecord) *Store {
	return &Store{records: records}
}

func (s *Store) Len() int { return len(s.records) }

// Record returns a copy of the record at index.
func (s *Store) Record(index int) (types.SentenceRecord, error) {
	if index < 0 || index >= len(s.records) {
		return types.SentenceRecord{}, fmt.Errorf("record %d out of range [0,%d)", index, len(s.records))
	}
	return s.records[index], nil
}

// Records returns a copy of the full record list.
func (s *Store) Records() []types.SentenceRecord {
	out := make([]types.SentenceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// SetText replaces the transcript text of the record at index.
func (s *Store) SetText(index int, text string) error {
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("record %d out of range [0,%d)", index, len(s.records))
	}
	s.records[index].Text = strings.TrimSpace(text)
	return nil
}

// SetRating applies the reviewer's verdict to the record at index.
func (s *Store) SetRating(index int, rating types.Rating) error {
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("record %d out of range [0,%d)", index, len(s.records))
	}
	if !rating.Valid() {
		return fmt.Errorf("unknown rating %q", rating)
	}
	s.records[index].Rating = rating
	return nil
}

// Save partitions the records by rating and writes one file per rating with
// at least one record, named <base>_<rating><ext> next to path. It returns
// the files written.
func (s *Store) Save(path string) ([]string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	var written []string
	for _, rating := range types.Ratings {
		var part []types.SentenceRecord
		for _, r := range s.records {
			if r.Rating == rating {
				part = append(part, r)
			}
		}
		if len(part) == 0 {
			continue
		}
		name := fmt.Sprintf("%s_%s%s", base, rating, ext)
		if err := annotations.WriteJSON(name, part); err != nil {
			return written, fmt.Errorf("save %s partition: %w", rating, err)
		}
		written = append(written, name)
	}
	return written, nil
}
