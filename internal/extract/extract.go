// Package extract cuts utterance clips out of one audio recording according
// to sentence-level annotation files. Every annotation file in the target
// directory is processed independently: per-record validation failures and
// transcoder failures skip the record, a file that cannot be parsed skips
// the file, and siblings always keep going.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"speech-dataset-go/internal/annotations"
	"speech-dataset-go/internal/media"
	"speech-dataset-go/internal/types"
)

// MinDuration is the floor below which a segment is excluded from extraction,
// in seconds. Fixed: it is a dataset-quality threshold, not a tunable.
const MinDuration = 0.75

// MetadataFileName is the per-output-directory metadata artifact.
const MetadataFileName = "metadata.json"

var minDuration = decimal.NewFromFloat(MinDuration)

// audioExtensions are the recognized source recording formats.
var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".flac": true,
	".ogg": true, ".mp4": true, ".aac": true,
}

// Extractor drives clip extraction through an external transcoder.
type Extractor struct {
	clipper media.Clipper
	log     *logrus.Entry

	// ClipExt is the output container for clips (default wav).
	ClipExt string
	// ClipTimeout bounds one transcoder invocation. The tool itself has no
	// timeout, so a hung invocation would otherwise stall the whole run.
	ClipTimeout time.Duration
	// RetryElapsed bounds the retry envelope around one segment before it is
	// declared failed and skipped.
	RetryElapsed time.Duration
}

func New(clipper media.Clipper, log *logrus.Entry) *Extractor {
	return &Extractor{
		clipper:      clipper,
		log:          log,
		ClipExt:      "wav",
		ClipTimeout:  2 * time.Minute,
		RetryElapsed: 10 * time.Second,
	}
}

// FileResult summarizes the extraction of one annotation file.
type FileResult struct {
	JSONPath  string
	OutDir    string
	Total     int // records in the file
	Malformed int // records failing shape validation
	Rejected  int // records failing range/duration checks
	Failed    int // transcoder failures
	Clips     []types.ClipRecord
	ClipSecs  float64 // seconds of audio across successful clips
}

// RunResult collects everything one directory run produced.
type RunResult struct {
	AudioPath  string
	SourceHash string
	Files      []FileResult
}

// Run processes every annotation file in dir against the directory's single
// audio recording. Configuration problems (missing directory, audio count
// != 1, zero annotation files) are the only fatal errors.
func (e *Extractor) Run(ctx context.Context, dir string) (*RunResult, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory %q does not exist", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var audioFiles, jsonFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		switch {
		case audioExtensions[ext]:
			audioFiles = append(audioFiles, filepath.Join(dir, entry.Name()))
		case ext == ".json":
			jsonFiles = append(jsonFiles, filepath.Join(dir, entry.Name()))
		}
	}
	if len(audioFiles) != 1 {
		return nil, fmt.Errorf("expected exactly one audio file in %q, found %d", dir, len(audioFiles))
	}
	if len(jsonFiles) == 0 {
		return nil, fmt.Errorf("no annotation files found in %q", dir)
	}
	sort.Strings(jsonFiles)

	run := &RunResult{AudioPath: audioFiles[0]}
	log := e.log.WithField("audio", run.AudioPath)
	if hash, err := media.SourceHash(run.AudioPath); err != nil {
		log.WithField("error", err.Error()).Warn("could not hash source audio")
	} else {
		run.SourceHash = hash
		log = log.WithField("source_blake3", hash)
	}
	log.WithField("annotation_files", len(jsonFiles)).Info("starting extraction")

	for _, jsonPath := range jsonFiles {
		run.Files = append(run.Files, e.processFile(ctx, run.AudioPath, jsonPath))
	}
	return run, nil
}

// rawSegment mirrors one annotation record loosely so presence and numeric
// checks can be reported per record instead of failing the whole decode.
type rawSegment struct {
	Text   *string      `json:"text"`
	Start  *json.Number `json:"start"`
	End    *json.Number `json:"end"`
	Rating *string      `json:"rating"`
}

type segment struct {
	text     string
	start    decimal.Decimal
	duration decimal.Decimal
}

// processFile extracts clips for one annotation file. All failures inside a
// file are contained: the returned result reports them, siblings continue.
func (e *Extractor) processFile(ctx context.Context, audioPath, jsonPath string) FileResult {
	jsonBase := strings.TrimSuffix(filepath.Base(jsonPath), filepath.Ext(jsonPath))
	outDir := filepath.Join(filepath.Dir(jsonPath), jsonBase)
	res := FileResult{JSONPath: jsonPath, OutDir: outDir}
	log := e.log.WithField("file", jsonPath)
	log.Info("checking annotation file")

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		log.WithField("error", err.Error()).Error("read failed, skipping file")
		return res
	}
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(raw, &rawRecords); err != nil {
		log.WithField("error", err.Error()).Error("not a JSON array of segments, skipping file")
		return res
	}
	res.Total = len(rawRecords)

	// Shape and range checks, reported per record.
	var segments []segment
	for i, rr := range rawRecords {
		seg, err := parseSegment(rr)
		if err != nil {
			res.Malformed++
			log.WithField("segment", i+1).WithField("error", err.Error()).Warn("malformed segment, skipping")
			continue
		}
		end := seg.start.Add(seg.duration)
		switch {
		case seg.start.IsNegative():
			res.Rejected++
			log.WithField("segment", i+1).Warn("negative start time, skipping")
		case seg.duration.Sign() <= 0:
			res.Rejected++
			log.WithField("segment", i+1).Warnf("end %s not after start %s, skipping", end, seg.start)
		case seg.duration.LessThan(minDuration):
			res.Rejected++
			log.WithField("segment", i+1).Warnf("duration %ss is below the %vs floor, skipping", seg.duration, MinDuration)
		default:
			segments = append(segments, seg)
		}
	}

	// The output directory belongs to this run: wipe any previous contents
	// before extraction begins.
	if err := os.RemoveAll(outDir); err != nil {
		log.WithField("error", err.Error()).Error("could not clear output directory, skipping file")
		return res
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.WithField("error", err.Error()).Error("could not create output directory, skipping file")
		return res
	}
	log.WithField("out_dir", outDir).Debug("created output directory")

	if len(segments) == 0 {
		log.Info("no valid segments")
		return res
	}

	audioBase := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	log.WithField("valid_segments", len(segments)).Info("processing annotation file")

	for i, seg := range segments {
		outName := fmt.Sprintf("%s_%04d.%s", audioBase, i+1, e.ClipExt)
		segLog := log.WithField("segment", i+1).WithField("clip", outName)
		segLog.Debug("extracting segment")

		err := e.clip(ctx, media.ClipRequest{
			SourcePath: audioPath,
			OutPath:    filepath.Join(outDir, outName),
			Start:      seg.start,
			Duration:   seg.duration,
		})
		if err != nil {
			res.Failed++
			segLog.WithField("error", err.Error()).Warn("transcoder failed, skipping segment")
			continue
		}
		res.Clips = append(res.Clips, types.ClipRecord{Text: seg.text, AudioFile: outName})
		dur, _ := seg.duration.Float64()
		res.ClipSecs += dur
		segLog.Debug("clip saved")
	}

	// One metadata entry per produced clip, in order. Zero clips means no
	// metadata artifact at all.
	if len(res.Clips) > 0 {
		metaPath := filepath.Join(outDir, MetadataFileName)
		if err := annotations.WriteJSON(metaPath, res.Clips); err != nil {
			log.WithField("error", err.Error()).Error("could not write metadata")
		} else {
			log.WithField("clips", len(res.Clips)).Info("metadata written")
		}
	}
	log.Info("finished annotation file")
	return res
}

// clip runs one transcoder invocation with a bounded retry envelope and a
// per-call timeout.
func (e *Extractor) clip(ctx context.Context, req media.ClipRequest) error {
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, e.ClipTimeout)
		defer cancel()
		return e.clipper.Clip(callCtx, req)
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = e.RetryElapsed
	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

func parseSegment(raw json.RawMessage) (segment, error) {
	var rs rawSegment
	if err := json.Unmarshal(raw, &rs); err != nil {
		return segment{}, fmt.Errorf("not a segment object: %w", err)
	}
	switch {
	case rs.Text == nil:
		return segment{}, fmt.Errorf("missing key %q", "text")
	case rs.Start == nil:
		return segment{}, fmt.Errorf("missing key %q", "start")
	case rs.End == nil:
		return segment{}, fmt.Errorf("missing key %q", "end")
	case rs.Rating == nil:
		return segment{}, fmt.Errorf("missing key %q", "rating")
	}
	start, err := decimal.NewFromString(rs.Start.String())
	if err != nil {
		return segment{}, fmt.Errorf("non-numeric start: %w", err)
	}
	end, err := decimal.NewFromString(rs.End.String())
	if err != nil {
		return segment{}, fmt.Errorf("non-numeric end: %w", err)
	}
	return segment{text: *rs.Text, start: start, duration: end.Sub(start)}, nil
}
