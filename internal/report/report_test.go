package report

import (
	"os"
	"path/filepath"
	"testing"

	"speech-dataset-go/internal/extract"
	"speech-dataset-go/internal/types"
)

func TestSummarize(t *testing.T) {
	results := []extract.FileResult{
		{
			Total: 10, Malformed: 1, Rejected: 2, Failed: 1,
			Clips:    []types.ClipRecord{{Text: "a"}, {Text: "b"}},
			ClipSecs: 3.5,
		},
		{
			Total: 4, Rejected: 4,
		},
	}

	got := Summarize(results)
	want := Totals{Files: 2, Records: 14, Malformed: 1, Rejected: 6, Failed: 1, Clips: 2, ClipSecs: 3.5}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extraction_report.xlsx")
	info := RunInfo{RunID: "run-1", AudioPath: "take1.wav", SourceHash: "abc123"}
	results := []extract.FileResult{
		{JSONPath: "annotations.json", Total: 2, Clips: []types.ClipRecord{{Text: "a", AudioFile: "take1_0001.wav"}}, ClipSecs: 1.2},
	}

	if err := WriteWorkbook(path, info, results); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	if fi.Size() == 0 {
		t.Error("workbook is empty")
	}
}
