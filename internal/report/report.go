// Package report renders an extraction-run summary workbook so dataset
// curators can eyeball yield per annotation file without grepping logs.
package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"speech-dataset-go/internal/extract"
)

// RunInfo identifies one extraction run in the workbook header.
type RunInfo struct {
	RunID      string
	AudioPath  string
	SourceHash string
}

// Totals aggregates the per-file results of one run.
type Totals struct {
	Files     int
	Records   int
	Malformed int
	Rejected  int
	Failed    int
	Clips     int
	ClipSecs  float64
}

// Summarize folds the per-file results into run totals.
func Summarize(results []extract.FileResult) Totals {
	t := Totals{Files: len(results)}
	for _, r := range results {
		t.Records += r.Total
		t.Malformed += r.Malformed
		t.Rejected += r.Rejected
		t.Failed += r.Failed
		t.Clips += len(r.Clips)
		t.ClipSecs += r.ClipSecs
	}
	return t
}

const sheet = "Extraction"

// WriteWorkbook writes the run report: one header block, one row per
// annotation file, one totals row.
func WriteWorkbook(path string, info RunInfo, results []extract.FileResult) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	f.SetCellValue(sheet, "A1", "run_id")
	f.SetCellValue(sheet, "B1", info.RunID)
	f.SetCellValue(sheet, "A2", "audio")
	f.SetCellValue(sheet, "B2", info.AudioPath)
	f.SetCellValue(sheet, "A3", "source_blake3")
	f.SetCellValue(sheet, "B3", info.SourceHash)

	headers := []string{"annotation_file", "records", "malformed", "rejected", "transcoder_failures", "clips", "clip_seconds"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(sheet, cell, h)
	}
	row := 6
	for _, r := range results {
		values := []interface{}{
			filepath.Base(r.JSONPath), r.Total, r.Malformed, r.Rejected, r.Failed, len(r.Clips), r.ClipSecs,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	t := Summarize(results)
	totals := []interface{}{"total", t.Records, t.Malformed, t.Rejected, t.Failed, t.Clips, t.ClipSecs}
	for i, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
