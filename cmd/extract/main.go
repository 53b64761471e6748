package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"speech-dataset-go/internal/extract"
	"speech-dataset-go/internal/logger"
	"speech-dataset-go/internal/media"
	"speech-dataset-go/internal/report"
)

func main() {
	_ = godotenv.Load() // loads .env

	verbose := flag.Bool("v", false, "debug-level progress output")
	writeReport := flag.Bool("report", false, "write an extraction_report.xlsx workbook into the directory")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-v] [-report] <directory>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	dir := flag.Arg(0)

	base := logger.New()
	if *verbose {
		base.SetVerbose()
	}
	log, runID := base.WithRun()
	log = log.WithField("dir", dir)
	log.Info("starting clip extraction")

	e := extract.New(media.NewFFmpeg(), log)
	run, err := e.Run(context.Background(), dir)
	if err != nil {
		log.WithField("error", err.Error()).Error("extraction aborted")
		os.Exit(1)
	}

	t := report.Summarize(run.Files)
	log.WithFields(map[string]interface{}{
		"files":    t.Files,
		"records":  t.Records,
		"clips":    t.Clips,
		"skipped":  t.Malformed + t.Rejected,
		"failures": t.Failed,
	}).Info("extraction complete")

	if *writeReport {
		path := filepath.Join(dir, "extraction_report.xlsx")
		info := report.RunInfo{RunID: runID, AudioPath: run.AudioPath, SourceHash: run.SourceHash}
		if err := report.WriteWorkbook(path, info, run.Files); err != nil {
			log.WithField("error", err.Error()).Error("could not write report")
			os.Exit(1)
		}
		log.WithField("report", path).Info("report written")
	}
}
