package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"speech-dataset-go/internal/annotations"
	"speech-dataset-go/internal/logger"
	"speech-dataset-go/internal/reconstruct"
	"speech-dataset-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <input.json> <output.json>\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(os.Stderr, "Rebuilds sentence-level annotations from token-level speech-to-text output.")
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	inPath, outPath := flag.Arg(0), flag.Arg(1)

	log := logger.New().WithField("input", inPath)

	tokens, err := annotations.LoadTokens(inPath)
	if err != nil {
		log.WithField("error", err.Error()).Error("could not load annotations")
		os.Exit(1)
	}
	log.WithField("tokens", len(tokens)).Info("annotations loaded")

	candidates, err := reconstruct.EligibleSpeakers(tokens)
	if err != nil {
		if errors.Is(err, reconstruct.ErrNoEligibleSpeaker) {
			log.Errorf("no speakers with at least %d occurrences found", reconstruct.MinSpeakerOccurrences)
		} else {
			log.WithField("error", err.Error()).Error("speaker tally failed")
		}
		os.Exit(1)
	}

	speakerID := chooseSpeaker(candidates)
	log.WithField("speaker", speakerID).Info("speaker selected")

	kept := reconstruct.FilterBySpeaker(tokens, speakerID)
	sentences := reconstruct.Sentences(kept)
	log.WithField("sentences", len(sentences)).Info("sentences reconstructed")

	if err := annotations.SaveSentences(outPath, sentences); err != nil {
		log.WithField("error", err.Error()).Error("could not save sentences")
		os.Exit(1)
	}
	log.WithField("output", outPath).Info("processed annotations saved")
}

// chooseSpeaker prompts until the reviewer picks one of the eligible
// speakers. The choice is always presented, even for a single candidate.
func chooseSpeaker(candidates []types.SpeakerCandidate) string {
	fmt.Println("Choose the speaker to keep:")
	for i, c := range candidates {
		fmt.Printf("%d - %s %q (%d)\n", i+1, c.ID, c.Name, c.Count)
	}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter the number corresponding to the speaker: ")
		if !scanner.Scan() {
			fmt.Fprintln(os.Stderr, "no selection made")
			os.Exit(1)
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Println("Invalid input. Please enter a number.")
			continue
		}
		if choice < 1 || choice > len(candidates) {
			fmt.Println("Invalid selection. Please choose a valid number.")
			continue
		}
		return candidates[choice-1].ID
	}
}
