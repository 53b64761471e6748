package media

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"lukechampine.com/blake3"
)

// SourceHash returns the blake3 hash of the audio file, recorded so extracted
// datasets stay traceable to the exact source recording.
func SourceHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing audio: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
