package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/diapath/vtoq/pkg/mld"
)

func safeParse(path string) (*mld.Container, error) {
	parser := mld.NewParser()

	c, err := parser.Parse(path)
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("layer data not found: %s", path)
		}

		// Only a truncated header is fatal
		var short *mld.ErrHeaderTooShort
		if errors.As(err, &short) {
			return nil, fmt.Errorf("%s is only %d bytes", path, short.Size)
		}
		return nil, err
	}

	// Recovered problems are reported, not returned
	for _, w := range c.Warnings() {
		log.Printf("Warning: %s: %s", path, w)

		var trunc *mld.ErrTruncated
		if errors.As(w.Err, &trunc) {
			log.Printf("  record at %d needs %d bytes, %d left", trunc.Offset, trunc.Need, trunc.Have)
		}
	}

	return c, nil
}

func main() {
	// Decoder warnings are also logged as they happen
	mld.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	c, err := safeParse("LayerData.mld")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Printf("Successfully decoded layers: %v\n", c.LayerNames())

	// Try to parse a missing file
	_, err = safeParse("Missing.mld")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
