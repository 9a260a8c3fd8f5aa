// Package cardfile parses markdown card files used by synced sources.
// A card is an F: (front) block followed by a B: (back) block; blocks
// may span multiple lines and cards are separated by "---" or the next
// F: line.
package cardfile

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Entry is one front/back pair extracted from a card file.
type Entry struct {
	Front string
	Back  string
}

const (
	frontPrefix = "F:"
	backPrefix  = "B:"
)

type state int

const (
	seeking state = iota
	readingFront
	readingBack
)

// ParseFile reads a file from the given path and extracts all entries.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all entries. Lines before
// the first F: are ignored, so files can carry headings and prose around
// the cards.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var current Entry
	var block []string
	currentState := seeking

	closeBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch currentState {
		case readingFront:
			current.Front = content
		case readingBack:
			current.Back = content
		}
		block = nil
	}

	finishEntry := func() {
		closeBlock()
		if current.Front != "" && current.Back != "" {
			entries = append(entries, current)
		}
		current = Entry{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "---":
			finishEntry()
		case strings.HasPrefix(line, frontPrefix):
			if currentState != seeking {
				finishEntry()
			}
			currentState = readingFront
			block = append(block, strings.TrimPrefix(strings.TrimPrefix(line, frontPrefix), " "))
		case strings.HasPrefix(line, backPrefix):
			closeBlock()
			currentState = readingBack
			block = append(block, strings.TrimPrefix(strings.TrimPrefix(line, backPrefix), " "))
		case currentState != seeking:
			block = append(block, line)
		}
	}

	finishEntry()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
