package game

import (
	"strconv"
	"strings"
	"time"

	"puzzleboard/internal/boardcal"
)

const (
	flagleHeaderPrefix = "#Flagle #"
	flagleGridSize     = 6

	// A player gets up to six guesses; the share text reports "X/6" when all
	// of them were used up without solving, which counts as a seventh guess.
	flagleMaxGuess = 7
)

// FlagleCalendar maps dates to Flagle board numbers. Board #1 was on
// 22 February 2022. flagle.io doesn't say which timezone it rolls over in,
// so UTC is assumed.
var FlagleCalendar = boardcal.New(2022, time.February, 22, time.UTC)

// Flagle is the flag-guessing game. Share texts carry a header with the
// board number and guess count, then a 2x3 grid of colored squares.
type Flagle struct{}

func (Flagle) Kind() Kind {
	return KindFlagle
}

// Calendar returns the game's board calendar.
func (Flagle) Calendar() boardcal.Calendar {
	return FlagleCalendar
}

// Claims reports whether the text starts with the Flagle share header.
func (Flagle) Claims(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), flagleHeaderPrefix)
}

// FlagleScore is a validated Flagle submission. Score is the number of green
// squares in the grid, between 0 and 6, with higher being better.
type FlagleScore struct {
	Score int
	Board int
}

func (FlagleScore) Kind() Kind {
	return KindFlagle
}

// Parse reads a Flagle share text, such as:
//
//	#Flagle #957 (05.10.2024) 3/6
//	🟥🟥🟩
//	🟩🟩🟩
//	https://www.flagle.io
//
// The guess count from the header is cross-checked against the grid: each
// guess costs one green square, so a score that doesn't satisfy
// 7 - guesses == greens has been tampered with and is rejected.
func (Flagle) Parse(text string) (Score, error) {
	ls := splitLines(text)

	header, ok := ls.next()
	if !ok {
		return nil, ErrTruncated
	}

	details, ok := strings.CutPrefix(header, flagleHeaderPrefix)
	if !ok {
		return nil, &MissingError{Section: SectionDetails}
	}

	boardStr, dateGuesses, ok := strings.Cut(details, " ")
	if !ok {
		return nil, &MissingError{Section: SectionBoardNumber}
	}

	board, err := strconv.Atoi(boardStr)
	if err != nil || board < 1 {
		return nil, &NotANumberError{Field: FieldBoard}
	}

	_, guesses, ok := strings.Cut(dateGuesses, ") ")
	if !ok {
		return nil, &MissingError{Section: SectionGuesses}
	}

	guessStr, _, ok := strings.Cut(guesses, "/")
	if !ok {
		return nil, &FormatError{Section: SectionGuesses}
	}

	guess := flagleMaxGuess
	if guessStr != "X" {
		guess, err = strconv.Atoi(guessStr)
		if err != nil || guess < 0 {
			return nil, &NotANumberError{Field: FieldGuess}
		}
	}

	first, ok := ls.next()
	if !ok {
		return nil, ErrTruncated
	}
	second, ok := ls.next()
	if !ok {
		return nil, ErrTruncated
	}

	greens, total := countMarkers(strings.TrimSpace(first)+strings.TrimSpace(second), '🟩', '🟥')
	if total == 0 {
		return nil, &MissingError{Section: SectionGrid}
	}
	if total != flagleGridSize {
		return nil, &FormatError{Section: SectionGrid}
	}

	// Verification, not derivation: the score is counted from the grid and
	// compared against the reported guess count, never taken on trust.
	if flagleMaxGuess-guess != greens {
		return nil, ErrInconsistent
	}

	return FlagleScore{Score: greens, Board: board}, nil
}

// countMarkers counts hit and total markers among the runes of a grid.
func countMarkers(grid string, hit, miss rune) (hits, total int) {
	for _, r := range grid {
		switch r {
		case hit:
			hits++
			total++
		case miss:
			total++
		}
	}
	return hits, total
}
