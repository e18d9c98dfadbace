package game

import (
	"errors"
	"fmt"
)

// Sentinel parse errors shared by all parsers.
var (
	// ErrEmpty means the text had no content at all.
	ErrEmpty = errors.New("text is empty")

	// ErrTruncated means the text ran out of lines before the format was
	// complete.
	ErrTruncated = errors.New("text ends prematurely")

	// ErrInconsistent means the reported guess count and the result grid
	// disagree. The two are always derived independently and compared;
	// a mismatch signals tampering or format drift and is never corrected.
	ErrInconsistent = errors.New("guess number and grid don't match")

	// ErrInvalidMonth means a month name could not be recognized.
	ErrInvalidMonth = errors.New("month string does not represent a month")
)

// Section names the structural part of a share text a parse error refers to.
type Section int

const (
	SectionDetails Section = iota
	SectionBoardNumber
	SectionGuesses
	SectionGrid
	SectionSeparator
	SectionSummaryTitle
	SectionScore
	SectionRanking
	SectionDate
)

func (s Section) String() string {
	switch s {
	case SectionDetails:
		return "details line"
	case SectionBoardNumber:
		return "board number"
	case SectionGuesses:
		return "guesses"
	case SectionGrid:
		return "grid section"
	case SectionSeparator:
		return "blank separator line"
	case SectionSummaryTitle:
		return "summary title"
	case SectionScore:
		return "score line"
	case SectionRanking:
		return "ranking line"
	case SectionDate:
		return "date"
	}
	return "unknown section"
}

// Field names a numeric field of a share text.
type Field int

const (
	FieldBoard Field = iota
	FieldGuess
	FieldScore
	FieldRank
	FieldPlayers
	FieldDay
	FieldYear
)

func (f Field) String() string {
	switch f {
	case FieldBoard:
		return "board number"
	case FieldGuess:
		return "guess"
	case FieldScore:
		return "score"
	case FieldRank:
		return "rank"
	case FieldPlayers:
		return "player count"
	case FieldDay:
		return "day"
	case FieldYear:
		return "year"
	}
	return "unknown field"
}

// MissingError means an expected structural section was absent entirely.
type MissingError struct {
	Section Section
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("text does not contain a %s", e.Section)
}

// FormatError means a section was present but not shaped as expected.
type FormatError struct {
	Section Section
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s was not formatted as expected", e.Section)
}

// NotANumberError means a field that must be numeric was not.
type NotANumberError struct {
	Field Field
}

func (e *NotANumberError) Error() string {
	return fmt.Sprintf("%s is not a number", e.Field)
}
