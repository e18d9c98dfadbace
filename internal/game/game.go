// Package game parses the share texts produced by the supported daily puzzle
// games into typed, validated scores.
//
// Each game publishes its own share format, so each gets its own parser and
// its own calendar. Parsing is pure and synchronous: raw text in, a typed
// score or a typed error out. Errors form a closed taxonomy so that callers
// can tell "this text is not this game at all" apart from "this text claims
// to be this game but is malformed or tampered with".
package game

import (
	"errors"
	"fmt"
)

// Kind identifies one of the supported games.
type Kind string

const (
	KindGeogrid    Kind = "geogrid"
	KindFlagle     Kind = "flagle"
	KindFoodguessr Kind = "foodguessr"
)

// Description returns the human-readable name of the game.
func (k Kind) Description() string {
	switch k {
	case KindGeogrid:
		return "GeoGrid"
	case KindFlagle:
		return "Flagle"
	case KindFoodguessr:
		return "FoodGuessr"
	}
	return string(k)
}

// KindFromString resolves a game identifier as it appears in commands and
// URLs.
func KindFromString(s string) (Kind, bool) {
	switch Kind(s) {
	case KindGeogrid, KindFlagle, KindFoodguessr:
		return Kind(s), true
	}
	return "", false
}

// Score is a validated, in-memory score parsed from a share text.
type Score interface {
	// Kind reports which game the score belongs to.
	Kind() Kind
}

// Game is one supported puzzle game: a parser plus a cheap shape check used
// by the dispatcher to decide whether a failed parse should be reported to
// the submitter or silently skipped.
type Game interface {
	Kind() Kind

	// Claims reports whether the text carries this game's identifying
	// header, regardless of whether the rest of it is valid.
	Claims(text string) bool

	// Parse converts a share text into a validated score.
	Parse(text string) (Score, error)
}

// Games lists all supported games in dispatch order. The order matters:
// incoming messages are tried against each parser in turn and the first
// success wins.
func Games() []Game {
	return []Game{Geogrid{}, Flagle{}, Foodguessr{}}
}

// ErrNotAScore is returned by Detect when a text matches no game's format.
var ErrNotAScore = errors.New("text is not a score for any supported game")

// InvalidScoreError reports a text that carried a game's identifying header
// but failed that game's validation.
type InvalidScoreError struct {
	Game Kind
	Err  error
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("invalid %s score: %v", e.Game.Description(), e.Err)
}

func (e *InvalidScoreError) Unwrap() error {
	return e.Err
}

// Detect runs each game's parser against the text in dispatch order and
// returns the first successful parse.
//
// If no parser succeeds but one of the games claims the text (its header is
// present), an InvalidScoreError for the claiming game is returned: the
// message was meant to be a score and the submitter should hear what was
// wrong with it. If nothing claims the text, Detect returns ErrNotAScore.
func Detect(text string) (Score, error) {
	for _, g := range Games() {
		score, err := g.Parse(text)
		if err == nil {
			return score, nil
		}
		if g.Claims(text) {
			return nil, &InvalidScoreError{Game: g.Kind(), Err: err}
		}
	}
	return nil, ErrNotAScore
}
