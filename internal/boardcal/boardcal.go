// Package boardcal maps calendar dates to sequential daily board numbers.
//
// Every game defines an epoch (the date of board #1) and a fixed UTC offset
// for deciding when its day rolls over. The mapping is a plain day count:
// one calendar day is one board number, with no DST adjustment.
package boardcal

import (
	"errors"
	"fmt"
	"time"
)

// ErrBeforeEpoch is returned when a date precedes the calendar's epoch.
var ErrBeforeEpoch = errors.New("date is before the first board")

// Calendar maps dates to board numbers for one game.
type Calendar struct {
	epoch time.Time // midnight UTC on the date of board #1
	loc   *time.Location
}

// New creates a calendar with board #1 on the given date. The location
// determines which calendar date "now" falls on; it must be a fixed offset.
func New(year int, month time.Month, day int, loc *time.Location) Calendar {
	return Calendar{
		epoch: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		loc:   loc,
	}
}

// Epoch returns the date of board #1, at midnight UTC.
func (c Calendar) Epoch() time.Time {
	return c.epoch
}

// DateOfBoard returns the date on which the board with the given number
// occurred, at midnight UTC. Board numbers start at 1.
func (c Calendar) DateOfBoard(number int) (time.Time, error) {
	if number < 1 {
		return time.Time{}, fmt.Errorf("board number must be positive, got %d", number)
	}
	return c.epoch.AddDate(0, 0, number-1), nil
}

// BoardOnDate returns the number of the board that occurred on the given
// date. Only the year, month and day of the argument are considered.
func (c Calendar) BoardOnDate(date time.Time) (int, error) {
	d := midnightUTC(date)
	days := int(d.Sub(c.epoch) / (24 * time.Hour))
	if days < 0 {
		return 0, ErrBeforeEpoch
	}
	return days + 1, nil
}

// DateAt returns the calendar date a given instant falls on in the game's
// timezone, normalized to midnight UTC.
func (c Calendar) DateAt(t time.Time) time.Time {
	return midnightUTC(t.In(c.loc))
}

// BoardAt returns the number of the board active at a given instant.
func (c Calendar) BoardAt(t time.Time) (int, error) {
	return c.BoardOnDate(c.DateAt(t))
}

// BoardNow returns the number of the board active right now. The epoch dates
// of all supported games are in the past, so the pre-epoch case cannot occur
// here; it reports board 0 if it somehow does.
func (c Calendar) BoardNow() int {
	board, err := c.BoardAt(time.Now())
	if err != nil {
		return 0
	}
	return board
}

// midnightUTC rebuilds a time as midnight UTC on the same calendar date.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
