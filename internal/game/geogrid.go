package game

import (
	"strconv"
	"strings"
	"time"

	"puzzleboard/internal/boardcal"
)

const (
	geogridGridSize     = 9
	geogridSummaryTitle = "🌎Game Summary🌎"
)

// GeogridCalendar maps dates to GeoGrid board numbers. Board #1 was on
// 7 April 2024, and geogridgame.com rolls boards over on US Eastern time,
// modelled as a fixed UTC-4 offset.
var GeogridCalendar = boardcal.New(2024, time.April, 7, time.FixedZone("UTC-4", -4*60*60))

// Geogrid is the 3x3 grid-ranking game. Share texts open with the grid
// itself and carry the board number, total score and global rank in a
// trailing summary block.
type Geogrid struct{}

func (Geogrid) Kind() Kind {
	return KindGeogrid
}

// Calendar returns the game's board calendar.
func (Geogrid) Calendar() boardcal.Calendar {
	return GeogridCalendar
}

// Claims reports whether the text contains the GeoGrid summary title.
// GeoGrid shares have no leading header, so the summary block is the
// identifying mark.
func (Geogrid) Claims(text string) bool {
	return strings.Contains(text, geogridSummaryTitle)
}

// GeogridScore is a validated GeoGrid submission. Score is the game's own
// aggregate where lower is better; Rank and Players are the submitter's
// position among all players worldwide that day.
type GeogridScore struct {
	Correct int
	Board   int
	Score   float64
	Rank    int
	Players int
}

func (GeogridScore) Kind() Kind {
	return KindGeogrid
}

// Parse reads a GeoGrid share text, such as:
//
//	✅ ✅ ✅
//	✅ ❌ ✅
//	✅ ✅ ❌
//
//	🌎Game Summary🌎
//	Board #41
//	Score: 114.7
//	Rank: 2,213 / 9,015
//	https://geogridgame.com
//	@geogridgame
//
// Rank and player counts carry thousands separators, which are stripped
// before numeric parsing.
func (Geogrid) Parse(text string) (Score, error) {
	ls := splitLines(text)

	first, ok := ls.next()
	if !ok {
		return nil, ErrEmpty
	}
	second, ok := ls.next()
	if !ok {
		return nil, ErrTruncated
	}
	third, ok := ls.next()
	if !ok {
		return nil, ErrTruncated
	}

	correct, total := countMarkers(strings.TrimSpace(first)+strings.TrimSpace(second)+strings.TrimSpace(third), '✅', '❌')
	if total == 0 {
		return nil, &MissingError{Section: SectionGrid}
	}
	if total != geogridGridSize {
		return nil, &FormatError{Section: SectionGrid}
	}

	separator, ok := ls.next()
	if !ok {
		return nil, ErrTruncated
	}
	if strings.TrimSpace(separator) != "" {
		return nil, &MissingError{Section: SectionSeparator}
	}

	title, ok := ls.next()
	if !ok || title != geogridSummaryTitle {
		return nil, &MissingError{Section: SectionSummaryTitle}
	}

	boardLine, ok := ls.next()
	if !ok {
		return nil, ErrTruncated
	}
	boardStr, ok := strings.CutPrefix(boardLine, "Board #")
	if !ok {
		return nil, &MissingError{Section: SectionBoardNumber}
	}
	board, err := strconv.Atoi(boardStr)
	if err != nil || board < 1 {
		return nil, &NotANumberError{Field: FieldBoard}
	}

	scoreLine, ok := ls.next()
	if !ok {
		return nil, ErrTruncated
	}
	scoreStr, ok := strings.CutPrefix(scoreLine, "Score: ")
	if !ok {
		return nil, &MissingError{Section: SectionScore}
	}
	score, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return nil, &NotANumberError{Field: FieldScore}
	}

	rankingLine, ok := ls.next()
	if !ok {
		return nil, ErrTruncated
	}
	ranking, ok := strings.CutPrefix(rankingLine, "Rank: ")
	if !ok {
		return nil, &MissingError{Section: SectionRanking}
	}

	rankStr, playersStr, ok := strings.Cut(ranking, " / ")
	if !ok {
		return nil, &FormatError{Section: SectionRanking}
	}

	rank, err := strconv.Atoi(stripThousands(rankStr))
	if err != nil || rank < 1 {
		return nil, &NotANumberError{Field: FieldRank}
	}

	players, err := strconv.Atoi(stripThousands(playersStr))
	if err != nil || players < 1 {
		return nil, &NotANumberError{Field: FieldPlayers}
	}

	return GeogridScore{
		Correct: correct,
		Board:   board,
		Score:   score,
		Rank:    rank,
		Players: players,
	}, nil
}

func stripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
