package game

import (
	"strconv"
	"strings"
	"time"
)

const (
	foodguessrHeaderPrefix = "FoodGuessr - "
	foodguessrScorePrefix  = "Total score: "
	foodguessrScoreSuffix  = " / 15,000"

	// FoodguessrMaxScore is the highest total a FoodGuessr round set can
	// reach: three rounds of 5,000 points each.
	FoodguessrMaxScore = 15000
)

// Foodguessr is the food-origin guessing game. Scores are keyed by calendar
// date rather than board number; the share text carries the date in its
// header and the total across three rounds in its footer.
type Foodguessr struct{}

func (Foodguessr) Kind() Kind {
	return KindFoodguessr
}

// Claims reports whether the text starts with the FoodGuessr share header.
func (Foodguessr) Claims(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), foodguessrHeaderPrefix)
}

// FoodguessrScore is a validated FoodGuessr submission. Date is the puzzle
// date claimed by the share text, at midnight UTC.
type FoodguessrScore struct {
	Date  time.Time
	Score int
}

func (FoodguessrScore) Kind() Kind {
	return KindFoodguessr
}

// Parse reads a FoodGuessr share text, such as:
//
//	FoodGuessr - 05 Oct 2024 GMT
//	  Round 1 🌕🌕🌕🌖
//	  Round 2 🌕🌕🌕🌑
//	  Round 3 🌕🌕🌕🌕
//	Total score: 13,780 / 15,000
//
//	Can you beat my score? New game daily!
//	Play at https://www.foodguessr.com
//
// The month may be written in full or abbreviated. The total carries a
// thousands separator and must not exceed 15,000.
func (Foodguessr) Parse(text string) (Score, error) {
	ls := splitLines(text)

	header, ok := ls.next()
	if !ok {
		return nil, ErrEmpty
	}

	dateStr, ok := strings.CutPrefix(header, foodguessrHeaderPrefix)
	if !ok {
		return nil, &MissingError{Section: SectionDetails}
	}

	dayStr, remaining, ok := strings.Cut(dateStr, " ")
	if !ok {
		return nil, &FormatError{Section: SectionDate}
	}
	monthStr, remaining, ok := strings.Cut(remaining, " ")
	if !ok {
		return nil, &FormatError{Section: SectionDate}
	}
	yearStr, _, ok := strings.Cut(remaining, " ")
	if !ok {
		return nil, &FormatError{Section: SectionDate}
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 {
		return nil, &NotANumberError{Field: FieldDay}
	}
	month, ok := parseMonth(monthStr)
	if !ok {
		return nil, ErrInvalidMonth
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, &NotANumberError{Field: FieldYear}
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		// time.Date normalizes out-of-range days instead of failing.
		return nil, &FormatError{Section: SectionDate}
	}

	// Three round lines. Their content doesn't contribute to the score.
	for i := 0; i < 3; i++ {
		if _, ok := ls.next(); !ok {
			return nil, ErrTruncated
		}
	}

	scoreLine, ok := ls.next()
	if !ok {
		return nil, &MissingError{Section: SectionScore}
	}

	scoreStr, ok := strings.CutPrefix(scoreLine, foodguessrScorePrefix)
	if !ok {
		return nil, &FormatError{Section: SectionScore}
	}
	scoreStr, ok = strings.CutSuffix(scoreStr, foodguessrScoreSuffix)
	if !ok {
		return nil, &FormatError{Section: SectionScore}
	}

	score, err := strconv.Atoi(stripThousands(scoreStr))
	if err != nil || score < 0 {
		return nil, &NotANumberError{Field: FieldScore}
	}
	if score > FoodguessrMaxScore {
		return nil, &FormatError{Section: SectionScore}
	}

	return FoodguessrScore{Date: date, Score: score}, nil
}

// parseMonth recognizes full and three-letter English month names.
func parseMonth(s string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return m, true
		}
	}
	return 0, false
}
