package leaderboard

import (
	"sort"
	"time"

	"puzzleboard/internal/models"
)

// FoodguessrDailyEntry is one ranked line of a daily FoodGuessr leaderboard.
type FoodguessrDailyEntry struct {
	UserID int64
	Score  int
	Rank   int
	Medal  string
}

// FoodguessrDaily is the leaderboard for a single FoodGuessr date.
type FoodguessrDaily struct {
	Date    time.Time
	Entries []FoodguessrDailyEntry
}

// BuildFoodguessrDaily ranks the given rows for one puzzle date. Only
// on-time, nonzero scores count; higher scores rank first; ties share a
// display rank.
func BuildFoodguessrDaily(date time.Time, rows []models.FoodguessrScoreRow) FoodguessrDaily {
	year, ordinal := date.Year(), date.YearDay()

	var qualifying []models.FoodguessrScoreRow
	for _, r := range rows {
		if r.Year == year && r.Ordinal == ordinal && r.OnTime() && r.Score != 0 {
			qualifying = append(qualifying, r)
		}
	}

	sort.Slice(qualifying, func(i, j int) bool {
		if qualifying[i].Score != qualifying[j].Score {
			return qualifying[i].Score > qualifying[j].Score
		}
		return qualifying[i].UserID < qualifying[j].UserID
	})

	ranks := CollapseRanks(len(qualifying), func(i, j int) bool {
		return qualifying[i].Score == qualifying[j].Score
	})

	entries := make([]FoodguessrDailyEntry, len(qualifying))
	for i, r := range qualifying {
		entries[i] = FoodguessrDailyEntry{
			UserID: r.UserID,
			Score:  r.Score,
			Rank:   ranks[i],
			Medal:  MedalForPosition(i + 1),
		}
	}

	return FoodguessrDaily{Date: date, Entries: entries}
}

// FoodguessrAllTime is the cumulative all-time FoodGuessr table.
type FoodguessrAllTime struct {
	EndDate     time.Time
	IncludeEnd  bool
	IncludeLate bool
	Totals      []UserTotal
}

// BuildFoodguessrAllTime sums each user's qualifying scores up to the cutoff
// date. The cutoff-inclusion and late-inclusion flags are independent; zero
// scores never contribute.
func BuildFoodguessrAllTime(rows []models.FoodguessrScoreRow, endDate time.Time, includeEnd, includeLate bool) FoodguessrAllTime {
	endYear, endOrdinal := endDate.Year(), endDate.YearDay()

	totals := make(map[int64]int)
	for _, r := range rows {
		if r.Score == 0 {
			continue
		}
		if !beforeCutoff(r.Year, r.Ordinal, endYear, endOrdinal, includeEnd) {
			continue
		}
		if !includeLate && !r.OnTime() {
			continue
		}
		totals[r.UserID] += r.Score
	}

	return FoodguessrAllTime{
		EndDate:     endDate,
		IncludeEnd:  includeEnd,
		IncludeLate: includeLate,
		Totals:      sortTotals(totals),
	}
}

// beforeCutoff reports whether a (year, ordinal) puzzle date qualifies under
// the cutoff date and inclusion flag.
func beforeCutoff(year, ordinal, endYear, endOrdinal int, includeEnd bool) bool {
	if year != endYear {
		return year < endYear
	}
	if includeEnd {
		return ordinal <= endOrdinal
	}
	return ordinal < endOrdinal
}
