package leaderboard

import (
	"sort"

	"puzzleboard/internal/models"
)

// FlagleDailyEntry is one ranked line of a daily Flagle leaderboard.
type FlagleDailyEntry struct {
	UserID int64
	Score  int
	Rank   int
	Medal  string
}

// FlagleDaily is the leaderboard for a single Flagle board.
type FlagleDaily struct {
	Board   int
	Entries []FlagleDailyEntry
}

// BuildFlagleDaily ranks the given rows for one board. Only on-time, nonzero
// scores count; higher scores rank first; ties share a display rank.
func BuildFlagleDaily(board int, rows []models.FlagleScoreRow) FlagleDaily {
	var qualifying []models.FlagleScoreRow
	for _, r := range rows {
		if r.Board == board && r.OnTime() && r.Score != 0 {
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

	entries := make([]FlagleDailyEntry, len(qualifying))
	for i, r := range qualifying {
		entries[i] = FlagleDailyEntry{
			UserID: r.UserID,
			Score:  r.Score,
			Rank:   ranks[i],
			Medal:  MedalForPosition(i + 1),
		}
	}

	return FlagleDaily{Board: board, Entries: entries}
}

// FlagleAllTime is the cumulative all-time Flagle table.
type FlagleAllTime struct {
	EndBoard    int
	IncludeEnd  bool
	IncludeLate bool
	Totals      []UserTotal
}

// BuildFlagleAllTime sums each user's qualifying scores up to the cutoff
// board. The cutoff-inclusion and late-inclusion flags are independent;
// zero scores never contribute.
func BuildFlagleAllTime(rows []models.FlagleScoreRow, endBoard int, includeEnd, includeLate bool) FlagleAllTime {
	totals := make(map[int64]int)
	for _, r := range rows {
		if r.Score == 0 {
			continue
		}
		if includeEnd {
			if r.Board > endBoard {
				continue
			}
		} else if r.Board >= endBoard {
			continue
		}
		if !includeLate && !r.OnTime() {
			continue
		}
		totals[r.UserID] += r.Score
	}

	return FlagleAllTime{
		EndBoard:    endBoard,
		IncludeEnd:  includeEnd,
		IncludeLate: includeLate,
		Totals:      sortTotals(totals),
	}
}

// sortTotals orders per-user totals best-first with tie-aware display ranks.
func sortTotals(totals map[int64]int) []UserTotal {
	listing := make([]UserTotal, 0, len(totals))
	for userID, total := range totals {
		listing = append(listing, UserTotal{UserID: userID, Total: total})
	}

	sort.Slice(listing, func(i, j int) bool {
		if listing[i].Total != listing[j].Total {
			return listing[i].Total > listing[j].Total
		}
		return listing[i].UserID < listing[j].UserID
	})

	ranks := CollapseRanks(len(listing), func(i, j int) bool {
		return listing[i].Total == listing[j].Total
	})
	for i := range listing {
		listing[i].Rank = ranks[i]
	}

	return listing
}
