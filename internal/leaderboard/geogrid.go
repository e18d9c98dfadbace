package leaderboard

import (
	"fmt"
	"sort"

	"puzzleboard/internal/models"
)

// GeogridDailyEntry is one ranked line of a daily GeoGrid leaderboard.
type GeogridDailyEntry struct {
	UserID  int64
	Score   float64
	Correct int
	Rank    int
	Medal   string
}

// GeogridDaily is the leaderboard for a single GeoGrid board.
type GeogridDaily struct {
	Board   int
	Entries []GeogridDailyEntry
}

// BuildGeogridDaily ranks the given rows for one board. Only on-time scores
// count; lower scores rank first (a GeoGrid score of 0 is a perfect game, so
// there is no nonzero filter here); ties share a display rank.
func BuildGeogridDaily(board int, rows []models.GeogridScoreRow) GeogridDaily {
	var qualifying []models.GeogridScoreRow
	for _, r := range rows {
		if r.Board == board && r.OnTime() {
			qualifying = append(qualifying, r)
		}
	}

	sortGeogridBestFirst(qualifying)

	ranks := CollapseRanks(len(qualifying), func(i, j int) bool {
		return qualifying[i].Score == qualifying[j].Score
	})

	entries := make([]GeogridDailyEntry, len(qualifying))
	for i, r := range qualifying {
		entries[i] = GeogridDailyEntry{
			UserID:  r.UserID,
			Score:   r.Score,
			Correct: r.Correct,
			Rank:    ranks[i],
			Medal:   MedalForPosition(i + 1),
		}
	}

	return GeogridDaily{Board: board, Entries: entries}
}

// Placement is one user's podium finish on one board.
type Placement struct {
	UserID int64
	Board  int
	Place  int
}

// GeogridPlacements computes the top-three finishers of every qualifying
// board independently. Places are 1 for gold through 3 for bronze.
func GeogridPlacements(rows []models.GeogridScoreRow, endBoard int, includeEnd, includeLate bool) []Placement {
	byBoard := make(map[int][]models.GeogridScoreRow)
	for _, r := range rows {
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
		byBoard[r.Board] = append(byBoard[r.Board], r)
	}

	boards := make([]int, 0, len(byBoard))
	for board := range byBoard {
		boards = append(boards, board)
	}
	sort.Ints(boards)

	var placements []Placement
	for _, board := range boards {
		contenders := byBoard[board]
		sortGeogridBestFirst(contenders)

		for i, r := range contenders {
			if i >= 3 {
				break
			}
			placements = append(placements, Placement{
				UserID: r.UserID,
				Board:  board,
				Place:  i + 1,
			})
		}
	}

	return placements
}

func sortGeogridBestFirst(rows []models.GeogridScoreRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score < rows[j].Score
		}
		return rows[i].UserID < rows[j].UserID
	})
}

// MedalTally counts one user's podium finishes across all boards.
type MedalTally struct {
	Gold   int
	Silver int
	Bronze int
}

// Medal weights for the all-time ranking.
const (
	goldWeight   = 4
	silverWeight = 2
	bronzeWeight = 1
)

// Points returns the weighted medal score used for all-time ranking.
func (m MedalTally) Points() int {
	return m.Gold*goldWeight + m.Silver*silverWeight + m.Bronze*bronzeWeight
}

func (m MedalTally) String() string {
	return fmt.Sprintf("%s%d %s%d %s%d (Medal points: %d)",
		MedalGold, m.Gold, MedalSilver, m.Silver, MedalBronze, m.Bronze, m.Points())
}

// PlaceOutOfBoundsError reports a placement outside the podium reaching the
// medal tally. The placement computation only ever emits places 1 through 3,
// so this is a structural invariant violation, never attributed to bronze.
type PlaceOutOfBoundsError struct {
	Place int
}

func (e *PlaceOutOfBoundsError) Error() string {
	return fmt.Sprintf("unexpectedly received out-of-bounds place value: %d", e.Place)
}

// TallyMedals accumulates placements into per-user medal tallies.
func TallyMedals(placements []Placement) (map[int64]MedalTally, error) {
	tallies := make(map[int64]MedalTally)
	for _, p := range placements {
		tally := tallies[p.UserID]
		switch p.Place {
		case 1:
			tally.Gold++
		case 2:
			tally.Silver++
		case 3:
			tally.Bronze++
		default:
			return nil, &PlaceOutOfBoundsError{Place: p.Place}
		}
		tallies[p.UserID] = tally
	}
	return tallies, nil
}

// MedalStanding is one line of the all-time medal table.
type MedalStanding struct {
	UserID int64
	Tally  MedalTally
	Rank   int
}

// GeogridAllTime is the all-time GeoGrid medal table.
type GeogridAllTime struct {
	EndBoard    int
	IncludeEnd  bool
	IncludeLate bool
	Standings   []MedalStanding
}

// BuildGeogridAllTime awards gold, silver and bronze for every qualifying
// board and ranks users by weighted medal score, highest first.
func BuildGeogridAllTime(rows []models.GeogridScoreRow, endBoard int, includeEnd, includeLate bool) (GeogridAllTime, error) {
	placements := GeogridPlacements(rows, endBoard, includeEnd, includeLate)

	tallies, err := TallyMedals(placements)
	if err != nil {
		return GeogridAllTime{}, err
	}

	standings := make([]MedalStanding, 0, len(tallies))
	for userID, tally := range tallies {
		standings = append(standings, MedalStanding{UserID: userID, Tally: tally})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Tally.Points() != standings[j].Tally.Points() {
			return standings[i].Tally.Points() > standings[j].Tally.Points()
		}
		return standings[i].UserID < standings[j].UserID
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}

	return GeogridAllTime{
		EndBoard:    endBoard,
		IncludeEnd:  includeEnd,
		IncludeLate: includeLate,
		Standings:   standings,
	}, nil
}
