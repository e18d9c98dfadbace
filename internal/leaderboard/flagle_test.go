package leaderboard

import (
	"testing"

	"puzzleboard/internal/models"
)

func flagleRow(userID int64, board, score, dayAdded int) models.FlagleScoreRow {
	return models.FlagleScoreRow{
		GuildID:  1,
		UserID:   userID,
		Board:    board,
		Score:    score,
		DayAdded: dayAdded,
	}
}

func TestBuildFlagleDaily(t *testing.T) {
	rows := []models.FlagleScoreRow{
		flagleRow(1, 100, 4, 100),
		flagleRow(2, 100, 6, 100),
		flagleRow(3, 100, 4, 100),
		flagleRow(4, 100, 2, 100),
		flagleRow(5, 100, 5, 101), // late, excluded
		flagleRow(6, 100, 0, 100), // failed game, excluded
		flagleRow(7, 99, 6, 99),   // other board, excluded
	}

	daily := BuildFlagleDaily(100, rows)

	if daily.Board != 100 {
		t.Errorf("Board = %d, want 100", daily.Board)
	}
	if len(daily.Entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(daily.Entries))
	}

	wantOrder := []int64{2, 1, 3, 4}
	wantRanks := []int{1, 2, 2, 4}
	wantMedals := []string{MedalGold, MedalSilver, MedalBronze, ""}
	for i, e := range daily.Entries {
		if e.UserID != wantOrder[i] {
			t.Errorf("entry %d user = %d, want %d", i, e.UserID, wantOrder[i])
		}
		if e.Rank != wantRanks[i] {
			t.Errorf("entry %d rank = %d, want %d", i, e.Rank, wantRanks[i])
		}
		if e.Medal != wantMedals[i] {
			t.Errorf("entry %d medal = %q, want %q", i, e.Medal, wantMedals[i])
		}
	}
}

func TestBuildFlagleDailyEmpty(t *testing.T) {
	daily := BuildFlagleDaily(100, nil)
	if len(daily.Entries) != 0 {
		t.Errorf("got %d entries, want 0", len(daily.Entries))
	}
}

func TestBuildFlagleAllTime(t *testing.T) {
	// User 1: boards 1-3 on time, 5 each. User 2: board 1 on time, a late
	// board 2, and a score on today's board 4.
	rows := []models.FlagleScoreRow{
		flagleRow(1, 1, 5, 1),
		flagleRow(1, 2, 5, 2),
		flagleRow(1, 3, 5, 3),
		flagleRow(2, 1, 6, 1),
		flagleRow(2, 2, 6, 3), // late
		flagleRow(2, 4, 6, 4), // today
	}

	tests := []struct {
		name         string
		includeToday bool
		includeLate  bool
		wantTotals   map[int64]int
	}{
		{"exclude today and late", false, false, map[int64]int{1: 15, 2: 6}},
		{"include today only", true, false, map[int64]int{1: 15, 2: 12}},
		{"include late only", false, true, map[int64]int{1: 15, 2: 12}},
		{"include both", true, true, map[int64]int{1: 15, 2: 18}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := BuildFlagleAllTime(rows, 4, tt.includeToday, tt.includeLate)

			got := make(map[int64]int)
			for _, total := range table.Totals {
				got[total.UserID] = total.Total
			}
			for userID, want := range tt.wantTotals {
				if got[userID] != want {
					t.Errorf("user %d total = %d, want %d", userID, got[userID], want)
				}
			}
			if len(got) != len(tt.wantTotals) {
				t.Errorf("got %d users, want %d", len(got), len(tt.wantTotals))
			}
		})
	}
}

func TestBuildFlagleAllTimeTieCollapse(t *testing.T) {
	rows := []models.FlagleScoreRow{
		flagleRow(1, 1, 6, 1),
		flagleRow(2, 1, 4, 1),
		flagleRow(3, 2, 4, 2),
		flagleRow(4, 1, 2, 1),
	}

	table := BuildFlagleAllTime(rows, 10, true, false)

	wantRanks := map[int64]int{1: 1, 2: 2, 3: 2, 4: 4}
	for _, total := range table.Totals {
		if want := wantRanks[total.UserID]; total.Rank != want {
			t.Errorf("user %d rank = %d, want %d", total.UserID, total.Rank, want)
		}
	}
}

func TestBuildFlagleAllTimeSkipsZeroScores(t *testing.T) {
	rows := []models.FlagleScoreRow{
		flagleRow(1, 1, 0, 1),
		flagleRow(1, 2, 0, 2),
	}

	table := BuildFlagleAllTime(rows, 10, true, true)
	if len(table.Totals) != 0 {
		t.Errorf("got %d totals, want 0: failed games never contribute", len(table.Totals))
	}
}
