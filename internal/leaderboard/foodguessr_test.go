package leaderboard

import (
	"testing"
	"time"

	"puzzleboard/internal/models"
)

func foodguessrRow(userID int64, year, ordinal, score, yearAdded, ordinalAdded int) models.FoodguessrScoreRow {
	return models.FoodguessrScoreRow{
		GuildID:      1,
		UserID:       userID,
		Year:         year,
		Ordinal:      ordinal,
		Score:        score,
		YearAdded:    yearAdded,
		OrdinalAdded: ordinalAdded,
	}
}

func TestBuildFoodguessrDaily(t *testing.T) {
	date := time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC)
	ordinal := date.YearDay()

	rows := []models.FoodguessrScoreRow{
		foodguessrRow(1, 2024, ordinal, 12000, 2024, ordinal),
		foodguessrRow(2, 2024, ordinal, 14500, 2024, ordinal),
		foodguessrRow(3, 2024, ordinal, 9000, 2024, ordinal+1), // late, excluded
		foodguessrRow(4, 2024, ordinal-1, 15000, 2024, ordinal-1),
	}

	daily := BuildFoodguessrDaily(date, rows)

	if len(daily.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(daily.Entries))
	}
	if daily.Entries[0].UserID != 2 || daily.Entries[1].UserID != 1 {
		t.Errorf("order = %d, %d; want 2, 1", daily.Entries[0].UserID, daily.Entries[1].UserID)
	}
}

func TestBuildFoodguessrAllTimeCutoff(t *testing.T) {
	endDate := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)

	rows := []models.FoodguessrScoreRow{
		// Earlier year but later ordinal than the cutoff: must still count.
		foodguessrRow(1, 2024, 300, 1000, 2024, 300),
		foodguessrRow(1, 2025, 1, 100, 2025, 1),
		foodguessrRow(1, 2025, 2, 10, 2025, 2), // cutoff day itself
		foodguessrRow(1, 2025, 3, 1, 2025, 3),  // beyond cutoff
	}

	table := BuildFoodguessrAllTime(rows, endDate, true, false)
	if got := table.Totals[0].Total; got != 1110 {
		t.Errorf("including cutoff day: total = %d, want 1110", got)
	}

	table = BuildFoodguessrAllTime(rows, endDate, false, false)
	if got := table.Totals[0].Total; got != 1100 {
		t.Errorf("excluding cutoff day: total = %d, want 1100", got)
	}
}

func TestBuildFoodguessrAllTimeLateFlag(t *testing.T) {
	endDate := time.Date(2024, time.October, 10, 0, 0, 0, 0, time.UTC)
	ordinal := time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC).YearDay()

	rows := []models.FoodguessrScoreRow{
		foodguessrRow(1, 2024, ordinal, 5000, 2024, ordinal),
		foodguessrRow(2, 2024, ordinal, 7000, 2024, ordinal+2), // late
	}

	table := BuildFoodguessrAllTime(rows, endDate, true, false)
	if len(table.Totals) != 1 || table.Totals[0].UserID != 1 {
		t.Errorf("late excluded: totals = %+v", table.Totals)
	}

	table = BuildFoodguessrAllTime(rows, endDate, true, true)
	if len(table.Totals) != 2 {
		t.Fatalf("late included: got %d totals, want 2", len(table.Totals))
	}
	if table.Totals[0].UserID != 2 || table.Totals[0].Total != 7000 {
		t.Errorf("late included: first total = %+v", table.Totals[0])
	}
}
