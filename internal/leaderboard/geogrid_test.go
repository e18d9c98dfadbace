package leaderboard

import (
	"errors"
	"testing"

	"puzzleboard/internal/models"
)

func geogridRow(userID int64, board int, score float64, dayAdded int) models.GeogridScoreRow {
	return models.GeogridScoreRow{
		GuildID:  1,
		UserID:   userID,
		Board:    board,
		Score:    score,
		DayAdded: dayAdded,
	}
}

func TestBuildGeogridDaily(t *testing.T) {
	rows := []models.GeogridScoreRow{
		geogridRow(1, 50, 210.4, 50),
		geogridRow(2, 50, 0, 50), // perfect game, best
		geogridRow(3, 50, 114.7, 50),
		geogridRow(4, 50, 114.7, 51), // late, excluded
		geogridRow(5, 49, 80.0, 49),  // other board, excluded
	}

	daily := BuildGeogridDaily(50, rows)

	if len(daily.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(daily.Entries))
	}

	// Lower is better, and a score of 0 must rank first.
	wantOrder := []int64{2, 3, 1}
	for i, e := range daily.Entries {
		if e.UserID != wantOrder[i] {
			t.Errorf("entry %d user = %d, want %d", i, e.UserID, wantOrder[i])
		}
	}
	if daily.Entries[0].Medal != MedalGold {
		t.Errorf("best entry medal = %q, want gold", daily.Entries[0].Medal)
	}
}

func TestGeogridPlacements(t *testing.T) {
	rows := []models.GeogridScoreRow{
		geogridRow(1, 10, 100, 10),
		geogridRow(2, 10, 200, 10),
		geogridRow(3, 10, 300, 10),
		geogridRow(4, 10, 400, 10), // fourth place, no medal
		geogridRow(1, 11, 50, 11),
		geogridRow(2, 11, 60, 11),
	}

	placements := GeogridPlacements(rows, 11, true, false)

	want := []Placement{
		{UserID: 1, Board: 10, Place: 1},
		{UserID: 2, Board: 10, Place: 2},
		{UserID: 3, Board: 10, Place: 3},
		{UserID: 1, Board: 11, Place: 1},
		{UserID: 2, Board: 11, Place: 2},
	}
	if len(placements) != len(want) {
		t.Fatalf("got %d placements, want %d: %+v", len(placements), len(want), placements)
	}
	for i, p := range placements {
		if p != want[i] {
			t.Errorf("placement %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestMedalTallyPoints(t *testing.T) {
	// Two golds and a silver weigh 4+4+2.
	tally := MedalTally{Gold: 2, Silver: 1}
	if got := tally.Points(); got != 10 {
		t.Errorf("Points = %d, want 10", got)
	}

	if got := (MedalTally{}).Points(); got != 0 {
		t.Errorf("empty tally Points = %d, want 0", got)
	}
	if got := (MedalTally{Gold: 1, Silver: 1, Bronze: 1}).Points(); got != 7 {
		t.Errorf("full podium Points = %d, want 7", got)
	}
}

func TestTallyMedals(t *testing.T) {
	placements := []Placement{
		{UserID: 1, Board: 10, Place: 1},
		{UserID: 1, Board: 11, Place: 1},
		{UserID: 1, Board: 12, Place: 2},
		{UserID: 2, Board: 10, Place: 3},
	}

	tallies, err := TallyMedals(placements)
	if err != nil {
		t.Fatalf("TallyMedals returned error: %v", err)
	}

	if got := tallies[1]; got != (MedalTally{Gold: 2, Silver: 1}) {
		t.Errorf("user 1 tally = %+v", got)
	}
	if got := tallies[2]; got != (MedalTally{Bronze: 1}) {
		t.Errorf("user 2 tally = %+v", got)
	}
}

func TestTallyMedalsRejectsBadPlace(t *testing.T) {
	_, err := TallyMedals([]Placement{{UserID: 1, Board: 10, Place: 4}})

	var oob *PlaceOutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("error = %v, want *PlaceOutOfBoundsError", err)
	}
	if oob.Place != 4 {
		t.Errorf("Place = %d, want 4", oob.Place)
	}
}

func TestBuildGeogridAllTime(t *testing.T) {
	rows := []models.GeogridScoreRow{
		geogridRow(1, 10, 100, 10),
		geogridRow(2, 10, 200, 10),
		geogridRow(1, 11, 50, 11),
		geogridRow(2, 11, 40, 11),
		geogridRow(2, 12, 10, 12),
	}

	table, err := BuildGeogridAllTime(rows, 12, true, false)
	if err != nil {
		t.Fatalf("BuildGeogridAllTime returned error: %v", err)
	}

	if len(table.Standings) != 2 {
		t.Fatalf("got %d standings, want 2", len(table.Standings))
	}

	// User 2: gold on 11 and 12, silver on 10 = 10 points.
	// User 1: gold on 10, silver on 11 = 6 points.
	first := table.Standings[0]
	if first.UserID != 2 || first.Tally.Points() != 10 || first.Rank != 1 {
		t.Errorf("first standing = %+v", first)
	}
	second := table.Standings[1]
	if second.UserID != 1 || second.Tally.Points() != 6 || second.Rank != 2 {
		t.Errorf("second standing = %+v", second)
	}
}

func TestBuildGeogridAllTimeFlags(t *testing.T) {
	rows := []models.GeogridScoreRow{
		geogridRow(1, 10, 100, 10),
		geogridRow(2, 10, 50, 11), // late but better
		geogridRow(1, 11, 100, 11),
	}

	// Late scores excluded: user 1 takes gold on both boards.
	table, err := BuildGeogridAllTime(rows, 11, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Standings[0]; got.UserID != 1 || got.Tally.Gold != 2 {
		t.Errorf("without late: first standing = %+v", got)
	}

	// Late scores included: user 2's better score takes gold on board 10.
	table, err = BuildGeogridAllTime(rows, 11, true, true)
	if err != nil {
		t.Fatal(err)
	}
	tallies := make(map[int64]MedalTally)
	for _, s := range table.Standings {
		tallies[s.UserID] = s.Tally
	}
	if tallies[2].Gold != 1 {
		t.Errorf("with late: user 2 tally = %+v", tallies[2])
	}
	if tallies[1].Gold != 1 || tallies[1].Silver != 1 {
		t.Errorf("with late: user 1 tally = %+v", tallies[1])
	}

	// Current board excluded: only board 10 counts.
	table, err = BuildGeogridAllTime(rows, 11, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Standings) != 1 || table.Standings[0].UserID != 1 {
		t.Errorf("without today: standings = %+v", table.Standings)
	}
}
