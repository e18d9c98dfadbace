// Package leaderboard turns sets of persisted score rows into ranked views.
//
// Everything here is a pure function over rows already fetched from storage:
// filtering by board and inclusion flags, ordering by each game's best-first
// ordering, tie-aware display ranks, and the all-time cumulative and medal
// tables.
package leaderboard

// Medal markers for podium positions, display only.
const (
	MedalGold   = "🥇"
	MedalSilver = "🥈"
	MedalBronze = "🥉"
)

// CollapseRanks assigns tie-aware display ranks to n entries already sorted
// best-first. Consecutive tied entries share a rank and the next distinct
// entry resumes at its own position, giving the classic "1, 2, 2, 4"
// sequence. tied reports whether the entries at two indices have equal
// scores.
func CollapseRanks(n int, tied func(i, j int) bool) []int {
	ranks := make([]int, n)
	for i := range ranks {
		if i > 0 && tied(i, i-1) {
			ranks[i] = ranks[i-1]
		} else {
			ranks[i] = i + 1
		}
	}
	return ranks
}

// MedalForPosition returns the medal marker for a 1-indexed podium position,
// or an empty string beyond the podium.
func MedalForPosition(position int) string {
	switch position {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	}
	return ""
}

// UserTotal is one line of a cumulative all-time table.
type UserTotal struct {
	UserID int64
	Total  int
	Rank   int
}
