package service

import (
	"fmt"

	"puzzleboard/internal/leaderboard"
	"puzzleboard/internal/models"
)

const leaderboardFooter = "Ranking may change with more submissions! Check again later for updated scores."

func mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func renderFlagleDaily(daily leaderboard.FlagleDaily) models.LeaderboardView {
	lines := make([]models.ViewLine, len(daily.Entries))
	for i, e := range daily.Entries {
		lines[i] = models.ViewLine{
			Rank:    e.Rank,
			Mention: mention(e.UserID),
			Metric:  fmt.Sprintf("(%d pts)", e.Score),
			Medal:   e.Medal,
		}
	}
	return models.LeaderboardView{
		Title:  "Today's Flagle Leaderboard",
		Fields: []models.ViewField{{Name: "Board", Value: fmt.Sprintf("#%d", daily.Board)}},
		Lines:  lines,
		Footer: leaderboardFooter,
	}
}

func renderGeogridDaily(daily leaderboard.GeogridDaily) models.LeaderboardView {
	lines := make([]models.ViewLine, len(daily.Entries))
	for i, e := range daily.Entries {
		lines[i] = models.ViewLine{
			Rank:    e.Rank,
			Mention: mention(e.UserID),
			Metric:  fmt.Sprintf("(Score: %.1f, %d correct)", e.Score, e.Correct),
			Medal:   e.Medal,
		}
	}
	return models.LeaderboardView{
		Title:  "Today's GeoGrid Leaderboard",
		Fields: []models.ViewField{{Name: "Board", Value: fmt.Sprintf("#%d", daily.Board)}},
		Lines:  lines,
		Footer: leaderboardFooter,
	}
}

func renderFoodguessrDaily(daily leaderboard.FoodguessrDaily) models.LeaderboardView {
	lines := make([]models.ViewLine, len(daily.Entries))
	for i, e := range daily.Entries {
		lines[i] = models.ViewLine{
			Rank:    e.Rank,
			Mention: mention(e.UserID),
			Metric:  fmt.Sprintf("(%d pts)", e.Score),
			Medal:   e.Medal,
		}
	}
	return models.LeaderboardView{
		Title:  "Today's FoodGuessr Leaderboard",
		Fields: []models.ViewField{{Name: "Date", Value: daily.Date.Format("2 Jan 2006")}},
		Lines:  lines,
		Footer: leaderboardFooter,
	}
}

func renderFlagleAllTime(table leaderboard.FlagleAllTime) models.LeaderboardView {
	lines := make([]models.ViewLine, len(table.Totals))
	for i, t := range table.Totals {
		lines[i] = models.ViewLine{
			Rank:    t.Rank,
			Mention: mention(t.UserID),
			Metric:  fmt.Sprintf("(%d pts)", t.Total),
		}
	}
	return models.LeaderboardView{
		Title: "All-Time Flagle Leaderboard",
		Fields: []models.ViewField{
			{Name: fmt.Sprintf("Includes today's board (#%d)?", table.EndBoard), Value: yesNo(table.IncludeEnd)},
			{Name: "Includes late submissions?", Value: yesNo(table.IncludeLate)},
		},
		Lines:  lines,
		Footer: leaderboardFooter,
	}
}

func renderGeogridAllTime(table leaderboard.GeogridAllTime) models.LeaderboardView {
	lines := make([]models.ViewLine, len(table.Standings))
	for i, s := range table.Standings {
		lines[i] = models.ViewLine{
			Rank:    s.Rank,
			Mention: mention(s.UserID),
			Metric:  s.Tally.String(),
		}
	}
	return models.LeaderboardView{
		Title: "All-Time GeoGrid Leaderboard",
		Fields: []models.ViewField{
			{Name: fmt.Sprintf("Includes today's board (#%d)?", table.EndBoard), Value: yesNo(table.IncludeEnd)},
			{Name: "Includes late submissions?", Value: yesNo(table.IncludeLate)},
		},
		Lines:  lines,
		Footer: leaderboardFooter,
	}
}

func renderFoodguessrAllTime(table leaderboard.FoodguessrAllTime) models.LeaderboardView {
	lines := make([]models.ViewLine, len(table.Totals))
	for i, t := range table.Totals {
		lines[i] = models.ViewLine{
			Rank:    t.Rank,
			Mention: mention(t.UserID),
			Metric:  fmt.Sprintf("(%d pts)", t.Total),
		}
	}
	return models.LeaderboardView{
		Title: "All-Time FoodGuessr Leaderboard",
		Fields: []models.ViewField{
			{Name: fmt.Sprintf("Includes today (%s)?", table.EndDate.Format("2 Jan 2006")), Value: yesNo(table.IncludeEnd)},
			{Name: "Includes late submissions?", Value: yesNo(table.IncludeLate)},
		},
		Lines:  lines,
		Footer: leaderboardFooter,
	}
}
