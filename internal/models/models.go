package models

import (
	"time"

	"puzzleboard/internal/game"
)

// User represents a known submitter. IDs come from the messaging platform,
// so rows are never auto-numbered.
type User struct {
	ID        int64     `gorm:"primarykey;autoIncrement:false" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// GuildUser records that a user has submitted scores in a guild.
type GuildUser struct {
	GuildID int64 `gorm:"primaryKey;autoIncrement:false" json:"guild_id"`
	UserID  int64 `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
}

// TableName specifies the table name for GORM
func (GuildUser) TableName() string {
	return "guild_users"
}

// FlagleScoreRow is one persisted Flagle submission. The composite primary
// key rejects duplicate submissions for the same board by the same user in
// the same guild.
type FlagleScoreRow struct {
	GuildID   int64     `gorm:"primaryKey;autoIncrement:false" json:"guild_id"`
	UserID    int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Board     int       `gorm:"primaryKey;autoIncrement:false" json:"board"`
	Score     int       `gorm:"not null" json:"score"`
	DayAdded  int       `gorm:"not null" json:"day_added"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FlagleScoreRow) TableName() string {
	return "flagle_scores"
}

// OnTime reports whether the score was submitted on the day of its board.
func (r FlagleScoreRow) OnTime() bool {
	return r.DayAdded == r.Board
}

// GeogridScoreRow is one persisted GeoGrid submission.
type GeogridScoreRow struct {
	GuildID   int64     `gorm:"primaryKey;autoIncrement:false" json:"guild_id"`
	UserID    int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Board     int       `gorm:"primaryKey;autoIncrement:false" json:"board"`
	Correct   int       `gorm:"not null" json:"correct"`
	Score     float64   `gorm:"not null" json:"score"`
	Rank      int       `gorm:"not null" json:"rank"`
	Players   int       `gorm:"not null" json:"players"`
	DayAdded  int       `gorm:"not null" json:"day_added"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (GeogridScoreRow) TableName() string {
	return "geogrid_scores"
}

// OnTime reports whether the score was submitted on the day of its board.
func (r GeogridScoreRow) OnTime() bool {
	return r.DayAdded == r.Board
}

// FoodguessrScoreRow is one persisted FoodGuessr submission. FoodGuessr has
// no board numbers, so scores are keyed by the puzzle's calendar date stored
// as year plus ordinal day.
type FoodguessrScoreRow struct {
	GuildID      int64     `gorm:"primaryKey;autoIncrement:false" json:"guild_id"`
	UserID       int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Year         int       `gorm:"primaryKey;autoIncrement:false" json:"year"`
	Ordinal      int       `gorm:"primaryKey;autoIncrement:false" json:"ordinal"`
	Score        int       `gorm:"not null" json:"score"`
	YearAdded    int       `gorm:"not null" json:"year_added"`
	OrdinalAdded int       `gorm:"not null" json:"ordinal_added"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FoodguessrScoreRow) TableName() string {
	return "foodguessr_scores"
}

// OnTime reports whether the score was submitted on the puzzle's own date.
func (r FoodguessrScoreRow) OnTime() bool {
	return r.Year == r.YearAdded && r.Ordinal == r.OrdinalAdded
}

// NewFlagleScoreRow builds a persistable row from a parsed score and the
// submission instant. Fails if the instant predates the game's epoch.
func NewFlagleScoreRow(s game.FlagleScore, guildID, userID int64, submitted time.Time) (FlagleScoreRow, error) {
	cal := game.Flagle{}.Calendar()
	dayAdded, err := cal.BoardAt(submitted)
	if err != nil {
		return FlagleScoreRow{}, err
	}
	return FlagleScoreRow{
		GuildID:  guildID,
		UserID:   userID,
		Board:    s.Board,
		Score:    s.Score,
		DayAdded: dayAdded,
	}, nil
}

// NewGeogridScoreRow builds a persistable row from a parsed score and the
// submission instant. Fails if the instant predates the game's epoch.
func NewGeogridScoreRow(s game.GeogridScore, guildID, userID int64, submitted time.Time) (GeogridScoreRow, error) {
	cal := game.Geogrid{}.Calendar()
	dayAdded, err := cal.BoardAt(submitted)
	if err != nil {
		return GeogridScoreRow{}, err
	}
	return GeogridScoreRow{
		GuildID:  guildID,
		UserID:   userID,
		Board:    s.Board,
		Correct:  s.Correct,
		Score:    s.Score,
		Rank:     s.Rank,
		Players:  s.Players,
		DayAdded: dayAdded,
	}, nil
}

// NewFoodguessrScoreRow builds a persistable row from a parsed score and the
// submission instant.
func NewFoodguessrScoreRow(s game.FoodguessrScore, guildID, userID int64, submitted time.Time) FoodguessrScoreRow {
	submittedDate := submitted.UTC()
	return FoodguessrScoreRow{
		GuildID:      guildID,
		UserID:       userID,
		Year:         s.Date.Year(),
		Ordinal:      s.Date.YearDay(),
		Score:        s.Score,
		YearAdded:    submittedDate.Year(),
		OrdinalAdded: submittedDate.YearDay(),
	}
}
