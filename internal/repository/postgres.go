package repository

import (
	"context"
	"errors"
	"fmt"

	"puzzleboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateScore is returned when a user resubmits a score for a board or
// date they already submitted in the same guild. Duplicates are rejected,
// never overwritten.
var ErrDuplicateScore = errors.New("score is a duplicate entry for its board, user and guild")

// InsertedScore describes an accepted submission: whether it beat every
// other on-time score for its board so far, and whether it arrived on the
// board's own day.
type InsertedScore struct {
	BestSoFar bool
	OnTime    bool
}

// PostgresRepository is the persistence gateway. Each insert runs in a
// single transaction together with its best-so-far lookup, so two racing
// submissions cannot both observe a stale best.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository creates a new Postgres repository. The gorm handle
// must be opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// upsertGuildUser records the submitting user and their guild membership.
func upsertGuildUser(tx *gorm.DB, guildID, userID int64, username string) error {
	user := models.User{ID: userID, Username: username}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
	}).Create(&user).Error; err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	guildUser := models.GuildUser{GuildID: guildID, UserID: userID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&guildUser).Error; err != nil {
		return fmt.Errorf("upsert guild user: %w", err)
	}

	return nil
}

// InsertFlagleScore persists one Flagle submission. The previous best for
// the board is read before the insert, inside the same transaction.
func (r *PostgresRepository) InsertFlagleScore(ctx context.Context, row models.FlagleScoreRow, username string) (InsertedScore, error) {
	var inserted InsertedScore

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertGuildUser(tx, row.GuildID, row.UserID, username); err != nil {
			return err
		}

		var best models.FlagleScoreRow
		err := tx.
			Where("guild_id = ? AND user_id <> ? AND board = ? AND board = day_added", row.GuildID, row.UserID, row.Board).
			Order("score DESC").
			First(&best).Error
		switch {
		case err == nil:
			inserted.BestSoFar = row.Score > best.Score
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No on-time scores yet, so this one leads.
			inserted.BestSoFar = true
		default:
			return fmt.Errorf("get best flagle score: %w", err)
		}

		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateScore
			}
			return fmt.Errorf("insert flagle score: %w", err)
		}

		inserted.OnTime = row.OnTime()
		return nil
	})
	if err != nil {
		return InsertedScore{}, err
	}

	return inserted, nil
}

// InsertGeogridScore persists one GeoGrid submission. GeoGrid scores rank
// lowest-first, so after the insert the row leads the board exactly when the
// lowest on-time score belongs to the submitter.
func (r *PostgresRepository) InsertGeogridScore(ctx context.Context, row models.GeogridScoreRow, username string) (InsertedScore, error) {
	var inserted InsertedScore

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertGuildUser(tx, row.GuildID, row.UserID, username); err != nil {
			return err
		}

		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateScore
			}
			return fmt.Errorf("insert geogrid score: %w", err)
		}

		var best models.GeogridScoreRow
		err := tx.
			Where("guild_id = ? AND board = ? AND board = day_added", row.GuildID, row.Board).
			Order("score ASC").
			First(&best).Error
		switch {
		case err == nil:
			inserted.BestSoFar = best.UserID == row.UserID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// A late submission on a board nobody played on time.
			inserted.BestSoFar = false
		default:
			return fmt.Errorf("get best geogrid score: %w", err)
		}

		inserted.OnTime = row.OnTime()
		return nil
	})
	if err != nil {
		return InsertedScore{}, err
	}

	return inserted, nil
}

// InsertFoodguessrScore persists one FoodGuessr submission.
func (r *PostgresRepository) InsertFoodguessrScore(ctx context.Context, row models.FoodguessrScoreRow, username string) (InsertedScore, error) {
	var inserted InsertedScore

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertGuildUser(tx, row.GuildID, row.UserID, username); err != nil {
			return err
		}

		var best models.FoodguessrScoreRow
		err := tx.
			Where("guild_id = ? AND user_id <> ? AND year = ? AND ordinal = ? AND year = year_added AND ordinal = ordinal_added",
				row.GuildID, row.UserID, row.Year, row.Ordinal).
			Order("score DESC").
			First(&best).Error
		switch {
		case err == nil:
			inserted.BestSoFar = row.Score > best.Score
		case errors.Is(err, gorm.ErrRecordNotFound):
			inserted.BestSoFar = true
		default:
			return fmt.Errorf("get best foodguessr score: %w", err)
		}

		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateScore
			}
			return fmt.Errorf("insert foodguessr score: %w", err)
		}

		inserted.OnTime = row.OnTime()
		return nil
	})
	if err != nil {
		return InsertedScore{}, err
	}

	return inserted, nil
}

// FlagleScoresForBoard retrieves all of a guild's rows for one Flagle board,
// late submissions included. Filtering is left to the aggregator.
func (r *PostgresRepository) FlagleScoresForBoard(ctx context.Context, guildID int64, board int) ([]models.FlagleScoreRow, error) {
	var rows []models.FlagleScoreRow
	err := r.db.WithContext(ctx).
		Where("guild_id = ? AND board = ?", guildID, board).
		Find(&rows).Error
	return rows, err
}

// FlagleScores retrieves all of a guild's Flagle rows.
func (r *PostgresRepository) FlagleScores(ctx context.Context, guildID int64) ([]models.FlagleScoreRow, error) {
	var rows []models.FlagleScoreRow
	err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Find(&rows).Error
	return rows, err
}

// GeogridScoresForBoard retrieves all of a guild's rows for one GeoGrid board.
func (r *PostgresRepository) GeogridScoresForBoard(ctx context.Context, guildID int64, board int) ([]models.GeogridScoreRow, error) {
	var rows []models.GeogridScoreRow
	err := r.db.WithContext(ctx).
		Where("guild_id = ? AND board = ?", guildID, board).
		Find(&rows).Error
	return rows, err
}

// GeogridScores retrieves all of a guild's GeoGrid rows.
func (r *PostgresRepository) GeogridScores(ctx context.Context, guildID int64) ([]models.GeogridScoreRow, error) {
	var rows []models.GeogridScoreRow
	err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Find(&rows).Error
	return rows, err
}

// FoodguessrScoresForDate retrieves all of a guild's rows for one FoodGuessr
// puzzle date.
func (r *PostgresRepository) FoodguessrScoresForDate(ctx context.Context, guildID int64, year, ordinal int) ([]models.FoodguessrScoreRow, error) {
	var rows []models.FoodguessrScoreRow
	err := r.db.WithContext(ctx).
		Where("guild_id = ? AND year = ? AND ordinal = ?", guildID, year, ordinal).
		Find(&rows).Error
	return rows, err
}

// FoodguessrScores retrieves all of a guild's FoodGuessr rows.
func (r *PostgresRepository) FoodguessrScores(ctx context.Context, guildID int64) ([]models.FoodguessrScoreRow, error) {
	var rows []models.FoodguessrScoreRow
	err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Find(&rows).Error
	return rows, err
}

// Ping checks if database is reachable
func (r *PostgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate runs database migrations
func (r *PostgresRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&models.User{},
		&models.GuildUser{},
		&models.FlagleScoreRow{},
		&models.GeogridScoreRow{},
		&models.FoodguessrScoreRow{},
	)
}
