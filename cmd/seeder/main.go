package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"puzzleboard/internal/config"
	"puzzleboard/internal/game"
	"puzzleboard/internal/jobs"
	"puzzleboard/internal/leaderboard"
	"puzzleboard/internal/models"
	"puzzleboard/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	GuildID        = 1
	PlayerCount    = 8
	DaysOfHistory  = 14
	PlayChance     = 0.7
	LateChance     = 0.1
	UsernamePrefix = "player_"
)

func main() {
	log.Println("Starting puzzleboard seeder...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize PostgreSQL
	db, err := initPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	// Initialize Redis
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	postgresRepo := repository.NewPostgresRepository(db)
	redisRepo := repository.NewRedisRepository(redisClient)

	// Run migrations
	if err := postgresRepo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Seeding guild %d with %d days of scores for %d players...",
		GuildID, DaysOfHistory, PlayerCount)

	inserted, skipped := seedHistory(ctx, postgresRepo, rng)
	log.Printf("Inserted %d scores (%d already present)", inserted, skipped)

	// One version bump so live clients refetch after a reseed
	if err := redisRepo.BumpVersion(ctx); err != nil {
		log.Printf("Failed to bump version: %v", err)
	}

	showStandings(ctx, postgresRepo)

	// Close connections
	postgresRepo.Close()
	redisRepo.Close()

	log.Println("Seeder finished!")
}

// seedHistory generates share texts for each past day, runs them through the
// real parsers, and persists the resulting rows as if they had been
// submitted on the day they belong to. A small fraction is submitted a day
// late to exercise the late-score paths.
func seedHistory(ctx context.Context, repo *repository.PostgresRepository, rng *rand.Rand) (inserted, skipped int) {
	now := time.Now()

	for daysAgo := DaysOfHistory - 1; daysAgo >= 0; daysAgo-- {
		day := now.AddDate(0, 0, -daysAgo)

		for p := 0; p < PlayerCount; p++ {
			userID := int64(100 + p)
			username := fmt.Sprintf("%s%02d", UsernamePrefix, p+1)

			for _, text := range dailyShareTexts(rng, day) {
				submitted := day
				if rng.Float64() < LateChance {
					submitted = day.AddDate(0, 0, 1)
				}

				ok, err := insertParsed(ctx, repo, userID, username, text, submitted)
				switch {
				case err != nil:
					log.Fatalf("Failed to insert seed score: %v", err)
				case ok:
					inserted++
				default:
					skipped++
				}
			}
		}
	}

	return inserted, skipped
}

// dailyShareTexts renders one share text per game the player chose to play
// on the given day.
func dailyShareTexts(rng *rand.Rand, day time.Time) []string {
	var texts []string

	if rng.Float64() < PlayChance {
		if board, err := game.FlagleCalendar.BoardAt(day); err == nil {
			texts = append(texts, jobs.FlagleShareText(board, rng.Intn(7)))
		}
	}
	if rng.Float64() < PlayChance {
		if board, err := game.GeogridCalendar.BoardAt(day); err == nil {
			texts = append(texts, jobs.GeogridShareText(board, rng.Intn(10),
				rng.Float64()*900, 1+rng.Intn(9000), 9001+rng.Intn(3000)))
		}
	}
	if rng.Float64() < PlayChance {
		texts = append(texts, jobs.FoodguessrShareText(day.UTC(), rng.Intn(game.FoodguessrMaxScore+1)))
	}

	return texts
}

// insertParsed parses a share text and persists it with the given submission
// time. Reports false when the score was already present.
func insertParsed(ctx context.Context, repo *repository.PostgresRepository, userID int64, username, text string, submitted time.Time) (bool, error) {
	score, err := game.Detect(text)
	if err != nil {
		return false, fmt.Errorf("generated share text failed to parse: %w", err)
	}

	switch sc := score.(type) {
	case game.FlagleScore:
		row, err := models.NewFlagleScoreRow(sc, GuildID, userID, submitted)
		if err != nil {
			return false, err
		}
		_, err = repo.InsertFlagleScore(ctx, row, username)
		return insertOutcome(err)
	case game.GeogridScore:
		row, err := models.NewGeogridScoreRow(sc, GuildID, userID, submitted)
		if err != nil {
			return false, err
		}
		_, err = repo.InsertGeogridScore(ctx, row, username)
		return insertOutcome(err)
	case game.FoodguessrScore:
		row := models.NewFoodguessrScoreRow(sc, GuildID, userID, submitted)
		_, err = repo.InsertFoodguessrScore(ctx, row, username)
		return insertOutcome(err)
	default:
		return false, fmt.Errorf("unexpected score type %T", score)
	}
}

func insertOutcome(err error) (bool, error) {
	if errors.Is(err, repository.ErrDuplicateScore) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// showStandings prints the all-time Flagle table for a quick sanity check.
func showStandings(ctx context.Context, repo *repository.PostgresRepository) {
	rows, err := repo.FlagleScores(ctx, GuildID)
	if err != nil {
		log.Printf("Failed to fetch flagle scores: %v", err)
		return
	}

	table := leaderboard.BuildFlagleAllTime(rows, game.FlagleCalendar.BoardNow(), true, false)

	log.Println("All-time Flagle standings:")
	for _, t := range table.Totals {
		log.Printf("   %d. user %d - %d pts", t.Rank, t.UserID, t.Total)
	}
}

// initPostgres initializes PostgreSQL connection
func initPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// initRedis initializes Redis connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
