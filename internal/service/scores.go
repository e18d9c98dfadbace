package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"puzzleboard/internal/game"
	"puzzleboard/internal/leaderboard"
	"puzzleboard/internal/models"
	"puzzleboard/internal/repository"
	"puzzleboard/internal/worker"
)

// ErrUnknownGame is returned when a leaderboard is requested for a game
// identifier that no parser recognises.
var ErrUnknownGame = errors.New("unknown game")

// Gateway is the persistence surface the score service depends on.
// *repository.PostgresRepository satisfies it.
type Gateway interface {
	InsertFlagleScore(ctx context.Context, row models.FlagleScoreRow, username string) (repository.InsertedScore, error)
	InsertGeogridScore(ctx context.Context, row models.GeogridScoreRow, username string) (repository.InsertedScore, error)
	InsertFoodguessrScore(ctx context.Context, row models.FoodguessrScoreRow, username string) (repository.InsertedScore, error)

	FlagleScoresForBoard(ctx context.Context, guildID int64, board int) ([]models.FlagleScoreRow, error)
	FlagleScores(ctx context.Context, guildID int64) ([]models.FlagleScoreRow, error)
	GeogridScoresForBoard(ctx context.Context, guildID int64, board int) ([]models.GeogridScoreRow, error)
	GeogridScores(ctx context.Context, guildID int64) ([]models.GeogridScoreRow, error)
	FoodguessrScoresForDate(ctx context.Context, guildID int64, year, ordinal int) ([]models.FoodguessrScoreRow, error)
	FoodguessrScores(ctx context.Context, guildID int64) ([]models.FoodguessrScoreRow, error)

	Ping(ctx context.Context) error
}

// ScoreService handles business logic for score submissions and leaderboards
type ScoreService struct {
	gateway    Gateway
	redisRepo  *repository.RedisRepository
	workerPool *worker.WorkerPool
	now        func() time.Time
}

// NewScoreService creates a new score service
func NewScoreService(
	gateway Gateway,
	redisRepo *repository.RedisRepository,
	workerPool *worker.WorkerPool,
) *ScoreService {
	return &ScoreService{
		gateway:    gateway,
		redisRepo:  redisRepo,
		workerPool: workerPool,
		now:        time.Now,
	}
}

// Submit runs a raw message through score detection and, when it parses,
// persists it. Messages that are not share texts at all come back as
// "ignored"; texts that claim a game but fail to parse come back as
// "rejected" with the parse failure in Message. Duplicates are reported,
// never overwritten.
func (s *ScoreService) Submit(ctx context.Context, guildID int64, req models.SubmissionRequest) (models.SubmissionResponse, error) {
	score, err := game.Detect(req.Text)
	if err != nil {
		if errors.Is(err, game.ErrNotAScore) {
			return models.SubmissionResponse{Status: models.SubmissionIgnored}, nil
		}
		var invalid *game.InvalidScoreError
		if errors.As(err, &invalid) {
			return models.SubmissionResponse{
				Status:  models.SubmissionRejected,
				Game:    string(invalid.Game),
				Message: invalid.Err.Error(),
			}, nil
		}
		return models.SubmissionResponse{}, fmt.Errorf("failed to detect score: %w", err)
	}

	inserted, err := s.insert(ctx, guildID, req, score)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateScore) {
			return models.SubmissionResponse{
				Status: models.SubmissionDuplicate,
				Game:   string(score.Kind()),
			}, nil
		}
		return models.SubmissionResponse{}, fmt.Errorf("failed to persist %s score: %w", score.Kind(), err)
	}

	// Leaderboard change signal is off the request path; dropping it under
	// backpressure only delays live clients until the next submission.
	if s.workerPool != nil {
		task := worker.VersionBumpTask{GuildID: guildID, Game: string(score.Kind())}
		if err := s.workerPool.Submit(task); err != nil {
			log.Printf("Version bump dropped for guild %d: %v", guildID, err)
		}
	}

	return models.SubmissionResponse{
		Status:    models.SubmissionAccepted,
		Game:      string(score.Kind()),
		BestSoFar: inserted.BestSoFar,
		OnTime:    inserted.OnTime,
	}, nil
}

func (s *ScoreService) insert(ctx context.Context, guildID int64, req models.SubmissionRequest, score game.Score) (repository.InsertedScore, error) {
	switch sc := score.(type) {
	case game.FlagleScore:
		row, err := models.NewFlagleScoreRow(sc, guildID, req.UserID, s.now())
		if err != nil {
			return repository.InsertedScore{}, err
		}
		return s.gateway.InsertFlagleScore(ctx, row, req.Username)
	case game.GeogridScore:
		row, err := models.NewGeogridScoreRow(sc, guildID, req.UserID, s.now())
		if err != nil {
			return repository.InsertedScore{}, err
		}
		return s.gateway.InsertGeogridScore(ctx, row, req.Username)
	case game.FoodguessrScore:
		row := models.NewFoodguessrScoreRow(sc, guildID, req.UserID, s.now())
		return s.gateway.InsertFoodguessrScore(ctx, row, req.Username)
	default:
		return repository.InsertedScore{}, fmt.Errorf("%w: %T", ErrUnknownGame, score)
	}
}

// DailyLeaderboard builds today's leaderboard for one game in one guild.
func (s *ScoreService) DailyLeaderboard(ctx context.Context, guildID int64, kind game.Kind) (models.LeaderboardView, error) {
	switch kind {
	case game.KindFlagle:
		board, err := game.Flagle{}.Calendar().BoardAt(s.now())
		if err != nil {
			return models.LeaderboardView{}, err
		}
		rows, err := s.gateway.FlagleScoresForBoard(ctx, guildID, board)
		if err != nil {
			return models.LeaderboardView{}, fmt.Errorf("failed to fetch flagle scores: %w", err)
		}
		return renderFlagleDaily(leaderboard.BuildFlagleDaily(board, rows)), nil

	case game.KindGeogrid:
		board, err := game.Geogrid{}.Calendar().BoardAt(s.now())
		if err != nil {
			return models.LeaderboardView{}, err
		}
		rows, err := s.gateway.GeogridScoresForBoard(ctx, guildID, board)
		if err != nil {
			return models.LeaderboardView{}, fmt.Errorf("failed to fetch geogrid scores: %w", err)
		}
		return renderGeogridDaily(leaderboard.BuildGeogridDaily(board, rows)), nil

	case game.KindFoodguessr:
		today := s.now().UTC()
		rows, err := s.gateway.FoodguessrScoresForDate(ctx, guildID, today.Year(), today.YearDay())
		if err != nil {
			return models.LeaderboardView{}, fmt.Errorf("failed to fetch foodguessr scores: %w", err)
		}
		return renderFoodguessrDaily(leaderboard.BuildFoodguessrDaily(today, rows)), nil

	default:
		return models.LeaderboardView{}, fmt.Errorf("%w: %q", ErrUnknownGame, kind)
	}
}

// AllTimeLeaderboard builds the cumulative table for one game in one guild.
// The two flags are independent: includeToday controls whether the current
// board counts, includeLate whether scores submitted after their board's day
// count.
func (s *ScoreService) AllTimeLeaderboard(ctx context.Context, guildID int64, kind game.Kind, includeToday, includeLate bool) (models.LeaderboardView, error) {
	switch kind {
	case game.KindFlagle:
		board, err := game.Flagle{}.Calendar().BoardAt(s.now())
		if err != nil {
			return models.LeaderboardView{}, err
		}
		rows, err := s.gateway.FlagleScores(ctx, guildID)
		if err != nil {
			return models.LeaderboardView{}, fmt.Errorf("failed to fetch flagle scores: %w", err)
		}
		return renderFlagleAllTime(leaderboard.BuildFlagleAllTime(rows, board, includeToday, includeLate)), nil

	case game.KindGeogrid:
		board, err := game.Geogrid{}.Calendar().BoardAt(s.now())
		if err != nil {
			return models.LeaderboardView{}, err
		}
		rows, err := s.gateway.GeogridScores(ctx, guildID)
		if err != nil {
			return models.LeaderboardView{}, fmt.Errorf("failed to fetch geogrid scores: %w", err)
		}
		table, err := leaderboard.BuildGeogridAllTime(rows, board, includeToday, includeLate)
		if err != nil {
			return models.LeaderboardView{}, err
		}
		return renderGeogridAllTime(table), nil

	case game.KindFoodguessr:
		rows, err := s.gateway.FoodguessrScores(ctx, guildID)
		if err != nil {
			return models.LeaderboardView{}, fmt.Errorf("failed to fetch foodguessr scores: %w", err)
		}
		return renderFoodguessrAllTime(leaderboard.BuildFoodguessrAllTime(rows, s.now().UTC(), includeToday, includeLate)), nil

	default:
		return models.LeaderboardView{}, fmt.Errorf("%w: %q", ErrUnknownGame, kind)
	}
}

// HealthCheck verifies the service's backing stores are reachable.
func (s *ScoreService) HealthCheck(ctx context.Context) error {
	if err := s.gateway.Ping(ctx); err != nil {
		return fmt.Errorf("postgres unhealthy: %w", err)
	}
	if s.redisRepo != nil {
		if err := s.redisRepo.Ping(ctx); err != nil {
			return fmt.Errorf("redis unhealthy: %w", err)
		}
	}
	return nil
}

// Version returns the current global leaderboard version counter.
func (s *ScoreService) Version(ctx context.Context) (int64, error) {
	if s.redisRepo == nil {
		return 0, nil
	}
	return s.redisRepo.GetVersion(ctx)
}
