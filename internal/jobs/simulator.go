package jobs

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"puzzleboard/internal/game"
	"puzzleboard/internal/models"
	"puzzleboard/internal/service"
)

// SimulationManager feeds synthetic share texts through the submission
// pipeline at a steady rate. Texts go through the real parsers and the real
// gateway, so the simulator exercises everything but the HTTP layer.
type SimulationManager struct {
	service *service.ScoreService
	users   []simUser
	ticker  *time.Ticker
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// Metrics
	totalSubmissions atomic.Int64
	acceptedCount    atomic.Int64
	duplicateCount   atomic.Int64
	errorCount       atomic.Int64
	startTime        time.Time

	// Configuration
	guildID            int64
	tickInterval       time.Duration
	submissionsPerTick int
}

type simUser struct {
	id       int64
	username string
}

// SimulatorConfig holds configuration for the simulator
type SimulatorConfig struct {
	GuildID            int64         // Guild the synthetic scores land in
	UserCount          int           // Default: 25
	TickInterval       time.Duration // Default: 500ms
	SubmissionsPerTick int           // Default: 1
}

// NewSimulationManager creates a new simulation manager
func NewSimulationManager(service *service.ScoreService, config SimulatorConfig) *SimulationManager {
	// Apply defaults
	if config.UserCount == 0 {
		config.UserCount = 25
	}
	if config.TickInterval == 0 {
		config.TickInterval = 500 * time.Millisecond
	}
	if config.SubmissionsPerTick == 0 {
		config.SubmissionsPerTick = 1
	}

	users := make([]simUser, config.UserCount)
	for i := range users {
		users[i] = simUser{
			id:       1_000_000 + int64(i),
			username: fmt.Sprintf("sim_player_%02d", i+1),
		}
	}

	return &SimulationManager{
		service:            service,
		users:              users,
		stopCh:             make(chan struct{}),
		guildID:            config.GuildID,
		tickInterval:       config.TickInterval,
		submissionsPerTick: config.SubmissionsPerTick,
	}
}

// Start begins the simulation loop
func (sm *SimulationManager) Start(ctx context.Context) error {
	if sm.running.Load() {
		return fmt.Errorf("simulation already running")
	}

	sm.startTime = time.Now()
	sm.running.Store(true)

	log.Printf("Simulation manager started")
	log.Printf("   - Guild: %d", sm.guildID)
	log.Printf("   - Users: %d", len(sm.users))
	log.Printf("   - Tick interval: %v", sm.tickInterval)
	log.Printf("   - Submissions per tick: %d", sm.submissionsPerTick)

	sm.wg.Add(1)
	go sm.simulationLoop(ctx)

	sm.wg.Add(1)
	go sm.metricsReporter(ctx)

	return nil
}

// Stop gracefully stops the simulation
func (sm *SimulationManager) Stop() {
	if !sm.running.Load() {
		log.Println("Simulation not running")
		return
	}

	log.Println("Stopping simulation manager...")
	sm.running.Store(false)
	close(sm.stopCh)
	sm.wg.Wait()

	elapsed := time.Since(sm.startTime)
	total := sm.totalSubmissions.Load()

	log.Println("Simulation manager stopped")
	log.Printf("   - Total submissions: %d", total)
	log.Printf("   - Accepted: %d | Duplicates: %d | Errors: %d",
		sm.acceptedCount.Load(), sm.duplicateCount.Load(), sm.errorCount.Load())
	log.Printf("   - Duration: %v", elapsed.Round(time.Second))
	log.Printf("   - Average rate: %.1f submissions/sec", float64(total)/elapsed.Seconds())
}

// IsRunning returns whether the simulation is currently running
func (sm *SimulationManager) IsRunning() bool {
	return sm.running.Load()
}

// GetMetrics returns current simulation metrics
func (sm *SimulationManager) GetMetrics() map[string]interface{} {
	elapsed := time.Since(sm.startTime)
	total := sm.totalSubmissions.Load()

	return map[string]interface{}{
		"running":           sm.running.Load(),
		"total_submissions": total,
		"accepted":          sm.acceptedCount.Load(),
		"duplicates":        sm.duplicateCount.Load(),
		"errors":            sm.errorCount.Load(),
		"duration_sec":      elapsed.Seconds(),
		"rate":              float64(total) / elapsed.Seconds(),
		"uptime":            elapsed.String(),
	}
}

// simulationLoop is the main event loop
func (sm *SimulationManager) simulationLoop(ctx context.Context) {
	defer sm.wg.Done()

	sm.ticker = time.NewTicker(sm.tickInterval)
	defer sm.ticker.Stop()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	userIndex := 0

	for {
		select {
		case <-ctx.Done():
			log.Println("Simulation context cancelled")
			return

		case <-sm.stopCh:
			return

		case <-sm.ticker.C:
			for i := 0; i < sm.submissionsPerTick; i++ {
				if userIndex >= len(sm.users) {
					userIndex = 0
					// Reshuffle for variety
					rng.Shuffle(len(sm.users), func(i, j int) {
						sm.users[i], sm.users[j] = sm.users[j], sm.users[i]
					})
				}

				user := sm.users[userIndex]
				userIndex++

				req := models.SubmissionRequest{
					UserID:   user.id,
					Username: user.username,
					Text:     RandomShareText(rng, time.Now()),
				}

				sm.totalSubmissions.Add(1)
				resp, err := sm.service.Submit(context.Background(), sm.guildID, req)
				switch {
				case err != nil:
					sm.errorCount.Add(1)
					// Log only a sample, not every failure
					if sm.errorCount.Load()%100 == 1 {
						log.Printf("Simulation error (total: %d): %v", sm.errorCount.Load(), err)
					}
				case resp.Status == models.SubmissionDuplicate:
					sm.duplicateCount.Add(1)
				case resp.Status == models.SubmissionAccepted:
					sm.acceptedCount.Add(1)
				}
			}
		}
	}
}

// metricsReporter logs metrics periodically
func (sm *SimulationManager) metricsReporter(ctx context.Context) {
	defer sm.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sm.stopCh:
			return
		case <-ticker.C:
			elapsed := time.Since(sm.startTime)
			total := sm.totalSubmissions.Load()

			log.Printf("Simulation metrics:")
			log.Printf("   - Submissions: %d (%.1f/sec)", total, float64(total)/elapsed.Seconds())
			log.Printf("   - Accepted: %d | Duplicates: %d | Errors: %d",
				sm.acceptedCount.Load(), sm.duplicateCount.Load(), sm.errorCount.Load())
			log.Printf("   - Uptime: %v", elapsed.Round(time.Second))
		}
	}
}

// RandomShareText produces a valid share text for a random game, dated to
// the board active at the given instant.
func RandomShareText(rng *rand.Rand, now time.Time) string {
	switch rng.Intn(3) {
	case 0:
		return FlagleShareText(game.FlagleCalendar.BoardNow(), rng.Intn(7))
	case 1:
		return GeogridShareText(game.GeogridCalendar.BoardNow(), rng.Intn(10),
			rng.Float64()*900, 1+rng.Intn(9000), 9001+rng.Intn(3000))
	default:
		return FoodguessrShareText(now.UTC(), rng.Intn(game.FoodguessrMaxScore+1))
	}
}

// FlagleShareText renders a Flagle share message with the given number of
// green squares, between 0 and 6.
func FlagleShareText(board, greens int) string {
	var grid strings.Builder
	for i := 0; i < 6; i++ {
		if i == 3 {
			grid.WriteByte('\n')
		}
		if i < greens {
			grid.WriteString("🟩")
		} else {
			grid.WriteString("🟥")
		}
	}

	guesses := "X"
	if greens > 0 {
		guesses = fmt.Sprintf("%d", 7-greens)
	}

	date, _ := game.FlagleCalendar.DateOfBoard(board)
	return fmt.Sprintf("#Flagle #%d (%s) %s/6\n%s\nhttps://www.flagle.io",
		board, date.Format("02.01.2006"), guesses, grid.String())
}

// GeogridShareText renders a GeoGrid share message.
func GeogridShareText(board, correct int, score float64, rank, players int) string {
	if correct > 9 {
		correct = 9
	}
	var grid strings.Builder
	for i := 0; i < 9; i++ {
		if i > 0 && i%3 == 0 {
			grid.WriteByte('\n')
		}
		if i < correct {
			grid.WriteString("✅ ")
		} else {
			grid.WriteString("❌ ")
		}
	}

	return fmt.Sprintf("%s\n\n🌎Game Summary🌎\nBoard #%d\nScore: %.1f\nRank: %d / %d\nhttps://geogridgame.com\n@geogridgame",
		grid.String(), board, score, rank, players)
}

// FoodguessrShareText renders a FoodGuessr share message for the given date.
func FoodguessrShareText(date time.Time, score int) string {
	return fmt.Sprintf("FoodGuessr - %s GMT\n  Round 1 🌕🌕🌕🌖\n  Round 2 🌕🌕🌕🌑\n  Round 3 🌕🌕🌕🌖\nTotal score: %s / 15,000\n\nCan you beat my score? New game daily!\nPlay at https://www.foodguessr.com",
		date.Format("02 Jan 2006"), thousands(score))
}

// thousands formats an integer with comma separators, as the games do.
func thousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
