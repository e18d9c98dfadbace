package jobs

import (
	"math/rand"
	"testing"
	"time"

	"puzzleboard/internal/game"
)

func TestFlagleShareTextParses(t *testing.T) {
	for greens := 0; greens <= 6; greens++ {
		text := FlagleShareText(957, greens)

		score, err := game.Flagle{}.Parse(text)
		if err != nil {
			t.Fatalf("greens=%d: generated text failed to parse: %v\n%s", greens, err, text)
		}

		got := score.(game.FlagleScore)
		if got.Score != greens {
			t.Errorf("greens=%d: parsed score = %d", greens, got.Score)
		}
		if got.Board != 957 {
			t.Errorf("greens=%d: parsed board = %d", greens, got.Board)
		}
	}
}

func TestGeogridShareTextParses(t *testing.T) {
	text := GeogridShareText(41, 7, 114.7, 2213, 9015)

	score, err := game.Geogrid{}.Parse(text)
	if err != nil {
		t.Fatalf("generated text failed to parse: %v\n%s", err, text)
	}

	got := score.(game.GeogridScore)
	want := game.GeogridScore{Correct: 7, Board: 41, Score: 114.7, Rank: 2213, Players: 9015}
	if got != want {
		t.Errorf("parsed = %+v, want %+v", got, want)
	}
}

func TestFoodguessrShareTextParses(t *testing.T) {
	date := time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC)

	for _, scoreVal := range []int{0, 999, 1000, 13780, game.FoodguessrMaxScore} {
		text := FoodguessrShareText(date, scoreVal)

		score, err := game.Foodguessr{}.Parse(text)
		if err != nil {
			t.Fatalf("score=%d: generated text failed to parse: %v\n%s", scoreVal, err, text)
		}

		got := score.(game.FoodguessrScore)
		if got.Score != scoreVal {
			t.Errorf("score=%d: parsed score = %d", scoreVal, got.Score)
		}
		if !got.Date.Equal(date) {
			t.Errorf("score=%d: parsed date = %v", scoreVal, got.Date)
		}
	}
}

func TestRandomShareTextAlwaysDetectable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Now()

	for i := 0; i < 100; i++ {
		text := RandomShareText(rng, now)
		if _, err := game.Detect(text); err != nil {
			t.Fatalf("iteration %d: generated text not detected: %v\n%s", i, err, text)
		}
	}
}
