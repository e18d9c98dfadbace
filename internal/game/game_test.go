package game

import (
	"errors"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Kind
	}{
		{"flagle", flagleShare, KindFlagle},
		{"geogrid", geogridShare, KindGeogrid},
		{"foodguessr", foodguessrShare, KindFoodguessr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Detect(tt.text)
			if err != nil {
				t.Fatalf("Detect returned error: %v", err)
			}
			if score.Kind() != tt.want {
				t.Errorf("Detect kind = %v, want %v", score.Kind(), tt.want)
			}
		})
	}
}

func TestDetectNotAScore(t *testing.T) {
	texts := []string{
		"",
		"good morning everyone",
		"Wordle 1,204 3/6\n⬛⬛🟨\n🟩🟩🟩",
	}

	for _, text := range texts {
		if _, err := Detect(text); !errors.Is(err, ErrNotAScore) {
			t.Errorf("Detect(%q) error = %v, want ErrNotAScore", text, err)
		}
	}
}

func TestDetectInvalidScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		game Kind
	}{
		{"flagle header with broken body", "#Flagle #957 (05.10.2024) 3/6\nno grid here", KindFlagle},
		{"geogrid summary with broken body", "🌎Game Summary🌎", KindGeogrid},
		{"foodguessr header with broken date", "FoodGuessr - sometime soon\nr1\nr2\nr3", KindFoodguessr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Detect(tt.text)
			var invalid *InvalidScoreError
			if !errors.As(err, &invalid) {
				t.Fatalf("Detect error = %v, want *InvalidScoreError", err)
			}
			if invalid.Game != tt.game {
				t.Errorf("InvalidScoreError.Game = %v, want %v", invalid.Game, tt.game)
			}
			if invalid.Err == nil {
				t.Error("InvalidScoreError.Err is nil")
			}
		})
	}
}

func TestDetectOrder(t *testing.T) {
	// GeoGrid is probed first, so its summary title wins even when another
	// game's header appears later in the text.
	kinds := make([]Kind, len(Games()))
	for i, g := range Games() {
		kinds[i] = g.Kind()
	}

	want := []Kind{KindGeogrid, KindFlagle, KindFoodguessr}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("Games() order = %v, want %v", kinds, want)
		}
	}
}

func TestKindFromString(t *testing.T) {
	for _, s := range []string{"flagle", "geogrid", "foodguessr"} {
		kind, ok := KindFromString(s)
		if !ok || string(kind) != s {
			t.Errorf("KindFromString(%q) = %v, %v", s, kind, ok)
		}
	}
	if _, ok := KindFromString("wordle"); ok {
		t.Error("KindFromString accepted an unknown game")
	}
}
