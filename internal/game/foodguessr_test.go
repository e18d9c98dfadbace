package game

import (
	"testing"
	"time"
)

const foodguessrShare = "FoodGuessr - 05 Oct 2024 GMT\n  Round 1 🌕🌕🌕🌖\n  Round 2 🌕🌕🌕🌑\n  Round 3 🌕🌕🌕🌕\nTotal score: 13,780 / 15,000\n\nCan you beat my score? New game daily!\nPlay at https://www.foodguessr.com"

func TestFoodguessrParse(t *testing.T) {
	score, err := Foodguessr{}.Parse(foodguessrShare)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	got, ok := score.(FoodguessrScore)
	if !ok {
		t.Fatalf("Parse returned %T, want FoodguessrScore", score)
	}
	if got.Score != 13780 {
		t.Errorf("Score = %d, want 13780", got.Score)
	}
	wantDate := time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", got.Date, wantDate)
	}
}

func TestFoodguessrParseMonths(t *testing.T) {
	tests := []struct {
		name  string
		month string
		want  time.Month
	}{
		{"abbreviated", "Oct", time.October},
		{"full", "October", time.October},
		{"case insensitive", "oCtObEr", time.October},
		{"january abbreviated", "Jan", time.January},
		{"december full", "December", time.December},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "FoodGuessr - 05 " + tt.month + " 2024 GMT\n r1\n r2\n r3\nTotal score: 10,000 / 15,000"
			score, err := Foodguessr{}.Parse(text)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if got := score.(FoodguessrScore).Date.Month(); got != tt.want {
				t.Errorf("Month = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFoodguessrParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{
			name: "empty",
			text: "",
			want: ErrEmpty,
		},
		{
			name: "wrong header",
			text: "GeoGuessr - 05 Oct 2024\n r1\n r2\n r3\nTotal score: 10,000 / 15,000",
			want: &MissingError{Section: SectionDetails},
		},
		{
			name: "date missing timezone token",
			text: "FoodGuessr - 05 Oct 2024\n r1\n r2\n r3\nTotal score: 10,000 / 15,000",
			want: &FormatError{Section: SectionDate},
		},
		{
			name: "day not a number",
			text: "FoodGuessr - banana Oct 2024 GMT\n r1\n r2\n r3\nTotal score: 10,000 / 15,000",
			want: &NotANumberError{Field: FieldDay},
		},
		{
			name: "invalid month",
			text: "FoodGuessr - 05 Smarch 2024 GMT\n r1\n r2\n r3\nTotal score: 10,000 / 15,000",
			want: ErrInvalidMonth,
		},
		{
			name: "year not a number",
			text: "FoodGuessr - 05 Oct someyear GMT\n r1\n r2\n r3\nTotal score: 10,000 / 15,000",
			want: &NotANumberError{Field: FieldYear},
		},
		{
			name: "impossible date",
			text: "FoodGuessr - 31 Feb 2024 GMT\n r1\n r2\n r3\nTotal score: 10,000 / 15,000",
			want: &FormatError{Section: SectionDate},
		},
		{
			name: "rounds missing",
			text: "FoodGuessr - 05 Oct 2024 GMT\n r1\n r2",
			want: ErrTruncated,
		},
		{
			name: "score line missing",
			text: "FoodGuessr - 05 Oct 2024 GMT\n r1\n r2\n r3",
			want: &MissingError{Section: SectionScore},
		},
		{
			name: "score missing denominator",
			text: "FoodGuessr - 05 Oct 2024 GMT\n r1\n r2\n r3\nTotal score: 10,000",
			want: &FormatError{Section: SectionScore},
		},
		{
			name: "score not a number",
			text: "FoodGuessr - 05 Oct 2024 GMT\n r1\n r2\n r3\nTotal score: lots / 15,000",
			want: &NotANumberError{Field: FieldScore},
		},
		{
			name: "score beyond maximum",
			text: "FoodGuessr - 05 Oct 2024 GMT\n r1\n r2\n r3\nTotal score: 15,001 / 15,000",
			want: &FormatError{Section: SectionScore},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Foodguessr{}.Parse(tt.text)
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if !matchesParseError(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFoodguessrClaims(t *testing.T) {
	if !(Foodguessr{}).Claims(foodguessrShare) {
		t.Error("Claims rejected a FoodGuessr share text")
	}
	if (Foodguessr{}).Claims("🌎Game Summary🌎") {
		t.Error("Claims accepted a non-FoodGuessr text")
	}
}
