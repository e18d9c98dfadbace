package game

import (
	"errors"
	"testing"
)

const flagleShare = "#Flagle #957 (05.10.2024) 5/6\n🟥🟥🟩\n🟩🟥🟥\nhttps://www.flagle.io"

func TestFlagleParse(t *testing.T) {
	score, err := Flagle{}.Parse(flagleShare)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	got, ok := score.(FlagleScore)
	if !ok {
		t.Fatalf("Parse returned %T, want FlagleScore", score)
	}
	if got.Board != 957 {
		t.Errorf("Board = %d, want 957", got.Board)
	}
	if got.Score != 2 {
		t.Errorf("Score = %d, want 2", got.Score)
	}
}

func TestFlagleParseFailedGame(t *testing.T) {
	// "X/6" means all guesses were used without solving: score 0.
	text := "#Flagle #957 (05.10.2024) X/6\n🟥🟥🟥\n🟥🟥🟥"

	score, err := Flagle{}.Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := score.(FlagleScore).Score; got != 0 {
		t.Errorf("Score = %d, want 0", got)
	}
}

func TestFlagleParsePerfectGame(t *testing.T) {
	text := "#Flagle #100 (01.06.2022) 1/6\n🟩🟩🟩\n🟩🟩🟩"

	score, err := Flagle{}.Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := score.(FlagleScore).Score; got != 6 {
		t.Errorf("Score = %d, want 6", got)
	}
}

func TestFlagleParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{
			name: "wrong header",
			text: "Wordle 1,204 3/6\n⬛⬛🟨\n🟩🟩🟩",
			want: &MissingError{Section: SectionDetails},
		},
		{
			name: "board not a number",
			text: "#Flagle #abc (05.10.2024) 3/6\n🟥🟥🟩\n🟩🟩🟩",
			want: &NotANumberError{Field: FieldBoard},
		},
		{
			name: "negative board",
			text: "#Flagle #-4 (05.10.2024) 3/6\n🟥🟥🟩\n🟩🟩🟩",
			want: &NotANumberError{Field: FieldBoard},
		},
		{
			name: "no guesses",
			text: "#Flagle #957 (05.10.2024)\n🟥🟥🟩\n🟩🟩🟩",
			want: &MissingError{Section: SectionGuesses},
		},
		{
			name: "malformed guess fraction",
			text: "#Flagle #957 (05.10.2024) 3 of 6\n🟥🟥🟩\n🟩🟩🟩",
			want: &FormatError{Section: SectionGuesses},
		},
		{
			name: "grid line missing",
			text: "#Flagle #957 (05.10.2024) 3/6\n🟥🟥🟩",
			want: ErrTruncated,
		},
		{
			name: "no grid markers",
			text: "#Flagle #957 (05.10.2024) 3/6\nfoo\nbar",
			want: &MissingError{Section: SectionGrid},
		},
		{
			name: "short grid",
			text: "#Flagle #957 (05.10.2024) 3/6\n🟥🟩\n🟩🟩",
			want: &FormatError{Section: SectionGrid},
		},
		{
			name: "guess count disagrees with grid",
			text: "#Flagle #957 (05.10.2024) 1/6\n🟥🟥🟩\n🟩🟥🟥",
			want: ErrInconsistent,
		},
		{
			name: "empty",
			text: "",
			want: ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flagle{}.Parse(tt.text)
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if !matchesParseError(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFlagleClaims(t *testing.T) {
	if !(Flagle{}).Claims(flagleShare) {
		t.Error("Claims rejected a Flagle share text")
	}
	if (Flagle{}).Claims("Wordle 1,204 3/6") {
		t.Error("Claims accepted a non-Flagle text")
	}
	if !(Flagle{}).Claims("  \n#Flagle #1 (22.02.2022) 3/6") {
		t.Error("Claims should ignore leading whitespace")
	}
}

// matchesParseError compares an actual parse error against an expected one,
// following sentinel and typed-error semantics.
func matchesParseError(got, want error) bool {
	switch w := want.(type) {
	case *MissingError:
		var g *MissingError
		return errors.As(got, &g) && g.Section == w.Section
	case *FormatError:
		var g *FormatError
		return errors.As(got, &g) && g.Section == w.Section
	case *NotANumberError:
		var g *NotANumberError
		return errors.As(got, &g) && g.Field == w.Field
	default:
		return errors.Is(got, want)
	}
}
