package models

// SubmissionRequest represents the payload of a candidate score submission.
// Text is the raw share message exactly as the user posted it.
type SubmissionRequest struct {
	UserID   int64  `json:"user_id" validate:"required"`
	Username string `json:"username" validate:"required,min=2,max=64"`
	Text     string `json:"text" validate:"required"`
}

// Submission outcome statuses.
const (
	SubmissionAccepted  = "accepted"
	SubmissionDuplicate = "duplicate"
	SubmissionRejected  = "rejected"
	SubmissionIgnored   = "ignored"
)

// SubmissionResponse reports what happened to a submitted message.
type SubmissionResponse struct {
	Status    string `json:"status"`
	Game      string `json:"game,omitempty"`
	BestSoFar bool   `json:"best_so_far"`
	OnTime    bool   `json:"on_time"`
	Message   string `json:"message,omitempty"`
}

// LeaderboardView is a rendered leaderboard: a title, a few metadata fields,
// the ranked listing, and a footer note. How this structure is displayed is
// up to the consumer.
type LeaderboardView struct {
	Title  string      `json:"title"`
	Fields []ViewField `json:"fields"`
	Lines  []ViewLine  `json:"lines"`
	Footer string      `json:"footer"`
}

// ViewField is one metadata field of a leaderboard view, such as the board
// number or an inclusion flag.
type ViewField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ViewLine is one ranked entry of a leaderboard view.
type ViewLine struct {
	Rank    int    `json:"rank"`
	Mention string `json:"mention"`
	Metric  string `json:"metric"`
	Medal   string `json:"medal,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
