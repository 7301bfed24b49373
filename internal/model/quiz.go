package model

// AnswerQuizRequest is the payload for answering the current quiz question.
// Step is the 1-based question number the client was shown; when present a
// mismatch with the server's position is rejected as stale.
type AnswerQuizRequest struct {
	Option *int `json:"option" form:"option" binding:"required,min=0"`
	Step   *int `json:"step" form:"step" binding:"omitempty,min=1"`
}
