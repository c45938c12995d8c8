package dto

// GenerateResponse is returned once a movie has been composed
type GenerateResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// ErrorResponse carries a human readable error
type ErrorResponse struct {
	Error string `json:"error"`
}

// Messages returned to clients for missing artifacts
const (
	MsgPreviewNotAvailable = "Preview not available"
	MsgMovieNotFound       = "Movie not found"
)
