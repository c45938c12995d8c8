package domain

// Job status reported by the generate endpoint
const (
	JobStatusDone = "done"
)

// Job is one generate request's unit of work
type Job struct {
	JobID  string
	Script string
	Assets []string
}
