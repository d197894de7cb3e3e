package review

type ReviewInput struct {
	ID      uint64
	Status  string
	Comment string
}

type ReviewDTO struct {
	SubmissionID uint64 `json:"submission_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	// Notified is true when a notice was handed to the dispatcher.
	Notified bool `json:"notified"`
}
