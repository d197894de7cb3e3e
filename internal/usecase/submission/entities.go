package submission

import (
	domain "equipment-loan/internal/domain/submission"
)

// Acknowledgement is shown to the applicant once the request is stored.
const Acknowledgement = "Submitted successfully! We will process your request as soon as possible. " +
	"Please keep an eye on your inbox: the review result will be sent by email."

type CreateInput struct {
	Name           string
	Phone          string
	Email          string
	GroupName      string
	EventName      string
	StartDate      string
	StartTime      string
	EndDate        string
	EndTime        string
	Location       string
	EventType      string
	Participants   string
	Equipment      []domain.Selection
	SpecialRequest string
	Donation       string
	DonationMethod string
	Remarks        string
	EmergencyName  string
	EmergencyPhone string
}

type CreateResult struct {
	ID      uint64 `json:"id"`
	Message string `json:"message"`
}

// StatusView is what an applicant may see about their own request.
type StatusView struct {
	Name          string `json:"name"`
	EventName     string `json:"event_name"`
	ReviewStatus  string `json:"review_status"`
	ReviewComment string `json:"review_comment"`
}

// Document is a rendered export ready to be served as a download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}
