package notification

import (
	"context"
	"fmt"

	"equipment-loan/internal/domain/submission"
)

// Message is built from a submission snapshot and never persisted.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Result reports a delivery outcome as data. Detail carries the last
// transport error when Delivered is false.
type Result struct {
	Delivered bool
	Detail    string
}

// Sender delivers one message. Implementations must not panic or return
// transport failures any other way than through Result.
type Sender interface {
	Send(ctx context.Context, msg Message) Result
}

// Dispatcher hands a message off the caller's critical path.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message)
}

const noComment = "none"

// NewSubmissionNotice tells the administrator a request arrived.
func NewSubmissionNotice(s *submission.Submission, adminEmail string) Message {
	return Message{
		To:      adminEmail,
		Subject: "[New request] Equipment loan",
		Body: fmt.Sprintf("Applicant: %s\nEvent: %s\nPhone: %s\nEmail: %s\nEquipment: %s",
			s.Name, s.EventName, s.Phone, s.Email, s.Equipment.String()),
	}
}

// NewReviewNotice carries the current status and comment to the requester.
// Review and resend both use it so the requester always sees the same text.
func NewReviewNotice(s *submission.Submission) Message {
	comment := s.ReviewComment
	if comment == "" {
		comment = noComment
	}
	event := s.EventName
	if event == "" {
		event = "-"
	}
	return Message{
		To:      s.Email,
		Subject: fmt.Sprintf("[Review result] %s", event),
		Body: fmt.Sprintf("Hello %s,\n\nYour request (event: %s) was reviewed as: %s\nReviewer comment: %s\n\n"+
			"If you have any questions, reply to this email to reach the administrator.",
			s.Name, event, s.CurrentStatus(), comment),
	}
}

// NewConnectivityProbe is the fixed body used by the test-email tooling.
func NewConnectivityProbe(to string) Message {
	return Message{
		To:      to,
		Subject: "[Test] SMTP connectivity",
		Body:    "This is a test email.",
	}
}
