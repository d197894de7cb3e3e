package submission

import (
	"errors"
	"strings"
)

var (
	ErrNotFound         = errors.New("submission not found")
	ErrStoreUnavailable = errors.New("submission store unavailable")
	ErrInvalidStatus    = errors.New("status must not be empty")
	ErrNoEmail          = errors.New("submission has no email on file")
	ErrDeliveryFailed   = errors.New("notification delivery failed")
)

// Status is reviewer-authored free text. Only StatusPending is assigned by the
// system; the other labels exist so presentation code can special-case them.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus trims a reviewer supplied label. Any non-empty label is accepted.
func ParseStatus(raw string) (Status, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidStatus
	}
	return Status(s), nil
}

// Table: submissions (column names match the legacy table)
type Submission struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"column:name;type:text" json:"name"`
	Phone          string    `gorm:"column:phone;type:text" json:"phone"`
	Email          string    `gorm:"column:email;type:text" json:"email"`
	GroupName      string    `gorm:"column:group_name;type:text" json:"group_name"`
	EventName      string    `gorm:"column:event_name;type:text" json:"event_name"`
	StartDate      string    `gorm:"column:start_date;type:text" json:"start_date"`
	StartTime      string    `gorm:"column:start_time;type:text" json:"start_time"`
	EndDate        string    `gorm:"column:end_date;type:text" json:"end_date"`
	EndTime        string    `gorm:"column:end_time;type:text" json:"end_time"`
	Location       string    `gorm:"column:location;type:text" json:"location"`
	EventType      string    `gorm:"column:event_type;type:text" json:"event_type"`
	Participants   string    `gorm:"column:participants;type:text" json:"participants"`
	Equipment      Equipment `gorm:"column:equipment;type:text" json:"equipment"`
	SpecialRequest string    `gorm:"column:special_request;type:text" json:"special_request"`
	Donation       string    `gorm:"column:donation;type:text" json:"donation"`
	DonationMethod string    `gorm:"column:donation_method;type:text" json:"donation_method"`
	Remarks        string    `gorm:"column:remarks;type:text" json:"remarks"`
	EmergencyName  string    `gorm:"column:emergency_name;type:text" json:"emergency_name"`
	EmergencyPhone string    `gorm:"column:emergency_phone;type:text" json:"emergency_phone"`
	Status         Status    `gorm:"column:status;type:text" json:"status"`
	ReviewComment  string    `gorm:"column:review_comment;type:text" json:"review_comment"`
}

func (Submission) TableName() string { return "submissions" }

// CurrentStatus treats a missing status as pending.
func (s *Submission) CurrentStatus() Status {
	if strings.TrimSpace(string(s.Status)) == "" {
		return StatusPending
	}
	return s.Status
}

// HasEmail reports whether the requester left an address to notify.
func (s *Submission) HasEmail() bool { return strings.TrimSpace(s.Email) != "" }
