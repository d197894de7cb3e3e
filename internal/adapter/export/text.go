package export

import (
	"bytes"
	"fmt"
	"strconv"

	"equipment-loan/internal/domain/submission"
)

const heading = "Equipment Loan Request"

// TextExporter renders a submission as a plain text document with one
// "Label: value" line per field.
type TextExporter struct{}

func NewTextExporter() TextExporter { return TextExporter{} }

func (TextExporter) ContentType() string { return "text/plain; charset=utf-8" }
func (TextExporter) Extension() string   { return ".txt" }

type field struct {
	label string
	value string
}

// fields keeps the document order stable across releases.
func fields(s *submission.Submission) []field {
	return []field{
		{"ID", strconv.FormatUint(s.ID, 10)},
		{"Name", s.Name},
		{"Phone", s.Phone},
		{"Email", s.Email},
		{"Group", s.GroupName},
		{"Event", s.EventName},
		{"Start date", s.StartDate},
		{"Start time", s.StartTime},
		{"End date", s.EndDate},
		{"End time", s.EndTime},
		{"Location", s.Location},
		{"Event type", s.EventType},
		{"Participants", s.Participants},
		{"Equipment", s.Equipment.String()},
		{"Special request", s.SpecialRequest},
		{"Donation", s.Donation},
		{"Donation method", s.DonationMethod},
		{"Remarks", s.Remarks},
		{"Emergency contact", s.EmergencyName},
		{"Emergency phone", s.EmergencyPhone},
		{"Review status", string(s.CurrentStatus())},
		{"Review comment", s.ReviewComment},
	}
}

func (TextExporter) Export(s *submission.Submission) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("export: nil submission")
	}
	var b bytes.Buffer
	b.WriteString(heading)
	b.WriteString("\n\n")
	for _, f := range fields(s) {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.Bytes(), nil
}
