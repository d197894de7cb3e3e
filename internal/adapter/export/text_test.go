package export

import (
	"strings"
	"testing"

	"equipment-loan/internal/domain/submission"
)

func TestTextExporter_FieldOrder(t *testing.T) {
	s := &submission.Submission{
		ID:             42,
		Name:           "amy",
		Phone:          "555-0100",
		Email:          "amy@example.com",
		GroupName:      "Choir",
		EventName:      "Spring Fair",
		StartDate:      "2024-05-01",
		StartTime:      "09:00",
		EndDate:        "2024-05-01",
		EndTime:        "17:00",
		Location:       "Hall B",
		EventType:      "outdoor",
		Participants:   "80",
		Equipment:      submission.Equipment{{Kind: "Tent", Quantity: 2}},
		SpecialRequest: "early pickup",
		Donation:       "yes",
		DonationMethod: "cash",
		Remarks:        "-",
		EmergencyName:  "bob",
		EmergencyPhone: "555-0101",
		ReviewComment:  "",
	}

	out, err := NewTextExporter().Export(s)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if lines[0] != heading || lines[1] != "" {
		t.Fatalf("heading = %q", lines[:2])
	}

	want := []string{
		"ID: 42",
		"Name: amy",
		"Phone: 555-0100",
		"Email: amy@example.com",
		"Group: Choir",
		"Event: Spring Fair",
		"Start date: 2024-05-01",
		"Start time: 09:00",
		"End date: 2024-05-01",
		"End time: 17:00",
		"Location: Hall B",
		"Event type: outdoor",
		"Participants: 80",
		"Equipment: Tent x2",
		"Special request: early pickup",
		"Donation: yes",
		"Donation method: cash",
		"Remarks: -",
		"Emergency contact: bob",
		"Emergency phone: 555-0101",
		"Review status: pending",
		"Review comment: ",
	}
	got := lines[2:]
	if len(got) != len(want) {
		t.Fatalf("got %d field lines, want %d:\n%s", len(got), len(want), out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTextExporter_Nil(t *testing.T) {
	if _, err := NewTextExporter().Export(nil); err == nil {
		t.Fatal("expected error for nil submission")
	}
}
