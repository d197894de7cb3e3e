package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"equipment-loan/internal/domain/submission"
	infradb "equipment-loan/internal/infrastructure/db"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// openTestConn points at a fresh file so every per-operation connection sees
// the same data (":memory:" would be empty on each open).
func openTestConn(t *testing.T) *infradb.Connector {
	t.Helper()
	conn := infradb.NewConnector(filepath.Join(t.TempDir(), "submissions.db"), zap.NewNop())
	if err := Migrate(context.Background(), conn, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func makeSubmission(name string) *submission.Submission {
	return &submission.Submission{
		Name:      name,
		Phone:     "0912345678",
		Email:     name + "@example.com",
		GroupName: "Youth Club",
		EventName: "Summer Camp",
		StartDate: "2025-07-01",
		EndDate:   "2025-07-03",
		Location:  "Hall B",
		Equipment: submission.Equipment{{Kind: "Tent", Quantity: 2}, {Kind: "Chair", Quantity: 1}},
		// the repository must ignore caller supplied review fields
		Status:        submission.StatusApproved,
		ReviewComment: "should be cleared",
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))
	ctx := context.Background()

	s := makeSubmission("alice")
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != submission.StatusPending {
		t.Errorf("status = %q, want pending", got.Status)
	}
	if got.ReviewComment != "" {
		t.Errorf("review comment = %q, want empty", got.ReviewComment)
	}
	if got.Equipment.String() != "Tent x2, Chair x1" {
		t.Errorf("equipment = %q", got.Equipment.String())
	}
	if got.Name != "alice" || got.Location != "Hall B" {
		t.Errorf("unexpected row: %+v", got)
	}
}

func TestCreate_AllowsEmptyFields(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))
	ctx := context.Background()

	s := &submission.Submission{}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create empty: %v", err)
	}
	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.HasEmail() || len(got.Equipment) != 0 {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, submission.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, submission.ErrStoreUnavailable) {
		t.Fatalf("not found must not look like an unavailable store")
	}
}

func TestList_NewestFirst(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if err := repo.Create(ctx, makeSubmission(name)); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantIDs := []uint64{3, 2, 1}
	for i, s := range got {
		if s.ID != wantIDs[i] {
			t.Fatalf("order = %d,%d,%d; want 3,2,1", got[0].ID, got[1].ID, got[2].ID)
		}
	}
}

func TestList_Empty(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))
	ctx := context.Background()

	s := makeSubmission("bob")
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name    string
		status  submission.Status
		comment string
	}{
		{"approve with comment", submission.StatusApproved, "pick up at gate 2"},
		{"free-form label", "waitlisted", "short on tents"},
		{"empty comment replaces previous", submission.StatusRejected, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.UpdateStatus(ctx, s.ID, tt.status, tt.comment)
			if err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
			if n != 1 {
				t.Fatalf("affected = %d, want 1", n)
			}
			got, err := repo.GetByID(ctx, s.ID)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if got.Status != tt.status || got.ReviewComment != tt.comment {
				t.Fatalf("got status=%q comment=%q", got.Status, got.ReviewComment)
			}
		})
	}
}

func TestUpdateStatus_MissingIDDoesNotUpsert(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))
	ctx := context.Background()

	n, err := repo.UpdateStatus(ctx, 42, submission.StatusApproved, "ok")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if n != 0 {
		t.Fatalf("affected = %d, want 0", n)
	}
	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, submission.ErrNotFound) {
		t.Fatalf("record must stay absent, got %v", err)
	}
	all, _ := repo.List(ctx)
	if len(all) != 0 {
		t.Fatalf("update created rows: %+v", all)
	}
}

func TestDelete(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))
	ctx := context.Background()

	s := makeSubmission("carol")
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := repo.Delete(ctx, s.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if _, err := repo.GetByID(ctx, s.ID); !errors.Is(err, submission.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// second delete and unknown id: zero rows, no error
	for _, id := range []uint64{s.ID, 777} {
		n, err = repo.Delete(ctx, id)
		if err != nil || n != 0 {
			t.Fatalf("Delete(%d): n=%d err=%v", id, n, err)
		}
	}
}

func TestDelete_IDsAreNotReused(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))
	ctx := context.Background()

	first := makeSubmission("dave")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	second := makeSubmission("erin")
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("id %d reused after delete", first.ID)
	}
}

func TestGetLatestByName(t *testing.T) {
	repo := NewSubmissionRepository(openTestConn(t))
	ctx := context.Background()

	older := makeSubmission("frank")
	older.EventName = "Spring Fair"
	other := makeSubmission("grace")
	newer := makeSubmission("frank")
	newer.EventName = "Autumn Fair"
	for _, s := range []*submission.Submission{older, other, newer} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.GetLatestByName(ctx, "frank")
	if err != nil {
		t.Fatalf("GetLatestByName: %v", err)
	}
	if got.ID != newer.ID || got.EventName != "Autumn Fair" {
		t.Fatalf("want newest row %d, got %+v", newer.ID, got)
	}

	if _, err := repo.GetLatestByName(ctx, "nobody"); !errors.Is(err, submission.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreUnavailable(t *testing.T) {
	// parent directory does not exist, so sqlite cannot create the file
	conn := infradb.NewConnector(filepath.Join(t.TempDir(), "missing", "dir", "x.db"), zap.NewNop())
	repo := NewSubmissionRepository(conn)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 1)
	if !errors.Is(err, submission.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if errors.Is(err, submission.ErrNotFound) {
		t.Fatalf("unavailable store must not look like not found")
	}

	if err := repo.Create(ctx, makeSubmission("x")); !errors.Is(err, submission.ErrStoreUnavailable) {
		t.Fatalf("Create: expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, 1, submission.StatusApproved, ""); !errors.Is(err, submission.ErrStoreUnavailable) {
		t.Fatalf("UpdateStatus: expected ErrStoreUnavailable, got %v", err)
	}
}
