package submission

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "equipment-loan/internal/domain/submission"
	"equipment-loan/internal/testutil/notificationmock"
	"equipment-loan/internal/testutil/submissionmock"

	"go.uber.org/zap/zaptest"
)

type stubExporter struct{ err error }

func (s stubExporter) Export(sub *domain.Submission) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("Name: " + sub.Name), nil
}
func (stubExporter) ContentType() string { return "text/plain; charset=utf-8" }
func (stubExporter) Extension() string   { return ".txt" }

func TestUsecase_Create(t *testing.T) {
	var stored *domain.Submission
	repo := &submissionmock.Repo{
		CreateFn: func(_ context.Context, s *domain.Submission) error {
			s.ID = 12
			stored = s
			return nil
		},
	}
	disp := &notificationmock.Dispatcher{}
	u := NewUsecase(repo, disp, stubExporter{}, "admin@example.com", zaptest.NewLogger(t))

	res, err := u.Create(context.Background(), CreateInput{
		Name:      "amy",
		Email:     " amy@example.com ",
		EventName: "Spring Fair",
		Equipment: []domain.Selection{
			{Kind: "Tent", Quantity: "2"},
			{Kind: "Chair", Quantity: "abc"},
			{Kind: "Speaker", Quantity: ""},
			{Kind: "Table", Quantity: "0"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ID != 12 || res.Message != Acknowledgement {
		t.Fatalf("result = %+v", res)
	}
	if stored.Email != "amy@example.com" {
		t.Fatalf("email not trimmed: %q", stored.Email)
	}
	if got := stored.Equipment.String(); got != "Tent x2, Chair x1, Speaker x1, Table x1" {
		t.Fatalf("equipment = %q", got)
	}

	calls := disp.Calls()
	if len(calls) != 1 {
		t.Fatalf("want one admin notice, got %d", len(calls))
	}
	if calls[0].To != "admin@example.com" || !strings.Contains(calls[0].Body, "Spring Fair") {
		t.Fatalf("notice = %+v", calls[0])
	}
}

func TestUsecase_Create_StoreFailureSkipsNotice(t *testing.T) {
	repo := &submissionmock.Repo{
		CreateFn: func(context.Context, *domain.Submission) error { return domain.ErrStoreUnavailable },
	}
	disp := &notificationmock.Dispatcher{}
	u := NewUsecase(repo, disp, stubExporter{}, "admin@example.com", nil)

	if _, err := u.Create(context.Background(), CreateInput{Name: "amy"}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
	if len(disp.Calls()) != 0 {
		t.Fatalf("notice dispatched for a request that was never stored")
	}
}

func TestUsecase_FindByRequesterName(t *testing.T) {
	repo := &submissionmock.Repo{
		GetLatestByNameFn: func(_ context.Context, name string) (*domain.Submission, error) {
			if name != "amy" {
				return nil, domain.ErrNotFound
			}
			return &domain.Submission{ID: 5, Name: "amy", EventName: "Fair", ReviewComment: ""}, nil
		},
	}
	u := NewUsecase(repo, nil, stubExporter{}, "", nil)

	view, err := u.FindByRequesterName(context.Background(), "  amy ")
	if err != nil {
		t.Fatalf("FindByRequesterName: %v", err)
	}
	if view.ReviewStatus != "pending" || view.EventName != "Fair" {
		t.Fatalf("view = %+v", view)
	}
	if _, err := u.FindByRequesterName(context.Background(), "zed"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUsecase_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		repoErr  error
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: domain.ErrNotFound},
		{name: "store down", repoErr: domain.ErrStoreUnavailable, wantErr: domain.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &submissionmock.Repo{
				DeleteFn: func(context.Context, uint64) (int64, error) { return tt.affected, tt.repoErr },
			}
			err := NewUsecase(repo, nil, stubExporter{}, "", nil).Delete(context.Background(), 4)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUsecase_Export(t *testing.T) {
	repo := &submissionmock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*domain.Submission, error) {
			if id != 9 {
				return nil, domain.ErrNotFound
			}
			return &domain.Submission{ID: 9, Name: "amy"}, nil
		},
	}
	u := NewUsecase(repo, nil, stubExporter{}, "", nil)

	doc, err := u.Export(context.Background(), 9)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if doc.Filename != "submission_9.txt" || string(doc.Body) != "Name: amy" {
		t.Fatalf("doc = %+v", doc)
	}
	if _, err := u.Export(context.Background(), 10); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	broken := errors.New("render failed")
	u = NewUsecase(repo, nil, stubExporter{err: broken}, "", nil)
	if _, err := u.Export(context.Background(), 9); !errors.Is(err, broken) {
		t.Fatalf("want render error, got %v", err)
	}
}

func TestUsecase_List(t *testing.T) {
	repo := &submissionmock.Repo{
		ListFn: func(context.Context) ([]domain.Submission, error) {
			return []domain.Submission{{ID: 3}, {ID: 2}, {ID: 1}}, nil
		},
	}
	got, err := NewUsecase(repo, nil, stubExporter{}, "", nil).List(context.Background())
	if err != nil || len(got) != 3 || got[0].ID != 3 {
		t.Fatalf("List = %+v, %v", got, err)
	}
}
