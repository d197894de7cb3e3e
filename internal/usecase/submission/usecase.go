package submission

import (
	"context"
	"fmt"
	"strings"

	"equipment-loan/internal/domain/notification"
	domain "equipment-loan/internal/domain/submission"

	"go.uber.org/zap"
)

// Exporter renders a full submission snapshot.
type Exporter interface {
	Export(s *domain.Submission) ([]byte, error)
	ContentType() string
	Extension() string
}

type Usecase struct {
	repo       domain.Repository
	notify     notification.Dispatcher
	exporter   Exporter
	adminEmail string
	log        *zap.Logger
}

func NewUsecase(r domain.Repository, d notification.Dispatcher, e Exporter, adminEmail string, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, notify: d, exporter: e, adminEmail: adminEmail, log: log}
}

// Create stores the request as pending and then tells the administrator.
// The notice is dispatched after the insert and never affects the result.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	s := &domain.Submission{
		Name:           in.Name,
		Phone:          in.Phone,
		Email:          strings.TrimSpace(in.Email),
		GroupName:      in.GroupName,
		EventName:      in.EventName,
		StartDate:      in.StartDate,
		StartTime:      in.StartTime,
		EndDate:        in.EndDate,
		EndTime:        in.EndTime,
		Location:       in.Location,
		EventType:      in.EventType,
		Participants:   in.Participants,
		Equipment:      domain.NewEquipment(in.Equipment),
		SpecialRequest: in.SpecialRequest,
		Donation:       in.Donation,
		DonationMethod: in.DonationMethod,
		Remarks:        in.Remarks,
		EmergencyName:  in.EmergencyName,
		EmergencyPhone: in.EmergencyPhone,
	}
	if err := u.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	u.log.Info("submission created", zap.Uint64("id", s.ID), zap.String("event", s.EventName))

	if u.notify != nil && u.adminEmail != "" {
		u.notify.Dispatch(ctx, notification.NewSubmissionNotice(s, u.adminEmail))
	}
	return &CreateResult{ID: s.ID, Message: Acknowledgement}, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domain.Submission, error) {
	return u.repo.GetByID(ctx, id)
}

// FindByRequesterName returns the newest request filed under name.
func (u *Usecase) FindByRequesterName(ctx context.Context, name string) (*StatusView, error) {
	s, err := u.repo.GetLatestByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return &StatusView{
		Name:          s.Name,
		EventName:     s.EventName,
		ReviewStatus:  string(s.CurrentStatus()),
		ReviewComment: s.ReviewComment,
	}, nil
}

// List is the review queue, newest first.
func (u *Usecase) List(ctx context.Context) ([]domain.Submission, error) {
	return u.repo.List(ctx)
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	n, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	u.log.Info("submission deleted", zap.Uint64("id", id))
	return nil
}

func (u *Usecase) Export(ctx context.Context, id uint64) (*Document, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	body, err := u.exporter.Export(s)
	if err != nil {
		return nil, fmt.Errorf("export submission %d: %w", id, err)
	}
	return &Document{
		Filename:    fmt.Sprintf("submission_%d%s", s.ID, u.exporter.Extension()),
		ContentType: u.exporter.ContentType(),
		Body:        body,
	}, nil
}
