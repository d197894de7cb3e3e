package review

import (
	"context"
	"fmt"
	"strings"

	"equipment-loan/internal/domain/notification"
	"equipment-loan/internal/domain/submission"
	"equipment-loan/internal/domain/uow"

	"go.uber.org/zap"
)

type Usecase struct {
	repo       submission.Repository
	uow        uow.UnitOfWork
	notify     notification.Dispatcher
	sender     notification.Sender
	adminEmail string
	log        *zap.Logger
}

// NewUsecase: notify runs off the request path, sender is used when the
// caller needs the delivery outcome (resend, test email).
func NewUsecase(r submission.Repository, tx uow.UnitOfWork, notify notification.Dispatcher, sender notification.Sender, adminEmail string, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, notify: notify, sender: sender, adminEmail: adminEmail, log: log}
}

// Review sets status and comment together. The requester notice is
// dispatched only after the transaction commits.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*ReviewDTO, error) {
	status, err := submission.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var snap *submission.Submission
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Submissions.UpdateStatus(ctx, in.ID, status, in.Comment)
		if err != nil {
			return err
		}
		if n == 0 {
			return submission.ErrNotFound
		}
		snap, err = r.Submissions.GetByID(ctx, in.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("submission reviewed", zap.Uint64("id", in.ID), zap.String("status", string(status)))

	dto := &ReviewDTO{SubmissionID: snap.ID, Name: snap.Name, Status: string(snap.CurrentStatus())}
	if snap.HasEmail() && u.notify != nil {
		u.notify.Dispatch(ctx, notification.NewReviewNotice(snap))
		dto.Notified = true
	} else {
		u.log.Info("review notice skipped: no email on file", zap.Uint64("id", in.ID))
	}
	return dto, nil
}

// Resend re-reads the stored state and delivers the review notice
// synchronously. It is the one path where delivery failure is returned.
func (u *Usecase) Resend(ctx context.Context, id uint64) (string, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !s.HasEmail() {
		return "", submission.ErrNoEmail
	}
	msg := notification.NewReviewNotice(s)
	if res := u.sender.Send(ctx, msg); !res.Delivered {
		return "", fmt.Errorf("%w: %s", submission.ErrDeliveryFailed, res.Detail)
	}
	return strings.TrimSpace(msg.To), nil
}

// TestEmail sends the connectivity probe; an empty to means the admin recipient.
func (u *Usecase) TestEmail(ctx context.Context, to string) (string, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		to = u.adminEmail
	}
	if to == "" {
		return "", submission.ErrNoEmail
	}
	if res := u.sender.Send(ctx, notification.NewConnectivityProbe(to)); !res.Delivered {
		return "", fmt.Errorf("%w: %s", submission.ErrDeliveryFailed, res.Detail)
	}
	return to, nil
}
