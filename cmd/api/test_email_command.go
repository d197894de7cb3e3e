package main

import (
	"fmt"

	"equipment-loan/internal/adapter/mail"
	ucReview "equipment-loan/internal/usecase/review"

	"github.com/spf13/cobra"
)

func newTestEmailCommand(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Send a test email through the configured SMTP transports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Mail.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			sender := mail.NewSender(a.cfg.Mail, a.log.Named("mail"))
			uc := ucReview.NewUsecase(nil, nil, nil, sender, a.cfg.Mail.AdminEmail, a.log)

			sent, err := uc.TestEmail(cmd.Context(), to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Test email sent to %s\n", sent)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Recipient (defaults to MAIL_ADMIN_EMAIL)")
	return cmd
}
