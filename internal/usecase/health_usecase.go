package usecase

import (
	"context"

	"go-agency-backend/config"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]interface{}
}

type healthUsecase struct {
	cfg *config.Config
}

func NewHealthUsecase(cfg *config.Config) HealthUsecase {
	return &healthUsecase{cfg: cfg}
}

// Check reports whether the relay settings the contact pipeline depends on
// are present. Production gets booleans only; development additionally gets
// the non-secret values to ease debugging. Relay config is re-read per call,
// matching the dispatcher's hot-reload behavior.
func (u *healthUsecase) Check(ctx context.Context) map[string]interface{} {
	mail := config.Mail()

	report := map[string]interface{}{
		"status":      "ok",
		"environment": u.cfg.Environment,
		"mail": map[string]bool{
			"smtpUsernameSet": mail.SMTPUsername != "",
			"smtpPasswordSet": mail.SMTPPassword != "",
			"contactToSet":    mail.ContactTo != "",
		},
	}

	if !u.cfg.IsProduction() {
		report["mailDetail"] = map[string]string{
			"smtpHost":  mail.SMTPHost,
			"smtpPort":  mail.SMTPPort,
			"fromEmail": mail.SMTPFromEmail,
			"contactTo": mail.ContactTo,
			"siteUrl":   mail.SiteURL,
		}
	}

	return report
}
