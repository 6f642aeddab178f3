// Package mail delivers contact-form notifications to the operator inbox
// through an external SMTP relay.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"

	jwemail "github.com/jordan-wright/email"

	"go-agency-backend/config"
	"go-agency-backend/internal/domain"
	"go-agency-backend/pkg/logger"
)

// notificationTemplate renders the operator-facing message. html/template
// escapes every interpolated field, which is the injection defense for
// user-supplied content landing in a mail client.
const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1a1a2e; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .details-box { background: white; padding: 15px; border-left: 4px solid #1a1a2e; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Form Submission</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Name:</div>
                <div class="value">{{.Name}}</div>
            </div>
            <div class="field">
                <div class="label">Email:</div>
                <div class="value">{{.Email}}</div>
            </div>
            {{if .Phone}}<div class="field">
                <div class="label">Phone:</div>
                <div class="value">{{.Phone}}</div>
            </div>{{end}}
            {{if .ProjectDetails}}<div class="field">
                <div class="label">Project Details:</div>
                <div class="details-box">{{.ProjectDetails}}</div>
            </div>{{end}}
        </div>
        <div class="footer">
            <p>Sent from the contact form at {{.SiteURL}}</p>
            <p>Reply to this email to respond to {{.Name}} directly.</p>
        </div>
    </div>
</body>
</html>`

var bodyTmpl = template.Must(template.New("notification").Parse(notificationTemplate))

// sendEmail performs the relay round-trip. A package variable so tests can
// stub the SMTP hop.
var sendEmail = func(e *jwemail.Email, addr string, auth smtp.Auth) error {
	return e.Send(addr, auth)
}

// Service is the contact-form email dispatcher. It holds no relay state:
// configuration is read from the environment on every send and each send
// opens its own one-shot SMTP connection. Appropriate for low volume, not
// for batch sending.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

type templateData struct {
	Name           string
	Email          string
	Phone          string
	ProjectDetails string
	SiteURL        string
}

// SendNotification composes and sends the operator notification for one
// validated submission. The outcome is typed; the relay error itself is
// logged here and never returned to callers.
func (s *Service) SendNotification(ctx context.Context, req *domain.ContactRequest) domain.DispatchOutcome {
	cfg := config.Mail()
	if !cfg.IsConfigured() {
		logger.Log.Error("mail relay not configured",
			"smtp_username_set", cfg.SMTPUsername != "",
			"smtp_password_set", cfg.SMTPPassword != "",
			"contact_to_set", cfg.ContactTo != "")
		return domain.OutcomeConfigMissing
	}

	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, templateData{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		ProjectDetails: req.ProjectDetails,
		SiteURL:        cfg.SiteURL,
	}); err != nil {
		logger.Log.Error("mail template execution failed", "error", err)
		return domain.OutcomeTransportFailure
	}

	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}

	e := jwemail.NewEmail()
	e.From = from
	e.To = []string{cfg.ContactTo}
	e.ReplyTo = []string{fmt.Sprintf("%s <%s>", req.Name, req.Email)}
	e.Subject = fmt.Sprintf("New Contact Form Submission from %s", req.Name)
	e.HTML = body.Bytes()

	addr := net.JoinHostPort(cfg.SMTPHost, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)

	if err := sendEmail(e, addr, auth); err != nil {
		if isAuthError(err) {
			logger.Log.Error("mail relay rejected credentials", "error", err)
			return domain.OutcomeConfigMissing
		}
		logger.Log.Error("mail send failed", "error", err)
		return domain.OutcomeTransportFailure
	}

	return domain.OutcomeSent
}

// isAuthError sniffs the relay error text for credential failures. SMTP gives
// no structured error class, so the 535 reply code and the words the common
// relays use are the best signal available.
func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "authentication") ||
		strings.Contains(msg, "password") ||
		strings.Contains(msg, "535")
}
