// notifier/email.go
package notifier

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/propwatch/violationwatch/config"
	"github.com/propwatch/violationwatch/models"
)

// EmailNotifier delivers the rendered report over SMTP (STARTTLS).
type EmailNotifier struct {
	cfg config.EmailConfig
}

func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// SendReport renders and emails the report. A report with no new records in
// any section is not sent at all. Errors are returned for the caller to log;
// they never affect tracking state.
func (n *EmailNotifier) SendReport(report *models.Report) error {
	if report.TotalNew() == 0 {
		log.Println("Notifier: no new violations to report")
		return nil
	}
	if !n.cfg.Configured() {
		log.Println("Notifier: no recipients configured, skipping delivery")
		return nil
	}

	body, err := RenderReport(report)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("NYC Property Violations - Block %s, Lot %s",
		report.Subject.Block, report.Subject.Lot)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", n.cfg.FromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(n.cfg.ToEmails, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPServer, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.FromEmail, n.cfg.FromPassword, n.cfg.SMTPServer)

	if err := smtp.SendMail(addr, auth, n.cfg.FromEmail, n.cfg.ToEmails, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send report via %s: %w", addr, err)
	}

	log.Printf("Notifier: report sent to %d recipients\n", len(n.cfg.ToEmails))
	return nil
}

// NoopNotifier satisfies the notifier contract without delivering anything.
// Used by check --no-email.
type NoopNotifier struct{}

func (NoopNotifier) SendReport(report *models.Report) error {
	log.Printf("Notifier: delivery suppressed (%d new violations)\n", report.TotalNew())
	return nil
}
