// notifier/email_test.go
package notifier

import "github.com/propwatch/violationwatch/config"

func sampleEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		SMTPServer:   "smtp.example.com",
		SMTPPort:     587,
		FromEmail:    "alerts@example.com",
		FromPassword: "secret",
		ToEmails:     []string{"owner@example.com"},
	}
}
