package services

import (
	"fmt"
	"log"
	"time"

	"infrapulse-api/internal/config"

	"gopkg.in/gomail.v2"
)

// MailerService sends emails over SMTP using gomail. When SMTP is not
// configured it stays disabled and every send becomes a logged no-op,
// so development environments work without a mail account.
type MailerService struct {
	cfg     config.SMTPConfig
	appName string
	enabled bool
}

// NewMailerService creates a new mailer service
func NewMailerService(cfg config.SMTPConfig) *MailerService {
	enabled := cfg.Host != "" && cfg.User != ""
	if !enabled {
		log.Println("⚠️ SMTP not configured, outbound email disabled")
	}
	return &MailerService{
		cfg:     cfg,
		appName: "Infrapulse",
		enabled: enabled,
	}
}

// IsEnabled checks if email sending is enabled
func (s *MailerService) IsEnabled() bool {
	return s.enabled
}

// SendVerification sends the email verification link
func (s *MailerService) SendVerification(to, verificationLink string) error {
	subject := fmt.Sprintf("【%s】Email Verification Required", s.appName)
	body := fmt.Sprintf(`<div style="font-family: sans-serif; padding: 16px;">
<p>Hello,</p>
<p>You recently requested to change your login credentials for your %s account.</p>
<p>Please verify your email by clicking the link below:</p>
<p><a href="%s" style="color: #1d4ed8; font-weight: bold;">Verify My Email</a></p>
<p>This link will expire in <strong>15 minutes</strong>.</p>
<p>If you did not make this request, please ignore this email.</p>
<hr />
<small>© %d %s</small>
</div>`, s.appName, verificationLink, time.Now().Year(), s.appName)

	return s.send(to, subject, body)
}

// SendCredentials sends the post-verification credentials email
func (s *MailerService) SendCredentials(to, loginID string) error {
	subject := fmt.Sprintf("【%s】Your Login Credentials", s.appName)
	body := fmt.Sprintf(`<div style="font-family: sans-serif; padding: 16px;">
<p>Hello,</p>
<p>Your email has been successfully verified. You can now log in with the following credentials:</p>
<ul>
<li><strong>Login ID:</strong> %s</li>
<li><strong>Password:</strong> the new password set by your administrator</li>
</ul>
<p>For security, we recommend changing your password after first login.</p>
<hr />
<small>© %d %s</small>
</div>`, loginID, time.Now().Year(), s.appName)

	return s.send(to, subject, body)
}

// SendInspectionReminder sends a maintenance inspection reminder
func (s *MailerService) SendInspectionReminder(to, matterName, milestone string) error {
	subject := fmt.Sprintf("【%s】Maintenance Inspection Reminder", s.appName)
	body := fmt.Sprintf(`<div style="font-family: sans-serif; padding: 16px;">
<p>Hello,</p>
<p>The <strong>%s</strong> maintenance inspection for <strong>%s</strong> is coming up.</p>
<p>Your construction company will contact you to schedule a visit.</p>
<hr />
<small>© %d %s</small>
</div>`, milestone, matterName, time.Now().Year(), s.appName)

	return s.send(to, subject, body)
}

func (s *MailerService) send(to, subject, htmlBody string) error {
	if !s.enabled {
		log.Printf("📭 Email disabled, skipped send to %s (%s)", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.appName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	log.Printf("📧 Email sent to %s (%s)", to, subject)
	return nil
}
