package notify

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	KindVerification    = "verification"
	KindPasswordReset   = "password_reset"
	KindPasswordChanged = "password_changed"
	KindWelcome         = "welcome"
	KindForum           = "forum"
	KindAdminLog        = "admin_log"
	KindTest            = "test"
)

// Kinds lists every email the site can send, in the order the admin test sends them.
var Kinds = []string{KindVerification, KindPasswordReset, KindPasswordChanged, KindWelcome, KindForum, KindAdminLog, KindTest}

// ErrAdminEmailNotConfigured is returned for admin logs when ADMIN_EMAIL is unset.
var ErrAdminEmailNotConfigured = errors.New("admin email not configured")

var pages = map[string]string{
	KindVerification:    "verification.html",
	KindPasswordReset:   "password_reset.html",
	KindPasswordChanged: "password_changed.html",
	KindWelcome:         "welcome.html",
	KindForum:           "forum_notification.html",
	KindAdminLog:        "admin_log.html",
	KindTest:            "test.html",
}

var templates = mustParseTemplates()

func mustParseTemplates() map[string]*template.Template {
	out := make(map[string]*template.Template, len(pages))
	for kind, page := range pages {
		out[kind] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+page))
	}
	return out
}

// Sender renders site emails and hands them to a Mailer synchronously.
type Sender struct {
	mailer     Mailer
	from       string
	adminEmail string
	siteURL    string
	now        func() time.Time
}

func NewSender(mailer Mailer, from, adminEmail, siteURL string) *Sender {
	return &Sender{mailer: mailer, from: from, adminEmail: adminEmail, siteURL: siteURL, now: time.Now}
}

// AdminConfigured reports whether admin logs have a recipient.
func (s *Sender) AdminConfigured() bool {
	return s.adminEmail != ""
}

func (s *Sender) SendVerificationEmail(to, username, code string) error {
	return s.send(KindVerification, to, "✨ Verify Your Email - Nazzel & Avionna", "💕 Welcome to Our Love Story 💕", map[string]any{
		"Username": username,
		"Code":     code,
	})
}

func (s *Sender) SendPasswordResetEmail(to, username, code string) error {
	return s.send(KindPasswordReset, to, "🔐 Reset Your Password - Nazzel & Avionna", "🔐 Password Reset", map[string]any{
		"Username": username,
		"Code":     code,
	})
}

func (s *Sender) SendPasswordChangedEmail(to, username string) error {
	return s.send(KindPasswordChanged, to, "🔒 Your Password Has Been Changed - Nazzel & Avionna", "🔒 Password Changed", map[string]any{
		"Username": username,
	})
}

func (s *Sender) SendWelcomeEmail(to, username string) error {
	return s.send(KindWelcome, to, "🎉 Welcome to Our Community!", "🎉 Congratulations!", map[string]any{
		"Username": username,
	})
}

func (s *Sender) SendForumNotificationEmail(to, username, postTitle, kind string) error {
	return s.send(KindForum, to, "🔔 New Activity in Forum - "+postTitle, "🔔 Forum Activity", map[string]any{
		"Username":  username,
		"PostTitle": postTitle,
		"Kind":      kind,
	})
}

// SendAdminLog mails a plain-text audit entry to ADMIN_EMAIL.
func (s *Sender) SendAdminLog(subject, message string) error {
	if !s.AdminConfigured() {
		return ErrAdminEmailNotConfigured
	}
	return s.send(KindAdminLog, s.adminEmail, "[Admin Log] "+subject, "📋 Admin Log", map[string]any{
		"Subject": subject,
		"Message": message,
		"Time":    s.now().UTC().Format(time.RFC1123),
	})
}

func (s *Sender) SendTestEmail(to string) error {
	return s.send(KindTest, to, "🧪 Test Email - Nazzel & Avionna", "🧪 Test Email", nil)
}

// SendSample sends one email of the given kind to "to" with placeholder data.
// Admin logs always go to ADMIN_EMAIL.
func (s *Sender) SendSample(kind, to string) error {
	switch kind {
	case KindVerification:
		return s.SendVerificationEmail(to, "Test User", "123456")
	case KindPasswordReset:
		return s.SendPasswordResetEmail(to, "Test User", "654321")
	case KindPasswordChanged:
		return s.SendPasswordChangedEmail(to, "Test User")
	case KindWelcome:
		return s.SendWelcomeEmail(to, "Test User")
	case KindForum:
		return s.SendForumNotificationEmail(to, "Test User", "Test Post", "New Reply")
	case KindAdminLog:
		return s.SendAdminLog("Test admin log", "Email system test requested for "+to+".")
	case KindTest:
		return s.SendTestEmail(to)
	default:
		return fmt.Errorf("unknown email type %q", kind)
	}
}

func (s *Sender) send(kind, to, subject, heading string, data map[string]any) error {
	body, err := s.render(kind, subject, heading, data)
	if err != nil {
		return fmt.Errorf("failed to render %s email: %w", kind, err)
	}
	if err := s.mailer.Send(to, subject, body); err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}
	return nil
}

func (s *Sender) render(kind, title, heading string, data map[string]any) (string, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("no template for %q", kind)
	}
	view := map[string]any{
		"Title":   title,
		"Heading": heading,
		"From":    s.from,
		"SiteURL": s.siteURL,
	}
	for k, v := range data {
		view[k] = v
	}
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "layout", view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
