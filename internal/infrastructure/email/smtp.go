package email

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/orris-inc/docforge/internal/shared/config"
	"github.com/orris-inc/docforge/internal/shared/constants"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

var ErrEmailServiceNotConfigured = errors.New("email service not configured")

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPConfigFrom maps the email configuration section.
func SMTPConfigFrom(cfg *config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	}
}

type SMTPEmailService struct {
	config SMTPConfig
	send   func(m *gomail.Message) error
	logger logger.Interface
}

func NewSMTPEmailService(config SMTPConfig, logger logger.Interface) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		send:   func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		logger: logger,
	}
}

// SendAttachment mails data as an attachment named filename to every
// recipient in one message.
func (s *SMTPEmailService) SendAttachment(to []string, subject, body, filename string, data []byte) error {
	m := s.newMessage(to, subject, body)
	m.Attach(filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {contentTypeFor(filename)}}),
	)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("email with attachment sent", "recipients", len(to), "filename", filename, "size", len(data))
	return nil
}

// SendTestEmail checks the SMTP settings.
func (s *SMTPEmailService) SendTestEmail(to string) error {
	m := s.newMessage([]string{to}, "docforge test email", "SMTP settings are working.")
	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPEmailService) newMessage(to []string, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", "<html><body><p>"+strings.ReplaceAll(html.EscapeString(body), "\n", "<br>")+"</p></body></html>")
	return m
}

func contentTypeFor(filename string) string {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return constants.ContentTypePDF
	}
	return "application/octet-stream"
}

// unconfiguredMailer is used when no SMTP host is set.
type unconfiguredMailer struct {
	logger logger.Interface
}

func (u unconfiguredMailer) SendAttachment(to []string, _, _, filename string, _ []byte) error {
	u.logger.Warnw("email service not configured, cannot send attachment", "recipients", len(to), "filename", filename)
	return ErrEmailServiceNotConfigured
}

// Mailer sends artifacts by email.
type Mailer interface {
	SendAttachment(to []string, subject, body, filename string, data []byte) error
}

// NewMailer returns an SMTP mailer, or one that always fails with
// ErrEmailServiceNotConfigured when smtp_host is empty.
func NewMailer(cfg *config.EmailConfig, log logger.Interface) Mailer {
	log = log.With("component", "email")
	if cfg.SMTPHost == "" {
		log.Debugw("email service not configured, smtp_host is empty")
		return unconfiguredMailer{logger: log}
	}

	smtpCfg := SMTPConfigFrom(cfg)
	log.Infow("email service initialized", "host", smtpCfg.Host, "port", smtpCfg.Port, "from", smtpCfg.FromAddress)
	return NewSMTPEmailService(smtpCfg, log)
}
