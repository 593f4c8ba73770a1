package mailer

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Catacombb/f9-sub000/internal/config"
)

// Mailer sends the rendered brief summary over SMTP. Delivery is best
// effort: there is no retry and no delivery confirmation beyond the SMTP
// handshake.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.SugaredLogger
}

// New returns nil when SMTP is not configured; callers treat a nil mailer
// as "sending disabled".
func New(cfg *config.Config, log *zap.SugaredLogger) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
		log:    log,
	}
}

func (m *Mailer) SendSummary(to, clientName string, pdfData []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Design brief summary - %s", clientName))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour design brief summary is attached.\n\nRegards,\nThe studio team\n", clientName))
	msg.Attach("design-brief-summary.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(pdfData))
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send summary email: %w", err)
	}
	m.log.Infow("summary email sent", "to", to)
	return nil
}
