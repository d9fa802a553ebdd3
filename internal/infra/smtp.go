package infra

import (
	"fmt"
	"net/smtp"

	"github.com/29jbarrera/FaktuFlow-back/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends the account-lifecycle emails over SMTP. Sends are synchronous
// and on the caller's critical path — a failed send fails the operation.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendVerificationEmail delivers the 6-digit registration code.
func (m *Mailer) SendVerificationEmail(to, code string) error {
	html := fmt.Sprintf(`
      <h1>Verificación de Email</h1>
      <p>¡Gracias por registrarte! Por favor, usa el siguiente código para verificar tu cuenta:</p>
      <h2>%s</h2>
      <p>Si no solicitaste este correo, ignóralo.</p>`, code)
	return m.send(to, "Código de Verificación", html)
}

// SendResetPasswordEmail delivers the single-use password-reset link.
func (m *Mailer) SendResetPasswordEmail(to, link string) error {
	html := fmt.Sprintf(`
      <h1>Restablecer contraseña</h1>
      <p>Haz clic en el siguiente enlace para restablecer tu contraseña. El enlace caduca en 1 hora:</p>
      <p><a href="%s">%s</a></p>
      <p>Si no solicitaste este correo, ignóralo.</p>`, link, link)
	return m.send(to, "Restablecer contraseña", html)
}

func (m *Mailer) send(to, subject, html string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(html)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send to %q: %w", to, err)
	}
	return nil
}
