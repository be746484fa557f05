package fulfillment

import (
	"fmt"
	"net/smtp"

	extErrors "github.com/pkg/errors"
)

// MailerOptions provides initialization parameters for Mailer
type MailerOptions struct {
	SMTPAuth smtp.Auth
	From     string
	Hostname string

	SiteName  string
	AccessURL string
}

// Mailer delivers the course access email promised on the success page
type Mailer struct {
	MailerOptions
}

// NewMailer will return a new instance of Mailer for access delivery
func NewMailer(option MailerOptions) (*Mailer, error) {
	if option.SMTPAuth == nil {
		return nil, fmt.Errorf("nil SMTPAuth is invalid")
	}
	if option.From == "" {
		return nil, fmt.Errorf("Empty From is invalid")
	}
	if option.Hostname == "" {
		return nil, fmt.Errorf("Empty Hostname is invalid")
	}
	if option.SiteName == "" {
		return nil, fmt.Errorf("Empty SiteName is invalid")
	}
	if option.AccessURL == "" {
		return nil, fmt.Errorf("Empty AccessURL is invalid")
	}
	return &Mailer{
		MailerOptions: option,
	}, nil
}

// SendAccess will email the course access link to the buyer
func (m *Mailer) SendAccess(e *CustomerSaved) error {
	msg := m.composeAccess(e)
	if err := smtp.SendMail(m.Hostname, m.SMTPAuth, m.From, []string{e.Email}, msg); err != nil {
		return extErrors.Wrap(err, "Cannot send access email")
	}
	return nil
}

func (m *Mailer) composeAccess(e *CustomerSaved) []byte {
	subject := "Your course access for " + m.SiteName
	body := "Hi " + e.Name + ",\r\n\r\n" +
		"Thank you for your purchase! Your course is ready:\r\n\r\n" +
		m.AccessURL + "\r\n\r\n" +
		"Keep this email - the link above is your way back into the course.\r\n\r\n" +
		"- " + m.SiteName
	return []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.From, e.Email, subject, body))
}
