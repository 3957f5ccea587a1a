package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strconv"
	"time"
)

// EmailService interface for sending emails
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config    *SMTPConfig
	templates map[NotificationType]*template.Template
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, err
	}

	service := &SMTPEmailService{
		config:    config,
		templates: make(map[NotificationType]*template.Template),
	}
	service.loadTicketTemplates()

	return service, nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}
	if config.FromEmail == "" {
		return fmt.Errorf("From email is required")
	}
	return nil
}

// loadTicketTemplates installs the confirmation and cancellation templates.
// Each template has an "html" and a "text" variant rendered from the same
// ticket snapshot.
func (s *SMTPEmailService) loadTicketTemplates() {
	confirmation := template.Must(template.New("ticket_confirmed").Parse(`
{{define "html"}}
<h2>Your ticket is confirmed!</h2>
<p>Hi {{.RecipientName}},</p>
<p>Here are your booking details:</p>
<ul>
  <li>Movie: <strong>{{.Ticket.MovieName}}</strong></li>
  <li>Date: {{.Ticket.Date.Format "02 Jan 2006"}}</li>
  <li>Time: {{.Ticket.SlotHour}}:00</li>
  <li>Seats: {{.Ticket.SeatsBooked}}</li>
  <li>Auditorium: {{.Ticket.AuditoriumName}}, {{.Ticket.TheatreName}}</li>
</ul>
<p>Enjoy the show!<br>Cinebook Team</p>
{{end}}
{{define "text"}}Hi {{.RecipientName}},

Your booking is confirmed.

Movie: {{.Ticket.MovieName}}
Date: {{.Ticket.Date.Format "02 Jan 2006"}}
Time: {{.Ticket.SlotHour}}:00
Seats: {{.Ticket.SeatsBooked}}
Auditorium: {{.Ticket.AuditoriumName}}, {{.Ticket.TheatreName}}

Enjoy the show!
Cinebook Team
{{end}}`))

	cancellation := template.Must(template.New("ticket_cancelled").Parse(`
{{define "html"}}
<h2>Your ticket has been cancelled</h2>
<p>Hi {{.RecipientName}},</p>
{{if .Ticket}}
<p>The following booking was cancelled:</p>
<ul>
  <li>Movie: <strong>{{.Ticket.MovieName}}</strong></li>
  <li>Date: {{.Ticket.Date.Format "02 Jan 2006"}}</li>
  <li>Time: {{.Ticket.SlotHour}}:00</li>
  <li>Seats: {{.Ticket.SeatsBooked}}</li>
  <li>Auditorium: {{.Ticket.AuditoriumName}}, {{.Ticket.TheatreName}}</li>
</ul>
{{else}}
<p>One or more of your bookings were cancelled because the auditorium's
schedule changed. We are sorry for the inconvenience.</p>
{{end}}
<p>Cinebook Team</p>
{{end}}
{{define "text"}}Hi {{.RecipientName}},

{{if .Ticket}}The following booking was cancelled:

Movie: {{.Ticket.MovieName}}
Date: {{.Ticket.Date.Format "02 Jan 2006"}}
Time: {{.Ticket.SlotHour}}:00
Seats: {{.Ticket.SeatsBooked}}
Auditorium: {{.Ticket.AuditoriumName}}, {{.Ticket.TheatreName}}
{{else}}One or more of your bookings were cancelled because the auditorium's schedule changed. We are sorry for the inconvenience.
{{end}}
Cinebook Team
{{end}}`))

	s.templates[NotificationTypeTicketConfirmed] = confirmation
	s.templates[NotificationTypeTicketCancelled] = cancellation
}

// SendNotification renders the notification's template and mails it
func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [SMTP] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)

	tmpl, ok := s.templates[notification.Type]
	if !ok {
		return fmt.Errorf("no template for notification type %s", notification.Type)
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&htmlBuf, "html", notification); err != nil {
		return fmt.Errorf("failed to execute HTML template: %w", err)
	}
	if err := tmpl.ExecuteTemplate(&textBuf, "text", notification); err != nil {
		textBuf.Reset()
		textBuf.WriteString("Please view this email in HTML format.")
	}

	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBuf.String(), textBuf.String())
}

// SendHTML sends an HTML email with a plain-text alternative part
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 [SMTP] Email sent successfully to %s", to)
	return nil
}

// sendWithSTARTTLS sends email with STARTTLS encryption (recommended for Gmail)
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

// buildMessage creates the email message with proper headers
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}
