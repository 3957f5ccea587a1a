package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_EmailDefaults(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("FROM_EMAIL", "")

	cfg := Load()

	assert.Equal(t, "", cfg.Email.SMTPHost)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, "noreply@cinebook.app", cfg.Email.FromEmail)
}

func TestLoad_EmailFromEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USERNAME", "mailer")
	t.Setenv("SMTP_PASSWORD", "s3cret")
	t.Setenv("FROM_EMAIL", "tickets@example.com")

	cfg := Load()

	assert.Equal(t, "smtp.example.com", cfg.Email.SMTPHost)
	assert.Equal(t, 2525, cfg.Email.SMTPPort)
	assert.Equal(t, "mailer", cfg.Email.SMTPUsername)
	assert.Equal(t, "s3cret", cfg.Email.SMTPPassword)
	assert.Equal(t, "tickets@example.com", cfg.Email.FromEmail)
}
