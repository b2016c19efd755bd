package service

import (
	"fleet-management-backend/internal/logger"
)

// LogMailer is the default MailerInterface implementation. It writes the
// notification to the structured log instead of sending mail, which is
// what development and test environments want.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer creates a new log-backed mailer
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// SendPasswordReset logs the reset token for the named user
func (m *LogMailer) SendPasswordReset(username, resetToken string) error {
	m.log.WithFields(map[string]interface{}{
		"username": username,
		"token":    resetToken,
	}).Info("password reset requested")
	return nil
}
