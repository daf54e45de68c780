// Package notifier informs the manager when a new shift is recorded.
// Delivery is best effort; callers run it off the request path and only log
// failures.
package notifier

import (
	"fmt"
	"net"
	"net/smtp"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/config"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/utils"
)

// SMTPNotifier emails the manager about newly recorded shifts.
type SMTPNotifier struct {
	host     string
	port     string
	from     string
	password string
	to       string
}

// NewSMTPNotifier creates a notifier from the SMTP configuration.
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		password: cfg.Password,
		to:       cfg.ManagerEmail,
	}
}

// NotifyNewShift sends one email describing the submitted shift.
func (n *SMTPNotifier) NotifyNewShift(workerName, date, timeIn, timeOut string, carUsed bool) error {
	carUsedText := "No"
	if carUsed {
		carUsedText = "Yes"
	}

	body := fmt.Sprintf(
		"Worker %s has recorded a new shift.\r\nDate: %s\r\nTime in: %s\r\nTime out: %s\r\nCar used: %s\r\n",
		workerName, date, timeIn, timeOut, carUsedText,
	)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: NEW SHIFT RECORDED: %s\r\n\r\n%s",
		n.from, n.to, workerName, body,
	)

	addr := net.JoinHostPort(n.host, n.port)
	auth := smtp.PlainAuth("", n.from, n.password, n.host)
	if err := smtp.SendMail(addr, auth, n.from, []string{n.to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending shift notification to %s: %w", n.to, err)
	}
	return nil
}

// LogNotifier is used when SMTP is not configured: it only writes the
// notification to the log, so shift recording behaves the same everywhere.
type LogNotifier struct{}

// NewLogNotifier creates a notifier that logs instead of sending mail.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// NotifyNewShift logs the shift submission and always succeeds.
func (n *LogNotifier) NotifyNewShift(workerName, date, timeIn, timeOut string, carUsed bool) error {
	utils.LogInfo("New shift recorded", map[string]interface{}{
		"worker":   workerName,
		"date":     date,
		"time_in":  timeIn,
		"time_out": timeOut,
		"car_used": carUsed,
	})
	return nil
}
