package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetMessage(t *testing.T) {
	msg := PasswordReset("jane@example.com", "Jane", "http://localhost:5173/reset-password/abc123")

	assert.Equal(t, "Password Reset Request", msg.Subject)
	assert.Contains(t, msg.HTML, "Hello Jane,")
	assert.Contains(t, msg.HTML, `href="http://localhost:5173/reset-password/abc123"`)
	assert.Contains(t, msg.HTML, "expire in 1 hour")
}

func TestSMTPSenderSend(t *testing.T) {
	sender, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Username: "u", Password: "p", From: "no-reply@example.com"})
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody []byte
	sender.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, msg
		return nil
	}

	require.NoError(t, sender.Send(context.Background(), Message{To: "jane@example.com", Subject: "Hi", HTML: "<p>x</p>"}))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@example.com", gotFrom)
	assert.Equal(t, []string{"jane@example.com"}, gotTo)
	assert.Contains(t, string(gotBody), "Subject: Hi\r\n")
	assert.Contains(t, string(gotBody), "Content-Type: text/html")
}

func TestSMTPSenderErrors(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{From: "x@example.com"})
	assert.Error(t, err)

	sender, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", From: "x@example.com"})
	require.NoError(t, err)
	sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay refused") }
	err = sender.Send(context.Background(), Message{To: "jane@example.com"})
	assert.ErrorContains(t, err, "relay refused")
	assert.Error(t, sender.Send(context.Background(), Message{}))
}

func TestLogSenderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, LogSender{}.Send(ctx, Message{To: "a@b.c"}), context.Canceled)
	assert.NoError(t, LogSender{}.Send(context.Background(), Message{To: "a@b.c"}))
}
