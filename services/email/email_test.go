package emailsvc

import (
	"encoding/json"
	"errors"
	"net/mail"
	"sync"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-timetable/core"
)

type loggerMock struct {
	mu     sync.Mutex
	errors []string
}

func (l *loggerMock) Debug(string, ...interface{}) {}
func (l *loggerMock) Info(string, ...interface{})  {}
func (l *loggerMock) Warn(string, ...interface{})  {}
func (l *loggerMock) Fatal(string, ...interface{}) {}
func (l *loggerMock) Error(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *loggerMock) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

var conf = &core.Config{
	AppName:          "Masomo",
	SendgridApiKey:   "SG.key",
	DefaultFromEmail: mail.Address{Name: "Masomo", Address: "noreply@masomo.test"},
}

func newMessage() *core.EmailMessage {
	return &core.EmailMessage{
		To:      []mail.Address{{Name: "Alice", Address: "alice@example.com"}},
		Subject: "Assignments to hand in",
		BodyStr: "Hello Alice,\nhand in your essay.",
	}
}

func TestConsoleServiceMock(t *testing.T) {
	svc := NewConsoleServiceMock(&loggerMock{}, conf)

	svc.SendMessages(newMessage(), &core.EmailMessage{Subject: "no recipients", BodyStr: "x"})
	sent := svc.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Hello Alice,\nhand in your essay.", sent[0].TextContent)
}

func TestConsoleService_Format(t *testing.T) {
	svc := newConsoleService(nil, &loggerMock{}, conf)
	msg := newMessage()
	require.NoError(t, msg.Render())

	date := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "From: \"Masomo\" <noreply@masomo.test>\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Date: Mon, 04 Mar 2024 10:00:00 +0000\r\n"+
		"Subject: [Masomo] Assignments to hand in\r\n"+
		"To: \"Alice\" <alice@example.com>\r\n"+
		"Content-Type: text/plain; charset=utf-8\r\n"+
		"\r\n"+
		"Hello Alice,\r\nhand in your essay.", svc.Format(*msg, date))
}

func TestSendgridService_Send(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []rest.Request
	)
	origAPI := sendgridAPI
	t.Cleanup(func() { sendgridAPI = origAPI })

	status := 202
	sendgridAPI = func(req rest.Request) (*rest.Response, error) {
		mu.Lock()
		defer mu.Unlock()
		requests = append(requests, req)
		if status == 0 {
			return nil, errors.New("network down")
		}
		return &rest.Response{StatusCode: status, Body: "{}"}, nil
	}

	logger := &loggerMock{}
	svc := newSendgridService(logger, conf)

	svc.sendMessage(newMessage())
	require.Len(t, requests, 1)
	assert.Equal(t, rest.Post, requests[0].Method)
	assert.Equal(t, "https://api.sendgrid.com/v3/mail/send", requests[0].BaseURL)
	assert.Equal(t, "Bearer SG.key", requests[0].Headers["Authorization"])

	var body struct {
		From             struct{ Email string }
		Personalizations []struct {
			To      []struct{ Name, Email string }
			Subject string
		}
		Content []struct{ Type, Value string }
	}
	require.NoError(t, json.Unmarshal(requests[0].Body, &body))
	assert.Equal(t, "noreply@masomo.test", body.From.Email)
	require.Len(t, body.Personalizations, 1)
	assert.Equal(t, "[Masomo] Assignments to hand in", body.Personalizations[0].Subject)
	assert.Equal(t, "alice@example.com", body.Personalizations[0].To[0].Email)
	assert.Equal(t, "text/plain", body.Content[0].Type)
	assert.Zero(t, logger.count())

	// failures are logged
	status = 400
	svc.sendMessage(newMessage())
	status = 0
	svc.sendMessage(newMessage())
	assert.Equal(t, 2, logger.count())

	// nothing to send
	svc.sendMessage(&core.EmailMessage{Subject: "empty", To: newMessage().To})
	assert.Len(t, requests, 3)

	// async
	svc.SendMessages(newMessage())
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(requests) == 4
	}, time.Second, 10*time.Millisecond)
}
