package mailer

import (
	"bytes"
	"errors"
	"testing"

	"exam-prep-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func TestSendWeeklyReport(t *testing.T) {
	capture := &captureSender{}
	svc := newEmailService(capture, "noreply@example.com", "http://localhost:5173", logger.NewNopLogger())

	err := svc.SendWeeklyReport("rafi@example.com", WeeklyReport{
		FullName:       "Rafi",
		Range:          "2024-03-01 to 2024-03-07",
		TotalFormatted: "5h 30m",
		SessionCount:   9,
		CompletedTasks: 4,
		AverageDaily:   47,
		Streak:         3,
		DaysToExam:     120,
	})
	require.NoError(t, err)
	require.Len(t, capture.sent, 1)

	m := capture.sent[0]
	assert.Equal(t, []string{"rafi@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Your Weekly Study Report"}, m.GetHeader("Subject"))

	var raw bytes.Buffer
	_, err = m.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "5h 30m")
	assert.Contains(t, raw.String(), "http://localhost:5173/tracker")
}

func TestSendWeeklyReportDialFailure(t *testing.T) {
	capture := &captureSender{err: errors.New("connection refused")}
	svc := newEmailService(capture, "noreply@example.com", "", logger.NewNopLogger())

	err := svc.SendWeeklyReport("rafi@example.com", WeeklyReport{FullName: "Rafi"})
	assert.EqualError(t, err, "connection refused")
}
