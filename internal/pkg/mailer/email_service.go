package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"exam-prep-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type WeeklyReport struct {
	FullName       string
	Range          string
	TotalFormatted string
	SessionCount   int
	CompletedTasks int
	AverageDaily   int
	Streak         int
	DaysToExam     int
}

type IEmailService interface {
	SendWeeklyReport(toEmail string, report WeeklyReport) error
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      sender
	senderEmail string
	clientURL   string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string, log logger.ILogger) IEmailService {
	return newEmailService(gomail.NewDialer(host, port, username, password), senderEmail, clientURL, log)
}

func newEmailService(d sender, senderEmail, clientURL string, log logger.ILogger) *emailService {
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		clientURL:   clientURL,
		logger:      log,
	}
}

var weeklyReportTmpl = template.Must(template.New("weekly").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
	<h2>Your study week, {{.FullName}}</h2>
	<p>{{.Range}}</p>
	<ul>
		<li>Total study time: <b>{{.TotalFormatted}}</b> over {{.SessionCount}} sessions</li>
		<li>Tasks completed: <b>{{.CompletedTasks}}</b></li>
		<li>Daily average: <b>{{.AverageDaily}} min</b></li>
		<li>Current streak: <b>{{.Streak}} days</b></li>
	</ul>
	<p>{{.DaysToExam}} days left until the exam.</p>
	<a href="{{.Link}}" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open tracker</a>
</div>
`))

func (s *emailService) buildWeeklyReport(toEmail string, report WeeklyReport) (*gomail.Message, error) {
	var body strings.Builder
	err := weeklyReportTmpl.Execute(&body, struct {
		WeeklyReport
		Link string
	}{report, s.clientURL + "/tracker"})
	if err != nil {
		return nil, fmt.Errorf("render weekly report: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Weekly Study Report")
	m.SetBody("text/html", body.String())
	return m, nil
}

func (s *emailService) SendWeeklyReport(toEmail string, report WeeklyReport) error {
	m, err := s.buildWeeklyReport(toEmail, report)
	if err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send weekly report", map[string]interface{}{"to": toEmail, "error": err.Error()})
		return err
	}

	s.logger.Info("MAILER", "Weekly report sent", map[string]interface{}{"to": toEmail})
	return nil
}
