package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"exam-prep-be/internal/config"
	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/events"
	"exam-prep-be/internal/pkg/logger"
	"exam-prep-be/internal/pkg/mailer"
	"exam-prep-be/internal/pkg/testdb"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"
	pkgEvents "exam-prep-be/pkg/events"
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// recordingBus captures every event published through events.BusPublisher.
type recordingBus struct {
	mu     sync.Mutex
	events []pkgEvents.Event
}

func (b *recordingBus) Publish(_ context.Context, e pkgEvents.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
	return nil
}

func (b *recordingBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.EventType())
	}
	return out
}

type sentMessage struct {
	userID  uuid.UUID
	msgType string
	data    interface{}
}

type captureNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *captureNotifier) Send(userID uuid.UUID, msgType string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{userID, msgType, data})
}

func (n *captureNotifier) ofType(msgType string) []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentMessage
	for _, m := range n.sent {
		if m.msgType == msgType {
			out = append(out, m)
		}
	}
	return out
}

type captureMailer struct {
	to      string
	reports []mailer.WeeklyReport
}

func (m *captureMailer) SendWeeklyReport(toEmail string, report mailer.WeeklyReport) error {
	m.to = toEmail
	m.reports = append(m.reports, report)
	return nil
}

// fixedClock pins "now" to noon UTC of the given day.
func fixedClock(d stats.Day) Clock {
	noon := d.Time().Add(12 * time.Hour)
	return Clock{Now: func() time.Time { return noon }, Location: time.UTC}
}

type fixture struct {
	factory unitofwork.RepositoryFactory
	bus     *recordingBus
	events  events.Publisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := &recordingBus{}
	return &fixture{
		factory: unitofwork.NewRepositoryFactory(testdb.New(t)),
		bus:     bus,
		events:  events.NewBusPublisher(bus, logger.NewNopLogger()),
	}
}

// register creates an account with the default subjects and returns its id.
func (f *fixture) register(t *testing.T, email string) uuid.UUID {
	t.Helper()
	auth := NewAuthService(f.factory, f.events, testSecret, logger.NewNopLogger())
	res, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email: email, Password: "secret1", FullName: "Student",
	})
	require.NoError(t, err)
	return res.User.Id
}

func (f *fixture) subjectNamed(t *testing.T, userId uuid.UUID, name string) *entity.Subject {
	t.Helper()
	subjects, err := NewSubjectService(f.factory, f.events).ListSubjects(context.Background(), userId)
	require.NoError(t, err)
	for _, s := range subjects {
		if s.Name == name {
			uow := f.factory.NewUnitOfWork(context.Background())
			found, err := uow.SubjectRepository().FindOne(context.Background(), specification.ByID{ID: s.Id})
			require.NoError(t, err)
			return found
		}
	}
	t.Fatalf("subject %q not found", name)
	return nil
}

func oauthConfigForTest() config.OAuthConfig {
	return config.OAuthConfig{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:3000/api/auth/google/callback",
	}
}
