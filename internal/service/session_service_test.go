package service

import (
	"context"
	"testing"
	"time"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/events"
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSession(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "rafi@example.com")
	english := f.subjectNamed(t, userId, "English")
	svc := NewSessionService(f.factory, f.events, fixedClock(stats.NewDay(2024, time.April, 10)))
	ctx := context.Background()

	res, err := svc.RecordSession(ctx, userId, &dto.RecordSessionRequest{SubjectId: english.Id.String(), Duration: 95})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-10", res.Date)
	assert.Equal(t, "1h 35m", res.Formatted)

	_, err = svc.RecordSession(ctx, userId, &dto.RecordSessionRequest{SubjectId: english.Id.String(), Duration: 20, Date: "2024-04-12"})
	require.NoError(t, err)

	list, err := svc.ListSessions(ctx, userId)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-04-12", list[0].Date)
	assert.Equal(t, "English", list[1].SubjectName)

	assert.Equal(t, []string{events.UserRegistered, events.SessionRecorded, events.SessionRecorded}, f.bus.types())

	var notFound *dto.NotFoundError
	_, err = svc.RecordSession(ctx, userId, &dto.RecordSessionRequest{SubjectId: uuid.NewString(), Duration: 10})
	assert.ErrorAs(t, err, &notFound)

	var verr *dto.ValidationError
	_, err = svc.RecordSession(ctx, userId, &dto.RecordSessionRequest{SubjectId: english.Id.String(), Duration: -5})
	assert.ErrorAs(t, err, &verr)
}
