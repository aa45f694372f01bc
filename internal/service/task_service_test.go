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

func TestTaskLifecycle(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "rafi@example.com")
	math := f.subjectNamed(t, userId, "Higher Math")
	today := stats.NewDay(2024, time.March, 5)
	svc := NewTaskService(f.factory, f.events, fixedClock(today))
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, userId, &dto.CreateTaskRequest{SubjectId: math.Id.String(), Description: "Integration drills"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", task.Date)

	_, err = svc.CreateTask(ctx, userId, &dto.CreateTaskRequest{SubjectId: math.Id.String(), Description: "Matrices", Date: "2024-03-06"})
	require.NoError(t, err)

	todays, err := svc.ListTasks(ctx, userId, "")
	require.NoError(t, err)
	require.Len(t, todays, 1)
	assert.Equal(t, "Integration drills", todays[0].Description)

	tomorrow, err := svc.ListTasks(ctx, userId, "2024-03-06")
	require.NoError(t, err)
	assert.Len(t, tomorrow, 1)

	toggled, err := svc.ToggleTask(ctx, userId, task.Id)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)
	assert.Contains(t, f.bus.types(), events.TaskCompleted)

	updated, err := svc.UpdateTask(ctx, userId, task.Id, &dto.UpdateTaskRequest{Description: "Integration by parts", Date: "2024-03-07"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07", updated.Date)
	assert.True(t, updated.IsCompleted)

	require.NoError(t, svc.DeleteTask(ctx, userId, task.Id))
	var notFound *dto.NotFoundError
	_, err = svc.ToggleTask(ctx, userId, task.Id)
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateTaskChecksReferences(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "rafi@example.com")
	physics := f.subjectNamed(t, userId, "Physics")
	english := f.subjectNamed(t, userId, "English")
	svc := NewTaskService(f.factory, f.events, fixedClock(stats.NewDay(2024, time.March, 5)))
	subjects := NewSubjectService(f.factory, f.events)
	ctx := context.Background()

	var notFound *dto.NotFoundError
	_, err := svc.CreateTask(ctx, userId, &dto.CreateTaskRequest{SubjectId: uuid.NewString(), Description: "x"})
	assert.ErrorAs(t, err, &notFound)

	optics, err := subjects.AddChapter(ctx, userId, physics.Id, &dto.CreateChapterRequest{Name: "Optics", PaperType: "second"})
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, userId, &dto.CreateTaskRequest{SubjectId: english.Id.String(), ChapterId: optics.Id.String(), Description: "x"})
	assert.ErrorAs(t, err, &notFound)

	task, err := svc.CreateTask(ctx, userId, &dto.CreateTaskRequest{SubjectId: physics.Id.String(), ChapterId: optics.Id.String(), Description: "Lens problems"})
	require.NoError(t, err)
	require.NotNil(t, task.ChapterId)
	assert.Equal(t, optics.Id, *task.ChapterId)

	var verr *dto.ValidationError
	_, err = svc.ListTasks(ctx, userId, "05/03/2024")
	assert.ErrorAs(t, err, &verr)
}
