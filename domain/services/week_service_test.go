package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"survivorpool/config"
	"survivorpool/domain/entities"
	"survivorpool/domain/testhelpers"
)

func TestWeekService_CreateWeek_DuplicateNumber(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	weekRepo := new(testhelpers.MockWeekRepository)
	service := NewWeekService(weekRepo, new(testhelpers.MockGameRepository), new(testhelpers.MockEventPublisher))

	weekRepo.On("GetByNumber", ctx, 5).Return(testWeek(10, 5), nil)

	_, err := service.CreateWeek(ctx, testWeek(0, 5))

	var valErr *entities.ValidationError
	require.ErrorAs(t, err, &valErr)
	weekRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWeekService_CreateWeek_DeadlineBeforeStart(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	service := NewWeekService(new(testhelpers.MockWeekRepository), new(testhelpers.MockGameRepository), new(testhelpers.MockEventPublisher))

	week := testWeek(0, 5)
	week.Deadline = week.StartDate.Add(-time.Hour)

	_, err := service.CreateWeek(ctx, week)

	var valErr *entities.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestWeekService_SetActiveWeek(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	weekRepo := new(testhelpers.MockWeekRepository)
	publisher := new(testhelpers.MockEventPublisher)
	service := NewWeekService(weekRepo, new(testhelpers.MockGameRepository), publisher)

	weekRepo.On("GetByID", ctx, int64(10)).Return(testWeek(10, 5), nil)
	weekRepo.On("SetActive", ctx, int64(10)).Return(nil)
	publisher.On("Publish", mock.AnythingOfType("events.WeekActivatedEvent")).Return(nil)

	err := service.SetActiveWeek(ctx, 10)
	require.NoError(t, err)
	weekRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestWeekService_RecordGameResults_RejectsForeignGame(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	weekRepo := new(testhelpers.MockWeekRepository)
	gameRepo := new(testhelpers.MockGameRepository)
	service := NewWeekService(weekRepo, gameRepo, new(testhelpers.MockEventPublisher))

	weekRepo.On("GetByID", ctx, int64(10)).Return(testWeek(10, 5), nil)
	gameRepo.On("GetByWeek", ctx, int64(10)).Return([]*entities.Game{trackedGame(1, 10, 3, 4, -7)}, nil)

	err := service.RecordGameResults(ctx, 10, map[int64]bool{99: true})

	var valErr *entities.ValidationError
	require.ErrorAs(t, err, &valErr)
	gameRepo.AssertNotCalled(t, "SetResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestWeekService_RecordGameResults(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	weekRepo := new(testhelpers.MockWeekRepository)
	gameRepo := new(testhelpers.MockGameRepository)
	service := NewWeekService(weekRepo, gameRepo, new(testhelpers.MockEventPublisher))

	weekRepo.On("GetByID", ctx, int64(10)).Return(testWeek(10, 5), nil)
	gameRepo.On("GetByWeek", ctx, int64(10)).Return([]*entities.Game{
		trackedGame(1, 10, 3, 4, -7),
		trackedGame(2, 10, 5, 6, -3),
	}, nil)
	gameRepo.On("SetResult", ctx, int64(1), true).Return(nil)
	gameRepo.On("SetResult", ctx, int64(2), false).Return(nil)

	err := service.RecordGameResults(ctx, 10, map[int64]bool{1: true, 2: false})
	require.NoError(t, err)
	gameRepo.AssertExpectations(t)
}

func TestWeekLocker_SerializesPerWeek(t *testing.T) {
	locker := NewWeekLocker()

	unlock := locker.Lock(1)
	done := make(chan struct{})
	go func() {
		inner := locker.Lock(1)
		inner()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired after unlock")
	}

	// Different weeks do not contend
	unlock2 := locker.Lock(2)
	unlock2()
}
