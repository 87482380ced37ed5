package services

import (
	"io"
	"testing"
	"time"

	"Repokit/internal/config"
	"Repokit/internal/models"
	"Repokit/internal/result"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPurger struct {
	mock.Mock
}

func (m *MockPurger) PurgeDeleted(before time.Time) *result.Result[int] {
	args := m.Called(before)
	return args.Get(0).(*result.Result[int])
}

type purgeOnlyItemService struct {
	ItemService
	*MockPurger
}

func (s purgeOnlyItemService) PurgeDeleted(before time.Time) *result.Result[int] {
	return s.MockPurger.PurgeDeleted(before)
}

type purgeOnlyBoxService struct {
	BoxService
	*MockPurger
}

func (s purgeOnlyBoxService) PurgeDeleted(before time.Time) *result.Result[int] {
	return s.MockPurger.PurgeDeleted(before)
}

func newTestJanitor(items, boxes *MockPurger) *Janitor {
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Configuration{}
	cfg.Server.CleanConfig = config.CleanConfig{Schedule: "@every 1h", Retention: 24 * time.Hour}
	janitor := NewJanitorService(purgeOnlyItemService{MockPurger: items}, purgeOnlyBoxService{MockPurger: boxes}, LogService{Log: log}, cfg)
	janitor.now = func() time.Time { return time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC) }
	return janitor
}

func TestJanitor_RunCleanCycle(t *testing.T) {
	items, boxes := new(MockPurger), new(MockPurger)
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	items.On("PurgeDeleted", cutoff).Return(result.New(3)).Once()
	boxes.On("PurgeDeleted", cutoff).Return(result.New(2)).Once()

	janitor := newTestJanitor(items, boxes)
	report, err := janitor.RunCleanCycle()

	require.NoError(t, err)
	assert.Equal(t, cutoff, report.Cutoff)
	assert.Equal(t, 3, report.ItemsPurged)
	assert.Equal(t, 2, report.BoxesPurged)
	assert.Empty(t, report.FailedStages)
	assert.False(t, janitor.IsCleaning())
	items.AssertExpectations(t)
	boxes.AssertExpectations(t)
}

func TestJanitor_ContinuesAfterFailedStage(t *testing.T) {
	items, boxes := new(MockPurger), new(MockPurger)
	items.On("PurgeDeleted", mock.Anything).Return(result.Fail[int]("PgError", "connection refused"))
	boxes.On("PurgeDeleted", mock.Anything).Return(result.New(1))

	report, err := newTestJanitor(items, boxes).RunCleanCycle()

	require.NoError(t, err)
	assert.Equal(t, []string{"items"}, report.FailedStages)
	assert.Equal(t, 1, report.BoxesPurged)
}

func TestJanitor_SingleRunAtATime(t *testing.T) {
	items, boxes := new(MockPurger), new(MockPurger)
	release := make(chan struct{})
	items.On("PurgeDeleted", mock.Anything).Return(result.New(0)).Run(func(mock.Arguments) { <-release })
	boxes.On("PurgeDeleted", mock.Anything).Return(result.New(0))

	janitor := newTestJanitor(items, boxes)
	require.NoError(t, janitor.ForceStartCleanCycle())
	assert.True(t, janitor.IsCleaning())

	assert.ErrorIs(t, janitor.ForceStartCleanCycle(), ErrCleaningInProgress)
	_, err := janitor.RunCleanCycle()
	assert.ErrorIs(t, err, ErrCleaningInProgress)

	close(release)
	assert.Eventually(t, func() bool { return !janitor.IsCleaning() }, time.Second, 5*time.Millisecond)
}

func TestJanitor_StopCleanWaitsForForcedCycle(t *testing.T) {
	items, boxes := new(MockPurger), new(MockPurger)
	release := make(chan struct{})
	items.On("PurgeDeleted", mock.Anything).Return(result.New(0)).Run(func(mock.Arguments) { <-release })
	boxes.On("PurgeDeleted", mock.Anything).Return(result.New(0))

	janitor := newTestJanitor(items, boxes)
	require.NoError(t, janitor.ForceStartCleanCycle())

	stopped := make(chan struct{})
	go func() {
		janitor.StopClean()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("StopClean returned while a forced cycle was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("StopClean did not return after the forced cycle finished")
	}
	assert.False(t, janitor.IsCleaning())
	boxes.AssertExpectations(t)

	assert.ErrorIs(t, janitor.ForceStartCleanCycle(), ErrJanitorStopped)
	_, err := janitor.RunCleanCycle()
	assert.ErrorIs(t, err, ErrJanitorStopped)
}

func TestJanitor_StartAndStopSchedule(t *testing.T) {
	janitor := newTestJanitor(new(MockPurger), new(MockPurger))
	require.NoError(t, janitor.StartCleanCycle())
	janitor.StopClean()

	janitor.configuration.Server.CleanConfig.Schedule = "not a schedule"
	assert.Error(t, janitor.StartCleanCycle())
}

func TestJanitor_PurgesRealRows(t *testing.T) {
	boxService, _, itemRepo := newTestBoxService(t)
	itemService := NewItemService(itemRepo, nil)

	box := boxService.CreateBox("box", nil, nil).ResultObject
	loose := itemService.CreateItems([]*models.Item{{BoxID: box.ID, Name: "loose", Type: "file"}}, nil).ResultObject
	require.True(t, itemService.DeleteItem(loose[0].ID, nil, false).Succeeded())

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Configuration{}
	cfg.Server.CleanConfig.Retention = time.Hour
	janitor := NewJanitorService(itemService, boxService, LogService{Log: log}, cfg)
	janitor.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }

	report, err := janitor.RunCleanCycle()
	require.NoError(t, err)
	assert.Equal(t, 1, report.ItemsPurged)
	assert.Equal(t, 0, report.BoxesPurged)
	assert.True(t, itemService.GetItemByID(loose[0].ID, true).HasErrors())
	assert.True(t, boxService.GetBoxByID(box.ID, false).Succeeded())
}
