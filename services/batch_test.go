package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naver-booking-notifier/models"
)

type fakeSource struct {
	text     string
	readyErr error
	fetchErr error
}

func (f *fakeSource) EnsureReady(ctx context.Context) error { return f.readyErr }

func (f *fakeSource) FetchPageText(ctx context.Context) (string, error) {
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return f.text, nil
}

func (f *fakeSource) SessionValid(ctx context.Context) (bool, error) {
	return f.fetchErr == nil, nil
}

const twoBookingsPage = `예약자관리
확정 김철수 010-1234-5678 1234567890 오후 3:15 백석담
확정 이영희 010-9999-0000 5555555555 오후 5:30 온돌방
확정 김철수 010-1234-5678 1234567890 오후 3:15 백석담
`

func newTestRunner(t *testing.T, f *fakeSolapi, source BookingSource, now time.Time) (*BatchRunner, *RunLogStore) {
	cfg := testConfig(f.srv.URL)
	client := NewSolapiClient(cfg)
	dispatcher := NewDispatcher(cfg, client, fixedClock{now})
	store, err := NewRunLogStore(t.TempDir())
	require.NoError(t, err)
	return NewBatchRunner(source, dispatcher, store, fixedClock{now}), store
}

func TestRunBatchCountersFollowImmediatePathOnly(t *testing.T) {
	f := newFakeSolapi(t)
	// The second booking's confirmation is rejected; its reminder still works.
	f.failSendForPhone = "01099990000"
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, KST)
	runner, _ := newTestRunner(t, f, &fakeSource{text: twoBookingsPage}, now)

	bookings := ExtractBookings(twoBookingsPage)
	require.Len(t, bookings, 2)

	report := runner.RunBatch(context.Background(), bookings)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Success)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Outcomes, 2)

	// Outcomes keep extraction order.
	assert.Equal(t, "1234567890", report.Outcomes[0].BookingID)
	assert.Equal(t, "5555555555", report.Outcomes[1].BookingID)

	assert.True(t, report.Outcomes[0].Immediate.Success)
	assert.False(t, report.Outcomes[1].Immediate.Success)

	// Both reminders were attempted regardless of the immediate result.
	assert.True(t, report.Outcomes[0].Reminder.Success)
	assert.True(t, report.Outcomes[1].Reminder.Success)
	assert.Equal(t, 2, f.groupCalls)
}

func TestDispatchTodayPersistsRunWithResults(t *testing.T) {
	f := newFakeSolapi(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, KST)
	runner, store := newTestRunner(t, f, &fakeSource{text: twoBookingsPage}, now)

	run, report, err := runner.DispatchToday(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", run.Date)
	assert.Equal(t, 2, run.Count)
	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, 2, report.Total)
	require.Len(t, run.SendResults, 2)

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, run.RunID, latest.RunID)
	require.Len(t, latest.SendResults, 2)
	assert.Equal(t, "1234567890", latest.SendResults[0].BookingID)
}

func TestExtractTodayPersistsWithoutResults(t *testing.T) {
	f := newFakeSolapi(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, KST)
	runner, store := newTestRunner(t, f, &fakeSource{text: twoBookingsPage}, now)

	run, err := runner.ExtractToday(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, run.Count)
	assert.Empty(t, run.SendResults)
	assert.Equal(t, 0, f.sendCalls)

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.Empty(t, latest.SendResults)
}

func TestDispatchTodaySessionExpiredAbortsRun(t *testing.T) {
	f := newFakeSolapi(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, KST)
	source := &fakeSource{fetchErr: models.ErrSessionExpired}
	runner, store := newTestRunner(t, f, source, now)

	_, _, err := runner.DispatchToday(context.Background())
	require.ErrorIs(t, err, models.ErrSessionExpired)

	// Nothing was sent and nothing was persisted.
	assert.Equal(t, 0, f.sendCalls)
	_, err = store.Latest()
	assert.ErrorIs(t, err, models.ErrRunNotFound)
}

func TestDispatchTodayEmptyPage(t *testing.T) {
	f := newFakeSolapi(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, KST)
	runner, _ := newTestRunner(t, f, &fakeSource{text: "예약자관리 목록이 비어 있습니다"}, now)

	run, report, err := runner.DispatchToday(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, run.Count)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0, f.sendCalls)
}
