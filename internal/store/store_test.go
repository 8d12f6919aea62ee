package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"tasktrack/internal/logging"
	"tasktrack/internal/service"
	"tasktrack/internal/store"
	"tasktrack/internal/testutil"
)

var errOffline = errors.New("dial tcp: connection refused")

type mockAlerter struct {
	mock.Mock
}

func (m *mockAlerter) Alert(title, message string) {
	m.Called(title, message)
}

func newStore(t *testing.T, svc service.Service) (*store.Store, *mockAlerter) {
	t.Helper()
	alerter := &mockAlerter{}
	t.Cleanup(func() { alerter.AssertExpectations(t) })
	return store.New(svc, alerter, logging.Discard()), alerter
}

func seeded() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "a", Title: "Buy milk"})
	svc.AddTask(service.Task{ID: "b", Title: "Pay rent", HighPriority: true})
	svc.AddTask(service.Task{ID: "c", Title: "Book dentist", Description: "ask about rent-a-car", Completed: true})
	return svc
}

func ids(tasks []service.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestStore_StartsEmpty(t *testing.T) {
	s, _ := newStore(t, seeded())

	assert.Equal(t, 0, len(s.Tasks()))
	_, ok := s.GetByID("a")
	assert.Equal(t, false, ok)
}

func TestFetch(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns everything", query: "", want: []string{"a", "b", "c"}},
		{name: "blank query returns everything", query: "   ", want: []string{"a", "b", "c"}},
		{name: "title substring", query: "milk", want: []string{"a"}},
		{name: "case insensitive", query: "RENT", want: []string{"b", "c"}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newStore(t, seeded())

			err := s.Fetch(context.Background(), tc.query)

			require.NoError(t, err)
			assert.DeepEqual(t, tc.want, ids(s.Tasks()))
			assert.Equal(t, tc.query, s.Query())
		})
	}
}

func TestFetch_FailureKeepsCollectionAndAlerts(t *testing.T) {
	svc := seeded()
	s, alerter := newStore(t, svc)
	require.NoError(t, s.Fetch(context.Background(), "milk"))
	before := s.Tasks()

	svc.ListTasksErr = errOffline
	alerter.On("Alert", store.ConnectionErrorTitle, mock.MatchedBy(func(msg string) bool {
		return msg == "could not load tasks: "+errOffline.Error()
	})).Once()

	err := s.Fetch(context.Background(), "")

	require.ErrorIs(t, err, errOffline)
	assert.DeepEqual(t, before, s.Tasks())
	assert.Equal(t, "milk", s.Query())
	assert.Equal(t, 2, svc.Calls("ListTasks"))
}

func TestRefresh_ReusesLastQuery(t *testing.T) {
	svc := seeded()
	s, _ := newStore(t, svc)
	require.NoError(t, s.Fetch(context.Background(), "rent"))

	svc.AddTask(service.Task{ID: "d", Title: "Rent skis"})
	require.NoError(t, s.Refresh(context.Background()))

	assert.DeepEqual(t, []string{"b", "c", "d"}, ids(s.Tasks()))
	assert.Equal(t, "rent", s.Query())
}

func TestAdd_RefetchesAndContainsNewTask(t *testing.T) {
	svc := testutil.NewFakeService()
	s, _ := newStore(t, svc)

	ok := s.Add(context.Background(), "  Call mom  ", " on Sunday ", true)

	assert.Equal(t, true, ok)
	assert.Equal(t, 1, svc.Calls("CreateTask"))
	assert.Equal(t, 1, svc.Calls("ListTasks"))

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Call mom", tasks[0].Title)
	assert.Equal(t, "on Sunday", tasks[0].Description)
	assert.Equal(t, true, tasks[0].HighPriority)
	assert.Equal(t, false, tasks[0].Completed)
}

func TestAdd_RefetchIsUnfiltered(t *testing.T) {
	svc := seeded()
	s, _ := newStore(t, svc)
	require.NoError(t, s.Fetch(context.Background(), "milk"))

	ok := s.Add(context.Background(), "Walk dog", "", false)

	assert.Equal(t, true, ok)
	assert.DeepEqual(t, []string{"a", "b", "c", "t1"}, ids(s.Tasks()))
	assert.Equal(t, "", s.Query())
}

func TestAdd_BlankTitleMakesNoNetworkCall(t *testing.T) {
	for _, title := range []string{"", " ", "\t\n  "} {
		svc := seeded()
		s, _ := newStore(t, svc)

		ok := s.Add(context.Background(), title, "description", true)

		assert.Equal(t, false, ok)
		assert.Equal(t, 0, svc.TotalCalls())
	}
}

func TestAdd_CreateFailure(t *testing.T) {
	svc := seeded()
	svc.CreateTaskErr = errOffline
	s, _ := newStore(t, svc)
	require.NoError(t, s.Fetch(context.Background(), ""))

	ok := s.Add(context.Background(), "Walk dog", "", false)

	assert.Equal(t, false, ok)
	assert.Equal(t, 1, svc.Calls("ListTasks"))
	assert.DeepEqual(t, []string{"a", "b", "c"}, ids(s.Tasks()))
}

func TestAdd_RefetchFailureStillReportsSuccess(t *testing.T) {
	svc := seeded()
	s, alerter := newStore(t, svc)
	require.NoError(t, s.Fetch(context.Background(), ""))
	svc.ListTasksErr = errOffline
	alerter.On("Alert", store.ConnectionErrorTitle, mock.Anything).Once()

	ok := s.Add(context.Background(), "Walk dog", "", false)

	assert.Equal(t, true, ok)
	assert.DeepEqual(t, []string{"a", "b", "c"}, ids(s.Tasks()))
}

func TestToggleCompletion(t *testing.T) {
	testCases := []struct {
		name    string
		id      string
		current bool
		want    bool
	}{
		{name: "open becomes completed", id: "a", current: false, want: true},
		{name: "completed becomes open", id: "c", current: true, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := seeded()
			s, _ := newStore(t, svc)
			require.NoError(t, s.Fetch(context.Background(), ""))

			ok := s.ToggleCompletion(context.Background(), tc.id, tc.current)

			assert.Equal(t, true, ok)
			got, found := s.GetByID(tc.id)
			require.True(t, found)
			assert.Equal(t, tc.want, got.Completed)
			assert.Equal(t, 2, svc.Calls("ListTasks"))
		})
	}
}

func TestToggleCompletion_UsesCallerStatus(t *testing.T) {
	svc := seeded()
	s, _ := newStore(t, svc)

	// The caller's view is stale: the server already has "a" completed.
	require.NoError(t, svc.UpdateTask(context.Background(), "a", service.SetCompleted(true)))

	ok := s.ToggleCompletion(context.Background(), "a", false)

	assert.Equal(t, true, ok)
	got, _ := s.GetByID("a")
	assert.Equal(t, true, got.Completed)
}

func TestToggleCompletion_Failure(t *testing.T) {
	svc := seeded()
	s, _ := newStore(t, svc)
	require.NoError(t, s.Fetch(context.Background(), ""))

	ok := s.ToggleCompletion(context.Background(), "missing", false)

	assert.Equal(t, false, ok)
	assert.Equal(t, 1, svc.Calls("ListTasks"))
}

func TestDelete(t *testing.T) {
	svc := seeded()
	s, _ := newStore(t, svc)
	require.NoError(t, s.Fetch(context.Background(), ""))
	_, found := s.GetByID("b")
	require.True(t, found)

	ok := s.Delete(context.Background(), "b")

	assert.Equal(t, true, ok)
	assert.DeepEqual(t, []string{"a", "c"}, ids(s.Tasks()))
	_, found = s.GetByID("b")
	assert.Equal(t, false, found)
}

func TestDelete_Failure(t *testing.T) {
	svc := seeded()
	svc.DeleteTaskErr = errOffline
	s, _ := newStore(t, svc)
	require.NoError(t, s.Fetch(context.Background(), ""))

	ok := s.Delete(context.Background(), "b")

	assert.Equal(t, false, ok)
	_, found := s.GetByID("b")
	assert.Equal(t, true, found)
	assert.Equal(t, 1, svc.Calls("ListTasks"))
}

func TestGetByID_SeesConcurrentDeleteOnlyAfterFetch(t *testing.T) {
	svc := seeded()
	s, _ := newStore(t, svc)
	require.NoError(t, s.Fetch(context.Background(), ""))

	// Another client deletes "a" behind our back.
	require.NoError(t, svc.DeleteTask(context.Background(), "a"))

	_, found := s.GetByID("a")
	assert.Equal(t, true, found)

	require.NoError(t, s.Refresh(context.Background()))
	_, found = s.GetByID("a")
	assert.Equal(t, false, found)
}

func TestTasks_ReturnsCopy(t *testing.T) {
	s, _ := newStore(t, seeded())
	require.NoError(t, s.Fetch(context.Background(), ""))

	tasks := s.Tasks()
	tasks[0].Title = "changed"

	got, _ := s.GetByID("a")
	assert.Equal(t, "Buy milk", got.Title)
}

func TestConcurrentMutationsConvergeOnServerState(t *testing.T) {
	svc := testutil.NewFakeService()
	s, _ := newStore(t, svc)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(context.Background(), "task", "", false)
		}()
	}
	wg.Wait()

	require.NoError(t, s.Fetch(context.Background(), ""))
	assert.Equal(t, 8, len(s.Tasks()))
}

func TestNew_NilAlerter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errOffline
	s := store.New(svc, nil, logging.Discard())

	err := s.Fetch(context.Background(), "")

	require.ErrorIs(t, err, errOffline)
}
