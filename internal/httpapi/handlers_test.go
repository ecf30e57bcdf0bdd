package httpapi

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/storage"
	storagemock "github.com/Ovitozinn/luxe-dash-suite/internal/storage/mock"
	"github.com/Ovitozinn/luxe-dash-suite/internal/usecase"
)

func expectCounts(repo *storagemock.RepositoryMock, sentErr error) {
	repo.On("CountWhere", mock.Anything, storage.TableAppointments,
		storage.Predicate{Column: "status", Value: model.AppointmentStatusCompleted}).Return(int64(4), nil)
	repo.On("CountWhere", mock.Anything, storage.TableAppointments,
		storage.Predicate{Column: "status", Value: model.AppointmentStatusScheduled}).Return(int64(9), nil)
	repo.On("CountWhere", mock.Anything, storage.TableFollowUps,
		storage.Predicate{Column: "status", Value: model.FollowUpStatusSent}).Return(int64(2), sentErr)
}

func TestGetDashboard(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	expectCounts(repo, nil)

	rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode[usecase.Envelope[model.DashboardCounts]](t, rec)
	assert.False(t, env.Loading)
	assert.Nil(t, env.Error)
	assert.Equal(t, model.DashboardCounts{CompletedAppointments: 4, ScheduledAppointments: 9, FollowUpsSent: 2}, env.Data)
	repo.AssertExpectations(t)
}

func TestGetDashboard_QueryErrorInEnvelope(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	expectCounts(repo, apperrors.NewQueryError("count followups", errors.New("relation does not exist")))

	rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode[usecase.Envelope[model.DashboardCounts]](t, rec)
	require.NotNil(t, env.Error)
	assert.Contains(t, *env.Error, "relation does not exist")
	assert.Equal(t, model.DashboardCounts{}, env.Data)
}

func TestGetAgenda_WeeklyWithContactAndChatLink(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	at := time.Date(2024, 5, 16, 14, 0, 0, 0, time.UTC)

	repo.On("ListAppointments", mock.Anything, mock.MatchedBy(func(f storage.AppointmentFilter) bool {
		return f.ScheduledBetween != nil &&
			f.ScheduledBetween.Start.Equal(time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)) &&
			f.ScheduledBetween.End.Equal(time.Date(2024, 5, 18, 23, 59, 59, 999999999, time.UTC))
	})).Return([]model.Appointment{{
		ID:             "ap-1",
		ScheduledAt:    &at,
		Status:         model.AppointmentStatusScheduled,
		ConversationID: model.StringPtr("777"),
		ContactID:      model.StringPtr("A"),
	}}, nil).Once()
	repo.On("GetContactsByIDs", mock.Anything, []string{"A"}).
		Return([]model.Contact{{ID: "A", Name: "Ana"}}, nil).Once()

	rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodGet, "/api/agenda?mode=weekly&date=2024-05-15", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[agendaResponse](t, rec)
	assert.Equal(t, usecase.ViewModeWeekly, resp.View.Mode)
	require.NotNil(t, resp.View.Range)
	assert.Nil(t, resp.Error)
	require.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Data[0].Contact)
	assert.Equal(t, "Ana", resp.Data[0].Contact.Name)
	require.NotNil(t, resp.Data[0].ChatURL)
	assert.Equal(t, "https://chat.example.com/conversations/777", *resp.Data[0].ChatURL)
	repo.AssertExpectations(t)
}

func TestGetAgenda_DailyNavigation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		start time.Time
	}{
		{"default is today", "", time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
		{"explicit date", "?date=2024-05-15", time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)},
		{"next day", "?date=2024-05-15&nav=next", time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)},
		{"previous day", "?mode=daily&date=2024-05-01&nav=prev", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)},
		{"back to today", "?date=2024-01-01&nav=today", time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(storagemock.RepositoryMock)
			repo.On("ListAppointments", mock.Anything, mock.MatchedBy(func(f storage.AppointmentFilter) bool {
				return f.ScheduledBetween != nil && f.ScheduledBetween.Start.Equal(tc.start)
			})).Return([]model.Appointment{}, nil).Once()

			rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodGet, "/api/agenda"+tc.query, "")
			require.Equal(t, http.StatusOK, rec.Code)
			resp := decode[agendaResponse](t, rec)
			assert.Equal(t, usecase.ViewModeDaily, resp.View.Mode)
			assert.Empty(t, resp.Data)
			repo.AssertExpectations(t)
		})
	}
}

func TestGetAgenda_ListModeHasNoRange(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	repo.On("ListAppointments", mock.Anything, mock.MatchedBy(func(f storage.AppointmentFilter) bool {
		return f.ScheduledBetween == nil
	})).Return([]model.Appointment{}, nil).Once()

	rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodGet, "/api/agenda?mode=list&nav=next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[agendaResponse](t, rec)
	assert.Equal(t, usecase.ViewModeList, resp.View.Mode)
	assert.Nil(t, resp.View.Range)
	repo.AssertExpectations(t)
}

func TestGetAgenda_BadRequest(t *testing.T) {
	for _, query := range []string{"?mode=monthly", "?date=15/05/2024", "?nav=forward"} {
		t.Run(query, func(t *testing.T) {
			repo := new(storagemock.RepositoryMock)
			rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodGet, "/api/agenda"+query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decode[usecase.Envelope[any]](t, rec)
			assert.NotNil(t, env.Error)
			repo.AssertNotCalled(t, "ListAppointments", mock.Anything, mock.Anything)
		})
	}
}

func TestGetContacts(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	repo.On("ListContactsWithAppointments", mock.Anything).Return(roster(), nil).Once()

	rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode[usecase.Envelope[[]usecase.ContactRow]](t, rec)
	require.Len(t, env.Data, 3)
	assert.Equal(t, usecase.ContactKindClient, env.Data[0].Kind)
	assert.True(t, env.Data[0].Stale)
	assert.Equal(t, usecase.ContactKindProspect, env.Data[1].Kind)
	assert.False(t, env.Data[1].Stale)
	require.NotNil(t, env.Data[1].LastAppointmentAt)
	assert.Nil(t, env.Data[2].LastAppointmentAt)
	assert.True(t, env.Data[2].Stale)
}

func TestGetDispatchSummary(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	repo.On("ListContactsWithAppointments", mock.Anything).Return(roster(), nil).Once()

	rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodGet, "/api/dispatch/summary?ids=A,C&ids=A", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode[usecase.Envelope[*usecase.SubsetSizes]](t, rec)
	require.NotNil(t, env.Data)
	assert.Equal(t, usecase.SubsetSizes{All: 3, Stale: 2, Selected: 2}, *env.Data)
}

func TestGetDispatchSummary_QueryError(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	repo.On("ListContactsWithAppointments", mock.Anything).
		Return(nil, apperrors.NewQueryError("list contacts", errors.New("timeout"))).Once()

	rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodGet, "/api/dispatch/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[usecase.Envelope[*usecase.SubsetSizes]](t, rec)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Contains(t, *env.Error, "timeout")
}

func TestPostDispatch_Stale(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	repo.On("ListContactsWithAppointments", mock.Anything).Return(roster(), nil).Once()
	publisher := new(publisherMock)
	publisher.On("PublishDispatch", mock.Anything, mock.MatchedBy(func(e model.DispatchEvent) bool {
		return e.Mode == "stale" && e.TargetCount == 2 && e.ID != ""
	})).Return(nil).Once()

	rec := doRequest(t, newTestHandler(t, repo, publisher), http.MethodPost, "/api/dispatch",
		`{"message":"Sentimos sua falta!","mode":"no-schedule"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode[usecase.Envelope[*model.DispatchResult]](t, rec)
	require.NotNil(t, env.Data)
	assert.Equal(t, 2, env.Data.Sent)
	assert.Equal(t, "stale", env.Data.Mode)
	publisher.AssertExpectations(t)
}

func TestPostDispatch_ManualSelection(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	repo.On("ListContactsWithAppointments", mock.Anything).Return(roster(), nil).Once()
	publisher := new(publisherMock)
	publisher.On("PublishDispatch", mock.Anything, mock.Anything).Return(errors.New("nats down")).Once()

	rec := doRequest(t, newTestHandler(t, repo, publisher), http.MethodPost, "/api/dispatch",
		`{"message":"Oi","mode":"manual","selectedIds":["B","B","ghost"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode[usecase.Envelope[*model.DispatchResult]](t, rec)
	require.NotNil(t, env.Data)
	assert.Equal(t, 1, env.Data.Sent)
}

func TestPostDispatch_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"blank message", `{"message":"   ","mode":"all"}`, "Please type a message."},
		{"empty selection", `{"message":"Oi","mode":"selected"}`, "No contacts selected for dispatch."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(storagemock.RepositoryMock)
			repo.On("ListContactsWithAppointments", mock.Anything).Return(roster(), nil).Once()
			publisher := new(publisherMock)

			rec := doRequest(t, newTestHandler(t, repo, publisher), http.MethodPost, "/api/dispatch", tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			env := decode[usecase.Envelope[any]](t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.message, *env.Error)
			publisher.AssertNotCalled(t, "PublishDispatch", mock.Anything, mock.Anything)
		})
	}
}

func TestPostDispatch_BadRequest(t *testing.T) {
	for name, body := range map[string]string{
		"malformed":     `{"message":`,
		"unknown field": `{"message":"Oi","mode":"all","extra":1}`,
		"missing mode":  `{"message":"Oi"}`,
		"unknown mode":  `{"message":"Oi","mode":"everyone"}`,
		"blank id":      `{"message":"Oi","mode":"manual","selectedIds":[""]}`,
		"empty body":    ``,
	} {
		t.Run(name, func(t *testing.T) {
			repo := new(storagemock.RepositoryMock)
			rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodPost, "/api/dispatch", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			repo.AssertNotCalled(t, "ListContactsWithAppointments", mock.Anything)
		})
	}
}

func TestPostDispatch_RosterErrorInEnvelope(t *testing.T) {
	repo := new(storagemock.RepositoryMock)
	repo.On("ListContactsWithAppointments", mock.Anything).
		Return(nil, apperrors.NewQueryError("list contacts", errors.New("permission denied"))).Once()

	rec := doRequest(t, newTestHandler(t, repo, nil), http.MethodPost, "/api/dispatch", `{"message":"Oi","mode":"all"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[usecase.Envelope[*model.DispatchResult]](t, rec)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Contains(t, *env.Error, "permission denied")
}
