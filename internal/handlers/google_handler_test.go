package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"

	"github.com/bittenrichard/30-07/internal/handlers"
	"github.com/bittenrichard/30-07/internal/models"
	"github.com/bittenrichard/30-07/internal/services"
)

type fakeCalendar struct {
	insert func(refreshToken string, ev *calendar.Event) (*calendar.Event, error)
}

func (f *fakeCalendar) InsertEvent(_ context.Context, refreshToken string, ev *calendar.Event) (*calendar.Event, error) {
	if f.insert == nil {
		return nil, errors.New("unexpected InsertEvent")
	}
	return f.insert(refreshToken, ev)
}

func (f *fakeCalendar) ListRecentEvents(context.Context, string, time.Time) ([]*calendar.Event, error) {
	return nil, errors.New("unexpected ListRecentEvents")
}

func googleRouter(store *fakeStore, api services.CalendarAPI) *gin.Engine {
	log := zap.NewNop()
	cal := services.NewCalendarService(store, api, services.NewNotifier("", log), log)
	h := handlers.NewGoogleHandler(store, cal, &oauth2.Config{ClientID: "cid"}, log)

	r := gin.New()
	g := r.Group("/api/google")
	g.GET("/auth/connect", h.Connect)
	g.POST("/auth/disconnect", h.Disconnect)
	g.GET("/auth/status", h.Status)
	g.POST("/calendar/create-event", h.CreateEvent)
	return r
}

const bookingBody = `{
	"userId": 1,
	"eventData": {
		"title": "Entrevista - Maria",
		"start": "2026-09-01T14:00:00-03:00",
		"end": "2026-09-01T15:00:00-03:00",
		"details": ""
	},
	"candidate": {"id": 100, "nome": "Maria", "telefone": null},
	"job": {"id": 7, "titulo": "backend engineer"}
}`

func TestCreateEventRequiresCompletePayload(t *testing.T) {
	w := doJSON(t, googleRouter(&fakeStore{}, &fakeCalendar{}), http.MethodPost,
		"/api/google/calendar/create-event", `{"userId": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Dados insuficientes.", decodeBody(t, w)["message"])
}

func TestCreateEventUnlinkedUser(t *testing.T) {
	store := &fakeStore{
		get: func(table string, id int, out any) error {
			fillJSON(t, map[string]any{"id": id, "google_refresh_token": ""}, out)
			return nil
		},
	}

	w := doJSON(t, googleRouter(store, &fakeCalendar{}), http.MethodPost,
		"/api/google/calendar/create-event", bookingBody)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Usuário não conectado ao Google Calendar.", body["message"])
}

func TestCreateEventSuccess(t *testing.T) {
	var created []map[string]any
	store := &fakeStore{
		get: func(table string, id int, out any) error {
			fillJSON(t, map[string]any{"id": id, "nome": "Ana", "google_refresh_token": "tok"}, out)
			return nil
		},
		create: func(table string, fields, out any) error {
			created = append(created, fields.(map[string]any))
			fillJSON(t, map[string]any{"id": 55}, out)
			return nil
		},
	}
	api := &fakeCalendar{
		insert: func(_ string, ev *calendar.Event) (*calendar.Event, error) {
			out := *ev
			out.HtmlLink = "https://calendar.google.com/event?eid=xyz"
			return &out, nil
		},
	}

	w := doJSON(t, googleRouter(store, api), http.MethodPost,
		"/api/google/calendar/create-event", bookingBody)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Evento criado com sucesso!", body["message"])

	require.Len(t, created, 1)
	assert.Equal(t, "https://calendar.google.com/event?eid=xyz", created[0]["google_event_link"])
}

func TestCreateEventCalendarFailure(t *testing.T) {
	store := &fakeStore{
		get: func(table string, id int, out any) error {
			fillJSON(t, map[string]any{"id": id, "google_refresh_token": "tok"}, out)
			return nil
		},
	}
	api := &fakeCalendar{
		insert: func(string, *calendar.Event) (*calendar.Event, error) {
			return nil, errors.New("quota exceeded")
		},
	}

	w := doJSON(t, googleRouter(store, api), http.MethodPost,
		"/api/google/calendar/create-event", bookingBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Falha ao criar evento.", decodeBody(t, w)["message"])
}

func TestConnectBuildsConsentURL(t *testing.T) {
	w := doJSON(t, googleRouter(&fakeStore{}, &fakeCalendar{}), http.MethodGet,
		"/api/google/auth/connect?userId=1", "")

	require.Equal(t, http.StatusOK, w.Code)
	url, _ := decodeBody(t, w)["url"].(string)
	assert.Contains(t, url, "state=1")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "prompt=consent")
}

func TestConnectRequiresUserID(t *testing.T) {
	w := doJSON(t, googleRouter(&fakeStore{}, &fakeCalendar{}), http.MethodGet,
		"/api/google/auth/connect", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusReflectsStoredToken(t *testing.T) {
	for token, want := range map[string]bool{"tok": true, "": false} {
		store := &fakeStore{
			get: func(table string, id int, out any) error {
				fillJSON(t, map[string]any{"id": id, "google_refresh_token": token}, out)
				return nil
			},
		}
		w := doJSON(t, googleRouter(store, &fakeCalendar{}), http.MethodGet,
			"/api/google/auth/status?userId=1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, decodeBody(t, w)["isConnected"])
	}
}

func TestDisconnectClearsToken(t *testing.T) {
	var cleared map[string]any
	store := &fakeStore{
		update: func(table string, id int, fields, out any) error {
			assert.Equal(t, models.UsersTable, table)
			assert.Equal(t, 1, id)
			cleared = fields.(map[string]any)
			return nil
		},
	}

	w := doJSON(t, googleRouter(store, &fakeCalendar{}), http.MethodPost,
		"/api/google/auth/disconnect", `{"userId": 1}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, cleared, "google_refresh_token")
	assert.Nil(t, cleared["google_refresh_token"])
}
