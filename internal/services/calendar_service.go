package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"

	"github.com/bittenrichard/30-07/internal/auth"
	"github.com/bittenrichard/30-07/internal/dtos"
	"github.com/bittenrichard/30-07/internal/models"
)

const (
	scheduleTimeZone = "America/Sao_Paulo"

	// Private extended property stamped on every event this backend
	// creates; the orphan sweep keys on it.
	idempotencyProperty = "recrutamento_booking_key"
)

var (
	// ErrCalendarNotLinked means the user has no stored refresh token.
	ErrCalendarNotLinked = errors.New("google calendar not linked")
	// ErrCalendarAPI wraps a failed Google Calendar call.
	ErrCalendarAPI = errors.New("google calendar api error")
)

// CalendarAPI is the slice of Google Calendar the orchestrator uses. The
// refresh token travels as an explicit argument: clients are built per
// call, never mutated in place.
type CalendarAPI interface {
	InsertEvent(ctx context.Context, refreshToken string, ev *calendar.Event) (*calendar.Event, error)
	ListRecentEvents(ctx context.Context, refreshToken string, updatedSince time.Time) ([]*calendar.Event, error)
}

// GoogleCalendarAPI implements CalendarAPI against the real service.
type GoogleCalendarAPI struct {
	conf *oauth2.Config
}

func NewGoogleCalendarAPI(conf *oauth2.Config) *GoogleCalendarAPI {
	return &GoogleCalendarAPI{conf: conf}
}

func (g *GoogleCalendarAPI) InsertEvent(ctx context.Context, refreshToken string, ev *calendar.Event) (*calendar.Event, error) {
	svc, err := auth.CalendarService(ctx, g.conf, refreshToken)
	if err != nil {
		return nil, err
	}
	return svc.Events.Insert("primary", ev).Context(ctx).Do()
}

func (g *GoogleCalendarAPI) ListRecentEvents(ctx context.Context, refreshToken string, updatedSince time.Time) ([]*calendar.Event, error) {
	svc, err := auth.CalendarService(ctx, g.conf, refreshToken)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Events.List("primary").
		UpdatedMin(updatedSince.Format(time.RFC3339)).
		PrivateExtendedProperty(idempotencyProperty + "=*").
		SingleEvents(true).
		MaxResults(250).
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CalendarService orchestrates interview booking: credential lookup,
// calendar insert, local schedule persist, then a detached notification.
// Each step gates the next except the notification, which never blocks
// or fails the booking.
type CalendarService struct {
	store    RowStore
	api      CalendarAPI
	notifier *Notifier
	log      *zap.Logger
}

func NewCalendarService(store RowStore, api CalendarAPI, notifier *Notifier, log *zap.Logger) *CalendarService {
	return &CalendarService{store: store, api: api, notifier: notifier, log: log}
}

// BookInterview creates the Google Calendar event and the local schedule
// record for one interview. Both carry the same idempotency key; the
// insert and the persist are not atomic, and a persist failure leaves an
// orphaned calendar event the sweep will surface.
func (s *CalendarService) BookInterview(ctx context.Context, req dtos.CreateEventRequest) (*calendar.Event, error) {
	var user models.UserRow
	if err := s.store.GetRow(ctx, models.UsersTable, req.UserID, &user); err != nil {
		return nil, fmt.Errorf("load user %d: %w", req.UserID, err)
	}
	if user.GoogleRefreshToken == "" {
		return nil, ErrCalendarNotLinked
	}

	key := uuid.NewString()
	ev := &calendar.Event{
		Summary:     req.EventData.Title,
		Description: buildEventDescription(req.Candidate, req.EventData.Details),
		Start:       &calendar.EventDateTime{DateTime: req.EventData.Start, TimeZone: scheduleTimeZone},
		End:         &calendar.EventDateTime{DateTime: req.EventData.End, TimeZone: scheduleTimeZone},
		Reminders:   &calendar.EventReminders{UseDefault: true, ForceSendFields: []string{"UseDefault"}},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{idempotencyProperty: key},
		},
	}

	created, err := s.api.InsertEvent(ctx, user.GoogleRefreshToken, ev)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCalendarAPI, err)
	}

	fields := map[string]any{
		"Título":            req.EventData.Title,
		"Início":            req.EventData.Start,
		"Fim":               req.EventData.End,
		"Detalhes":          req.EventData.Details,
		"Candidato":         []int{req.Candidate.ID},
		"Vaga":              []int{req.Job.ID},
		"google_event_link": created.HtmlLink,
		"idempotency_key":   key,
	}
	var row models.ScheduleRow
	if err := s.store.CreateRow(ctx, models.SchedulesTable, fields, &row); err != nil {
		s.log.Error("schedule row not persisted; calendar event is orphaned",
			zap.String("idempotency_key", key),
			zap.String("event_link", created.HtmlLink),
			zap.Error(err))
		return nil, fmt.Errorf("persist schedule: %w", err)
	}

	s.notifier.ScheduleCreated(user, req, created.HtmlLink)

	return created, nil
}

func buildEventDescription(c dtos.BookingCandidate, details string) string {
	phone := "Não informado"
	if c.Telefone != nil && *c.Telefone != "" {
		phone = *c.Telefone
	}
	if details == "" {
		details = "Nenhum detalhe adicional."
	}
	return fmt.Sprintf("Entrevista com o candidato: %s.\nTelefone: %s\n\n--- Detalhes adicionais ---\n%s",
		c.Nome, phone, details)
}

// StartOrphanSweep polls for calendar events this backend created whose
// idempotency key has no schedule row. Detection only: the sweep logs,
// it never deletes or recreates anything. The goroutine exits when ctx
// is canceled.
func (s *CalendarService) StartOrphanSweep(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.SweepOrphans(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepOrphans(ctx)
			}
		}
	}()
}

// SweepOrphans checks every calendar-linked user's recent events against
// the schedule table.
func (s *CalendarService) SweepOrphans(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var schedules []models.ScheduleRow
	if err := s.store.ListRows(ctx, models.SchedulesTable, "", &schedules); err != nil {
		s.log.Warn("orphan sweep: list schedules failed", zap.Error(err))
		return
	}
	known := make(map[string]bool, len(schedules))
	for _, row := range schedules {
		if row.IdempotencyKey != "" {
			known[row.IdempotencyKey] = true
		}
	}

	var users []models.UserRow
	if err := s.store.ListRows(ctx, models.UsersTable, "", &users); err != nil {
		s.log.Warn("orphan sweep: list users failed", zap.Error(err))
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	for _, u := range users {
		if u.GoogleRefreshToken == "" {
			continue
		}
		events, err := s.api.ListRecentEvents(ctx, u.GoogleRefreshToken, since)
		if err != nil {
			s.log.Warn("orphan sweep: list calendar events failed",
				zap.Int("user_id", u.ID), zap.Error(err))
			continue
		}
		for _, ev := range events {
			if ev.ExtendedProperties == nil {
				continue
			}
			key := ev.ExtendedProperties.Private[idempotencyProperty]
			if key == "" || known[key] {
				continue
			}
			s.log.Warn("orphaned calendar event: no schedule row for booking",
				zap.Int("user_id", u.ID),
				zap.String("idempotency_key", key),
				zap.String("event_link", ev.HtmlLink))
		}
	}
}
