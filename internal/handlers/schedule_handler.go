package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bittenrichard/30-07/internal/agenda"
	"github.com/bittenrichard/30-07/internal/models"
	"github.com/bittenrichard/30-07/internal/services"
)

// ScheduleHandler lists appointments and serves the agenda projections.
type ScheduleHandler struct {
	Store services.RowStore
}

func NewScheduleHandler(store services.RowStore) *ScheduleHandler {
	return &ScheduleHandler{Store: store}
}

// GetSchedules is GET /api/schedules/:userId. Appointments are filtered
// by their candidate's owning user, not by a direct user link.
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := strconv.Atoi(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do usuário é obrigatório."})
		return
	}

	rows, err := h.fetchSchedules(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Falha ao buscar agendamentos."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": rows})
}

// GetAgenda is GET /api/agenda/:userId?view=&date=&slot=, the precomputed
// month/week/day projection plus the focused day's side panel. A slot
// parameter reproduces a click on an empty calendar slot: it forces the
// day view on that date regardless of the requested view.
func (h *ScheduleHandler) GetAgenda(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := strconv.Atoi(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do usuário é obrigatório."})
		return
	}

	mode, err := agenda.ParseViewMode(c.Query("view"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Visualização inválida."})
		return
	}

	state := agenda.NewState(time.Now())
	state.SetView(mode)
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data inválida."})
			return
		}
		state.Focus = parsed
	}
	if raw := c.Query("slot"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data inválida."})
			return
		}
		state.SelectSlot(parsed)
	}

	rows, err := h.fetchSchedules(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Falha ao buscar agendamentos."})
		return
	}

	events := agenda.FromSchedules(rows)
	c.JSON(http.StatusOK, agenda.Build(events, state.Mode, state.Focus))
}

func (h *ScheduleHandler) fetchSchedules(c *gin.Context, userID string) ([]models.ScheduleRow, error) {
	var rows []models.ScheduleRow
	filter := "filter__Candidato__usuario__link_row_has=" + userID
	if err := h.Store.ListRows(c.Request.Context(), models.SchedulesTable, filter, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
