package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/bittenrichard/30-07/internal/dtos"
	"github.com/bittenrichard/30-07/internal/models"
	"github.com/bittenrichard/30-07/internal/services"
)

// The OAuth callback runs in a popup; whatever happens, the page only
// has to close itself; the UI polls the status endpoint afterwards.
const closePopupScript = `<script>window.close();</script>`

// GoogleHandler covers the calendar connect/disconnect flow and the
// booking endpoint.
type GoogleHandler struct {
	Store    services.RowStore
	Calendar *services.CalendarService
	OAuth    *oauth2.Config
	Log      *zap.Logger
}

func NewGoogleHandler(store services.RowStore, cal *services.CalendarService, conf *oauth2.Config, log *zap.Logger) *GoogleHandler {
	return &GoogleHandler{Store: store, Calendar: cal, OAuth: conf, Log: log}
}

// Connect is GET /api/google/auth/connect. The user id travels in the
// OAuth state so the callback knows whose token arrived.
func (h *GoogleHandler) Connect(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId é obrigatório"})
		return
	}

	url := h.OAuth.AuthCodeURL(userID,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Callback is GET /api/google/auth/callback (browser redirect).
func (h *GoogleHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" {
		h.Log.Warn("google callback received without authorization code")
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(closePopupScript))
		return
	}

	userID, err := strconv.Atoi(state)
	if err != nil {
		h.Log.Warn("google callback with invalid state", zap.String("state", state))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(closePopupScript))
		return
	}

	token, err := h.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		h.Log.Error("google token exchange failed", zap.Int("user_id", userID), zap.Error(err))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(closePopupScript))
		return
	}

	// Google only returns a refresh token on the consent flow; without
	// one there is nothing to store.
	if token.RefreshToken != "" {
		fields := map[string]any{"google_refresh_token": token.RefreshToken}
		if err := h.Store.UpdateRow(c.Request.Context(), models.UsersTable, userID, fields, nil); err != nil {
			h.Log.Error("storing refresh token failed", zap.Int("user_id", userID), zap.Error(err))
		}
	} else {
		h.Log.Warn("no refresh token received", zap.Int("user_id", userID))
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(closePopupScript))
}

// Disconnect is POST /api/google/auth/disconnect.
func (h *GoogleHandler) Disconnect(c *gin.Context) {
	var req struct {
		UserID int `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId é obrigatório"})
		return
	}

	fields := map[string]any{"google_refresh_token": nil}
	if err := h.Store.UpdateRow(c.Request.Context(), models.UsersTable, req.UserID, fields, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível desconectar a conta Google."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Conta Google desconectada."})
}

// Status is GET /api/google/auth/status.
func (h *GoogleHandler) Status(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId é obrigatório"})
		return
	}

	var user models.UserRow
	if err := h.Store.GetRow(c.Request.Context(), models.UsersTable, userID, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar status da conexão."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isConnected": user.GoogleRefreshToken != ""})
}

// CreateEvent is POST /api/google/calendar/create-event, the booking
// entry point.
func (h *GoogleHandler) CreateEvent(c *gin.Context) {
	var req dtos.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dados insuficientes."})
		return
	}

	created, err := h.Calendar.BookInterview(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrCalendarNotLinked) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Usuário não conectado ao Google Calendar."})
			return
		}
		h.Log.Error("booking failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Falha ao criar evento."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Evento criado com sucesso!", "data": created})
}
