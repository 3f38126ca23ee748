package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/bittenrichard/30-07/internal/dtos"
	"github.com/bittenrichard/30-07/internal/models"
	"github.com/bittenrichard/30-07/internal/services"
)

const bcryptCost = 10

// AuthHandler is the thin credential store: signup and login backed by
// the users table.
type AuthHandler struct {
	Store services.RowStore
}

func NewAuthHandler(store services.RowStore) *AuthHandler {
	return &AuthHandler{Store: store}
}

// Signup is POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dtos.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" || req.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome, email e senha são obrigatórios."})
		return
	}

	email := strings.ToLower(req.Email)

	var existing []models.UserRow
	filter := "filter__Email__equal=" + url.QueryEscape(email)
	if err := h.Store.ListRows(c.Request.Context(), models.UsersTable, filter, &existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar conta."})
		return
	}
	if len(existing) > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Este e-mail já está cadastrado."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar conta."})
		return
	}

	fields := map[string]any{
		"nome":       req.Nome,
		"empresa":    req.Empresa,
		"telefone":   req.Telefone,
		"Email":      email,
		"senha_hash": string(hash),
	}
	var created models.UserRow
	if err := h.Store.CreateRow(c.Request.Context(), models.UsersTable, fields, &created); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar conta."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": profileFromRow(created)})
}

// Login is POST /api/auth/login. Unknown email and wrong password get
// the same answer.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email e senha são obrigatórios."})
		return
	}

	var users []models.UserRow
	filter := "filter__Email__equal=" + url.QueryEscape(strings.ToLower(req.Email))
	if err := h.Store.ListRows(c.Request.Context(), models.UsersTable, filter, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao fazer login."})
		return
	}
	if len(users) == 0 || users[0].SenhaHash == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha inválidos."})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(users[0].SenhaHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha inválidos."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": profileFromRow(users[0])})
}

func profileFromRow(u models.UserRow) dtos.UserProfile {
	return dtos.UserProfile{
		ID:                 u.ID,
		Nome:               u.Nome,
		Email:              u.Email,
		Empresa:            u.Empresa,
		Telefone:           u.Telefone,
		AvatarURL:          nilIfEmpty(u.AvatarURL),
		GoogleRefreshToken: nilIfEmpty(u.GoogleRefreshToken),
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
