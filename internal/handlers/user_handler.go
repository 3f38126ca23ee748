package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/bittenrichard/30-07/internal/baserow"
	"github.com/bittenrichard/30-07/internal/dtos"
	"github.com/bittenrichard/30-07/internal/models"
	"github.com/bittenrichard/30-07/internal/services"
)

// UserHandler covers profile reads and mutations.
type UserHandler struct {
	Store services.RowStore
}

func NewUserHandler(store services.RowStore) *UserHandler {
	return &UserHandler{Store: store}
}

// UpdateProfile is PATCH /api/users/:userId/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do usuário é obrigatório."})
		return
	}

	var req dtos.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum dado para atualizar."})
		return
	}

	fields := map[string]any{}
	if req.Nome != nil {
		fields["nome"] = *req.Nome
	}
	if req.Empresa != nil {
		fields["empresa"] = *req.Empresa
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum dado para atualizar."})
		return
	}

	var updated models.UserRow
	if err := h.Store.UpdateRow(c.Request.Context(), models.UsersTable, userID, fields, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível atualizar o perfil."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": profileFromRow(updated)})
}

// UpdatePassword is PATCH /api/users/:userId/password.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do usuário e nova senha são obrigatórios."})
		return
	}

	var req dtos.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do usuário e nova senha são obrigatórios."})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A senha deve ter no mínimo 6 caracteres."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível atualizar a senha. Tente novamente."})
		return
	}

	fields := map[string]any{"senha_hash": string(hash)}
	if err := h.Store.UpdateRow(c.Request.Context(), models.UsersTable, userID, fields, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível atualizar a senha. Tente novamente."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Senha atualizada com sucesso!"})
}

// GetUser is GET /api/users/:userId.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do usuário é obrigatório."})
		return
	}

	var user models.UserRow
	if err := h.Store.GetRow(c.Request.Context(), models.UsersTable, userID, &user); err != nil {
		if baserow.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível buscar o perfil do usuário."})
		return
	}
	c.JSON(http.StatusOK, profileFromRow(user))
}

// UploadAvatar is POST /api/upload-avatar (multipart).
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, err := strconv.Atoi(c.PostForm("userId"))
	file, fileErr := c.FormFile("avatar")
	if err != nil || fileErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo e ID do usuário são obrigatórios."})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível fazer upload do avatar."})
		return
	}
	defer src.Close()

	uploaded, err := h.Store.UploadFile(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível fazer upload do avatar."})
		return
	}

	fields := map[string]any{"avatar_url": uploaded.URL}
	var updated models.UserRow
	if err := h.Store.UpdateRow(c.Request.Context(), models.UsersTable, userID, fields, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível fazer upload do avatar."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "avatar_url": uploaded.URL, "user": profileFromRow(updated)})
}
