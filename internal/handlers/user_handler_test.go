package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bittenrichard/30-07/internal/baserow"
	"github.com/bittenrichard/30-07/internal/handlers"
	"github.com/bittenrichard/30-07/internal/models"
)

func userRouter(store *fakeStore) *gin.Engine {
	h := handlers.NewUserHandler(store)
	r := gin.New()
	r.PATCH("/api/users/:userId/profile", h.UpdateProfile)
	r.PATCH("/api/users/:userId/password", h.UpdatePassword)
	r.GET("/api/users/:userId", h.GetUser)
	r.POST("/api/upload-avatar", h.UploadAvatar)
	return r
}

func TestUpdatePasswordRejectsShortPassword(t *testing.T) {
	touched := false
	store := &fakeStore{
		update: func(table string, id int, fields, out any) error {
			touched = true
			return nil
		},
	}

	w := doJSON(t, userRouter(store), http.MethodPatch,
		"/api/users/1/password", `{"password": "12345"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A senha deve ter no mínimo 6 caracteres.", decodeBody(t, w)["error"])
	assert.False(t, touched, "short passwords never reach the store")
}

func TestUpdatePasswordPersistsBcryptHash(t *testing.T) {
	var stored map[string]any
	store := &fakeStore{
		update: func(table string, id int, fields, out any) error {
			assert.Equal(t, models.UsersTable, table)
			assert.Equal(t, 1, id)
			stored = fields.(map[string]any)
			return nil
		},
	}

	w := doJSON(t, userRouter(store), http.MethodPatch,
		"/api/users/1/password", `{"password": "nova-senha"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Senha atualizada com sucesso!", decodeBody(t, w)["message"])

	hash, _ := stored["senha_hash"].(string)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "nova-senha", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("nova-senha")))
}

func TestUpdateProfilePatchesOnlyPresentFields(t *testing.T) {
	var stored map[string]any
	store := &fakeStore{
		update: func(table string, id int, fields, out any) error {
			stored = fields.(map[string]any)
			fillJSON(t, map[string]any{"id": id, "nome": "Ana Paula", "Email": "ana@x.com"}, out)
			return nil
		},
	}

	w := doJSON(t, userRouter(store), http.MethodPatch,
		"/api/users/1/profile", `{"nome": "Ana Paula"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"nome": "Ana Paula"}, stored)
}

func TestUpdateProfileRequiresSomeField(t *testing.T) {
	w := doJSON(t, userRouter(&fakeStore{}), http.MethodPatch, "/api/users/1/profile", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nenhum dado para atualizar.", decodeBody(t, w)["error"])
}

func TestGetUserNotFound(t *testing.T) {
	store := &fakeStore{
		get: func(table string, id int, out any) error {
			return &baserow.StoreError{StatusCode: http.StatusNotFound, Message: "ERROR_ROW_DOES_NOT_EXIST"}
		},
	}

	w := doJSON(t, userRouter(store), http.MethodGet, "/api/users/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Usuário não encontrado.", decodeBody(t, w)["error"])
}

func TestUploadAvatarStoresFileThenPatchesProfile(t *testing.T) {
	var patched map[string]any
	store := &fakeStore{
		upload: func(name, contentType string, r io.Reader) (*baserow.UploadedFile, error) {
			assert.Equal(t, "foto.png", name)
			return &baserow.UploadedFile{URL: "https://files/foto.png", Name: "foto.png"}, nil
		},
		update: func(table string, id int, fields, out any) error {
			assert.Equal(t, models.UsersTable, table)
			assert.Equal(t, 1, id)
			patched = fields.(map[string]any)
			fillJSON(t, map[string]any{"id": id, "nome": "Ana", "avatar_url": "https://files/foto.png"}, out)
			return nil
		},
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("userId", "1"))
	fw, err := mw.CreateFormFile("avatar", "foto.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := postForm(t, userRouter(store), "/api/upload-avatar", &buf, mw.FormDataContentType())

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "https://files/foto.png", body["avatar_url"])
	assert.Equal(t, map[string]any{"avatar_url": "https://files/foto.png"}, patched)
}
