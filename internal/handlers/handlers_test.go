package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/bittenrichard/30-07/internal/baserow"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore mirrors the gateway interface with per-method hooks; a call
// without a hook fails so tests catch unexpected store traffic.
type fakeStore struct {
	list   func(table, filter string, out any) error
	get    func(table string, id int, out any) error
	create func(table string, fields, out any) error
	update func(table string, id int, fields, out any) error
	del    func(table string, id int) error
	upload func(name, contentType string, r io.Reader) (*baserow.UploadedFile, error)
}

func (f *fakeStore) ListRows(_ context.Context, table, filter string, out any) error {
	if f.list == nil {
		return errors.New("unexpected ListRows")
	}
	return f.list(table, filter, out)
}

func (f *fakeStore) GetRow(_ context.Context, table string, id int, out any) error {
	if f.get == nil {
		return errors.New("unexpected GetRow")
	}
	return f.get(table, id, out)
}

func (f *fakeStore) CreateRow(_ context.Context, table string, fields, out any) error {
	if f.create == nil {
		return errors.New("unexpected CreateRow")
	}
	return f.create(table, fields, out)
}

func (f *fakeStore) UpdateRow(_ context.Context, table string, id int, fields, out any) error {
	if f.update == nil {
		return errors.New("unexpected UpdateRow")
	}
	return f.update(table, id, fields, out)
}

func (f *fakeStore) DeleteRow(_ context.Context, table string, id int) error {
	if f.del == nil {
		return errors.New("unexpected DeleteRow")
	}
	return f.del(table, id)
}

func (f *fakeStore) UploadFile(_ context.Context, name, contentType string, r io.Reader) (*baserow.UploadedFile, error) {
	if f.upload == nil {
		return nil, errors.New("unexpected UploadFile")
	}
	return f.upload(name, contentType, r)
}

func fillJSON(t *testing.T, src, out any) {
	t.Helper()
	b, err := json.Marshal(src)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
