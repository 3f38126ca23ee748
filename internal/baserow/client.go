package baserow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// StoreError carries the status code and message of a failed Baserow
// call. The gateway never retries; callers decide what a failure means.
type StoreError struct {
	StatusCode int
	Message    string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("baserow: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a Baserow 404.
func IsNotFound(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// UploadedFile is the descriptor returned by the user-file endpoint.
type UploadedFile struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Client is a typed wrapper over the Baserow row API. All row endpoints
// are called with user_field_names so payloads use the visible field
// names rather than field ids.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListRows fetches the rows of a table, optionally filtered (filter is a
// raw query fragment such as "filter__Email__equal=x"), and decodes the
// result envelope into out, a pointer to a slice.
func (c *Client) ListRows(ctx context.Context, table, filter string, out any) error {
	path := fmt.Sprintf("/api/database/rows/table/%s/?user_field_names=true", table)
	if filter != "" {
		path += "&" + strings.TrimPrefix(filter, "?")
	}

	var envelope struct {
		Count   int             `json:"count"`
		Results json.RawMessage `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return err
	}
	if len(envelope.Results) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Results, out)
}

// GetRow fetches a single row by id into out.
func (c *Client) GetRow(ctx context.Context, table string, id int, out any) error {
	path := fmt.Sprintf("/api/database/rows/table/%s/%d/?user_field_names=true", table, id)
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// CreateRow inserts a row and decodes the created row into out.
func (c *Client) CreateRow(ctx context.Context, table string, fields, out any) error {
	path := fmt.Sprintf("/api/database/rows/table/%s/?user_field_names=true", table)
	return c.do(ctx, http.MethodPost, path, fields, out)
}

// UpdateRow patches a row and decodes the updated row into out.
func (c *Client) UpdateRow(ctx context.Context, table string, id int, fields, out any) error {
	path := fmt.Sprintf("/api/database/rows/table/%s/%d/?user_field_names=true", table, id)
	return c.do(ctx, http.MethodPatch, path, fields, out)
}

// DeleteRow removes a row.
func (c *Client) DeleteRow(ctx context.Context, table string, id int) error {
	path := fmt.Sprintf("/api/database/rows/table/%s/%d/", table, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// UploadFile streams a file to Baserow's user-file endpoint and returns
// its stored descriptor.
func (c *Client) UploadFile(ctx context.Context, name, contentType string, r io.Reader) (*UploadedFile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, name)}
	if contentType != "" {
		hdr["Content-Type"] = []string{contentType}
	}
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user-file/upload-file/", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStoreError(resp)
	}

	var uploaded UploadedFile
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &uploaded, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStoreError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newStoreError(resp *http.Response) *StoreError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	// Baserow errors carry {"error": "...", "detail": ...}; fall back to
	// the raw body when the shape is something else.
	var parsed struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
		msg = parsed.Error
	}
	return &StoreError{StatusCode: resp.StatusCode, Message: msg}
}
