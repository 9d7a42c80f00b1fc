package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/adminfiles/cli/internal/client/models"
	"github.com/adminfiles/cli/internal/client/repositories/tokens"
	"github.com/adminfiles/cli/internal/logging"
)

// Default user-facing messages, used when the server does not supply one.
const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgMeFailed       = "Failed to fetch current user"
	msgListFailed     = "Failed to fetch files"
	msgUploadFailed   = "Upload failed"
	msgDeleteFailed   = "Failed to delete file"
	msgDownloadFailed = "Failed to download file"
)

// HTTPClient talks to the AdminFiles REST backend. All requests go through
// authTransport, which owns the bearer-token and unauthorized-response
// handling.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	transport *authTransport
	log       logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// New builds a client for the backend at baseURL. An empty baseURL produces
// same-origin-relative requests and is only useful behind a proxy; the CLI
// always passes an absolute origin.
func New(baseURL string, store tokens.Store, log logging.Logger) *HTTPClient {
	t := &authTransport{
		base:   http.DefaultTransport,
		tokens: store,
		log:    log,
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Transport: t},
		transport: t,
		log:       log,
	}
}

// SetUnauthorizedHook registers the callback fired after any unauthorized
// response on an authenticated endpoint (the token is already cleared by
// then). Call it once during wiring, before the first request.
func (c *HTTPClient) SetUnauthorizedHook(fn func()) {
	c.transport.onUnauthorized = fn
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, &out, msgLoginFailed); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var out models.User
	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, &out, msgRegisterFailed); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &out, msgMeFailed); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	var out []models.FileRecord
	if err := c.doJSON(ctx, http.MethodGet, "/api/files", nil, &out, msgListFailed); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadFile sends content as a multipart form with a single field named
// "file". The request is buffered before sending; the backend caps uploads,
// so the buffer stays bounded in practice.
func (c *HTTPClient) UploadFile(ctx context.Context, filename string, content io.Reader) (*models.FileRecord, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return nil, fmt.Errorf("read upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "upload request failed", "error", err)
		return nil, newTransportError(msgUploadFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.responseError(resp, msgUploadFailed)
	}

	var rec models.FileRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &rec, nil
}

func (c *HTTPClient) DeleteFile(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/files/%d", id), nil, nil, msgDeleteFailed)
}

func (c *HTTPClient) DownloadFile(ctx context.Context, id int64) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/files/%d/download", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "download request failed", "error", err)
		return nil, newTransportError(msgDownloadFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.responseError(resp, msgDownloadFailed)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download content: %w", err)
	}

	return &Download{
		Filename:    dispositionFilename(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// doJSON dispatches one JSON request. body and out may be nil. Any non-2xx
// response becomes a normalized *Error with defaultMsg as fallback message.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any, defaultMsg string) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return newTransportError(defaultMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(resp, defaultMsg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// responseError extracts the server's {message} body when there is one.
func (c *HTTPClient) responseError(resp *http.Response, defaultMsg string) error {
	var payload struct {
		Message string `json:"message"`
	}
	// Body may be empty or non-JSON; the default message covers that.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload)
	return newError(resp.StatusCode, payload.Message, defaultMsg)
}

// dispositionFilename parses `attachment; filename="..."`. Returns "" when
// the header is absent or malformed.
func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
