package adapter

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /register and stores the returned token.
func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) (string, error) {
	var tokenResp models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&tokenResp).
		Post("/register")
	if err != nil {
		return "", fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return h.storeToken(resp, tokenResp)
}

// Login implements [ServerAdapter]. It POSTs the credentials to POST /login
// and stores the returned token.
func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (string, error) {
	var tokenResp models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&tokenResp).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return h.storeToken(resp, tokenResp)
}

func (h *httpServerAdapter) ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post("/reset-password")
	if err != nil {
		return fmt.Errorf("reset password request: %w", err)
	}

	return mapHTTPError(resp)
}

// Upload implements [ServerAdapter]. The content is sent as the multipart
// field "file" of POST /upload.
func (h *httpServerAdapter) Upload(ctx context.Context, fileName string, content io.Reader) (int64, error) {
	var uploadResp models.UploadResponse

	resp, err := h.authedRequest(ctx).
		SetFileReader("file", fileName, content).
		SetResult(&uploadResp).
		Post("/upload")
	if err != nil {
		return 0, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return uploadResp.FileID, nil
}

func (h *httpServerAdapter) List(ctx context.Context) ([]models.UploadedFile, error) {
	var files []models.UploadedFile

	resp, err := h.authedRequest(ctx).
		SetResult(&files).
		Get("/files")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return files, nil
}

// Download implements [ServerAdapter]. The response body is not buffered:
// it is copied straight into dst.
func (h *httpServerAdapter) Download(ctx context.Context, fileID int64, dst io.Writer) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetDoNotParseResponse(true).
		Get("/download/" + strconv.FormatInt(fileID, 10))
	if err != nil {
		return "", fmt.Errorf("download request: %w", err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		raw, _ := io.ReadAll(body)
		return "", mapHTTPStatus(resp.StatusCode(), raw)
	}

	if _, err = io.Copy(dst, body); err != nil {
		return "", fmt.Errorf("download copy: %w", err)
	}

	return fileNameFromDisposition(resp.Header().Get("Content-Disposition")), nil
}

func (h *httpServerAdapter) Delete(ctx context.Context, fileID int64) error {
	resp, err := h.authedRequest(ctx).
		Delete("/delete/" + strconv.FormatInt(fileID, 10))
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", utils.BearerScheme+" "+token)
	}
	return req
}

// storeToken prefers the Authorization response header and falls back to the
// token field of the JSON body.
func (h *httpServerAdapter) storeToken(resp *resty.Response, tokenResp models.TokenResponse) (string, error) {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		token = tokenResp.Token
	}
	if token == "" {
		return "", ErrNoToken
	}

	h.SetToken(token)
	return token, nil
}

func fileNameFromDisposition(header string) string {
	if header == "" {
		return ""
	}

	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}

	return params["filename"]
}
