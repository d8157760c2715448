package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/errs"
)

const (
	headerETag        = "ETag"
	headerRequestETag = "X-Firebase-ETag"
	headerIfMatch     = "if-match"
	headerRequestID   = "X-Request-Id"

	maxErrorBody = 4 << 10
)

// Config locates the remote store.
type Config struct {
	// BaseURL is the database root, e.g. https://example-db.firebaseio.com.
	BaseURL string
	// AuthToken is sent as the auth query parameter when set.
	AuthToken string
	// Timeout bounds every request made by the client.
	Timeout time.Duration
}

// RESTStore is a ports.DocumentStore over HTTP.
type RESTStore struct {
	base   *url.URL
	token  string
	client *http.Client
	logger *slog.Logger
}

func NewRESTStore(cfg Config, logger *slog.Logger) (*RESTStore, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("base url")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("base url", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errs.NewValueIsInvalidErrorWithCause("base url", fmt.Errorf("unsupported scheme %q", base.Scheme))
	}

	return &RESTStore{
		base:   base,
		token:  cfg.AuthToken,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("component", "docstore"),
	}, nil
}

func (s *RESTStore) Get(ctx context.Context, path string, dst any) error {
	resp, err := s.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return s.decode(resp, path, dst)
}

func (s *RESTStore) GetETag(ctx context.Context, path string, dst any) (string, bool, error) {
	resp, err := s.do(ctx, http.MethodGet, path, nil, map[string]string{headerRequestETag: "true"})
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	etag := resp.Header.Get(headerETag)
	err = s.decode(resp, path, dst)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return etag, false, nil
	}
	if err != nil {
		return "", false, err
	}
	return etag, true, nil
}

func (s *RESTStore) Put(ctx context.Context, path string, body any) error {
	return s.write(ctx, http.MethodPut, path, body, nil)
}

func (s *RESTStore) PutIfMatch(ctx context.Context, path, etag string, body any) error {
	return s.write(ctx, http.MethodPut, path, body, map[string]string{headerIfMatch: etag})
}

func (s *RESTStore) Patch(ctx context.Context, path string, fields any) error {
	return s.write(ctx, http.MethodPatch, path, fields, nil)
}

func (s *RESTStore) Delete(ctx context.Context, path string) error {
	resp, err := s.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *RESTStore) write(ctx context.Context, method, path string, body any, headers map[string]string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	resp, err := s.do(ctx, method, path, data, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do sends one request and turns transport failures and non-2xx answers into
// *errs.RemoteCallError. On success the caller owns the response body.
func (s *RESTStore) do(
	ctx context.Context,
	method, path string,
	body []byte,
	headers map[string]string,
) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.endpoint(path), reader)
	if err != nil {
		return nil, errs.NewRemoteCallErrorWithCause(method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, kernel.NewUUID().String())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	started := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WarnContext(ctx, "store request failed", "method", method, "path", path, "error", err)
		return nil, errs.NewRemoteCallErrorWithCause(method, path, err)
	}

	s.logger.DebugContext(ctx, "store request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		callErr := errs.NewRemoteCallError(method, path, resp.StatusCode)
		if msg := readError(resp.Body); msg != "" {
			callErr.Cause = errors.New(msg)
		}
		return nil, callErr
	}
	return resp, nil
}

func (s *RESTStore) endpoint(path string) string {
	u := *s.base
	u.Path = u.Path + "/" + strings.Trim(path, "/") + ".json"
	if s.token != "" {
		q := u.Query()
		q.Set("auth", s.token)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (s *RESTStore) decode(resp *http.Response, path string, dst any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewRemoteCallErrorWithCause(http.MethodGet, path, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errs.NewObjectNotFoundError("path", path)
	}
	if dst == nil {
		return nil
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(path, err)
	}
	return nil
}

// readError extracts the message of a {"error": "..."} body.
func readError(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}
