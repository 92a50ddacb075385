// Package client provides the HTTP session used to talk to an
// AYON-compatible server, plus the bounded polling helpers built on it.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ynput/ayon-test-fixtures/config"
	"github.com/ynput/ayon-test-fixtures/framework"
)

// Session is a thin wrapper around http.Client that attaches the API key
// header to every request. It has no retry or backoff logic of its own;
// callers interpret status codes themselves.
type Session struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     framework.Logger
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON decodes the response body into v.
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// HasJSONField reports whether the response body is a JSON object
// containing the named key.
func (r *Response) HasJSONField(name string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &fields); err != nil {
		return false
	}
	_, ok := fields[name]
	return ok
}

// NewSession creates a Session for the configured server. An empty API key
// is carried as-is and will fail at request time, not here.
func NewSession(cfg config.Config, logger framework.Logger) *Session {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Session{
		baseURL:    cfg.ServerURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (s *Session) do(method, path string, contentType string, body io.Reader) (*Response, error) {
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", s.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("%s %s -> %d", method, path, resp.StatusCode)
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

func (s *Session) doJSON(method, path string, payload interface{}) (*Response, error) {
	if payload == nil {
		return s.do(method, path, "", nil)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return s.do(method, path, "application/json", bytes.NewReader(data))
}

// Get issues a GET request to the given API path.
func (s *Session) Get(path string) (*Response, error) {
	return s.do(http.MethodGet, path, "", nil)
}

// Post issues a POST request with an optional JSON payload.
func (s *Session) Post(path string, payload interface{}) (*Response, error) {
	return s.doJSON(http.MethodPost, path, payload)
}

// Put issues a PUT request with an optional JSON payload.
func (s *Session) Put(path string, payload interface{}) (*Response, error) {
	return s.doJSON(http.MethodPut, path, payload)
}

// Delete issues a DELETE request.
func (s *Session) Delete(path string) (*Response, error) {
	return s.do(http.MethodDelete, path, "", nil)
}

// PostMultipart issues a POST request with a multipart form body
// consisting of the given form fields plus one file part.
func (s *Session) PostMultipart(
	path string,
	fields map[string]string,
	fileField, fileName string,
	file io.Reader,
) (*Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copying upload body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return s.do(http.MethodPost, path, w.FormDataContentType(), &buf)
}
