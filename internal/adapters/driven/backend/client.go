// Package backend provides the HTTP gateway to the RAG server.
// It implements driven.BackendGateway against the server's REST
// contract: /upload, /chat, /models, /documents.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.BackendGateway = (*Client)(nil)

// Default configuration values.
const (
	// DefaultTimeout bounds a single request. Chat turns run inference
	// server-side, so the bound is generous.
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the server base endpoint (default: http://localhost:8000).
	BaseURL string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration
}

// Client provides access to the RAG server over HTTP.
//
// The client carries no state beyond its base endpoint: the server is
// stateless across turns, so every argument travels explicitly on each
// call. The client performs no retries.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultServerURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// BaseURL returns the configured server endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// wireMessage is the /chat message format.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the POST /chat request format.
type chatRequest struct {
	Message  string        `json:"message"`
	Provider string        `json:"provider"`
	Model    string        `json:"model,omitempty"`
	History  []wireMessage `json:"history"`
}

// wireSource is a retrieval citation in the /chat response.
type wireSource struct {
	Source         string `json:"source"`
	Page           *int   `json:"page,omitempty"`
	ContentSnippet string `json:"content_snippet"`
}

// chatResponse is the POST /chat response format.
type chatResponse struct {
	Response string       `json:"response"`
	Sources  []wireSource `json:"sources"`
}

// uploadResponse is the POST /upload response format.
type uploadResponse struct {
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
}

// modelsResponse is the GET /models response format.
type modelsResponse struct {
	Models []string `json:"models"`
}

// wireDocument is one record in the GET /documents response.
type wireDocument struct {
	DocumentID     string `json:"document_id"`
	Source         string `json:"source"`
	Chunks         int    `json:"chunks"`
	EmbeddingModel string `json:"embedding_model"`
}

// documentsResponse is the GET /documents response format.
type documentsResponse struct {
	Documents []wireDocument `json:"documents"`
}

// Upload sends a file for ingestion as a multipart form.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (domain.UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.UploadResult{}, &NetworkError{Op: "upload", Message: "build form", Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return domain.UploadResult{}, &NetworkError{Op: "upload", Message: "read file", Err: err}
	}
	if err := mw.Close(); err != nil {
		return domain.UploadResult{}, &NetworkError{Op: "upload", Message: "finish form", Err: err}
	}

	var resp uploadResponse
	if err := c.do(ctx, "upload", http.MethodPost, "/upload", &body, mw.FormDataContentType(), &resp); err != nil {
		return domain.UploadResult{}, err
	}

	return domain.UploadResult{Filename: resp.Filename, Chunks: resp.Chunks}, nil
}

// SendMessage submits one chat turn.
func (c *Client) SendMessage(ctx context.Context, req domain.TurnRequest) (domain.TurnReply, error) {
	// History must serialise as an array, never null.
	history := make([]wireMessage, 0, len(req.History))
	for _, msg := range req.History {
		history = append(history, wireMessage{Role: string(msg.Role), Content: msg.Content})
	}

	reqBody := chatRequest{
		Message:  req.Message,
		Provider: req.Provider.String(),
		Model:    req.Model,
		History:  history,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return domain.TurnReply{}, &NetworkError{Op: "chat", Message: "marshal request", Err: err}
	}

	var resp chatResponse
	if err := c.do(ctx, "chat", http.MethodPost, "/chat", bytes.NewReader(jsonBody), "application/json", &resp); err != nil {
		return domain.TurnReply{}, err
	}

	reply := domain.TurnReply{Response: resp.Response}
	for _, src := range resp.Sources {
		reply.Sources = append(reply.Sources, domain.SourceRef{
			Source:  src.Source,
			Page:    src.Page,
			Snippet: src.ContentSnippet,
		})
	}
	return reply, nil
}

// ListModels returns the locally available model names.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var resp modelsResponse
	if err := c.do(ctx, "models", http.MethodGet, "/models", nil, "", &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// ListDocuments returns the full document catalog.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.DocumentRecord, error) {
	var resp documentsResponse
	if err := c.do(ctx, "documents", http.MethodGet, "/documents", nil, "", &resp); err != nil {
		return nil, err
	}

	docs := make([]domain.DocumentRecord, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		docs = append(docs, domain.DocumentRecord{
			ID:             doc.DocumentID,
			Source:         doc.Source,
			Chunks:         doc.Chunks,
			EmbeddingModel: doc.EmbeddingModel,
		})
	}
	return docs, nil
}

// DeleteDocument removes an ingested document. The acknowledgement
// body is not load-bearing and is discarded.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	path := "/documents/" + url.PathEscape(documentID)
	return c.do(ctx, "delete", http.MethodDelete, path, nil, "", nil)
}

// do performs one HTTP exchange and decodes the JSON response into out.
// Every failure mode is normalised to a *NetworkError.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &NetworkError{Op: op, Message: "create request", Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Message: "send request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: readErr}
		}
		return &NetworkError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(detail)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	return nil
}
