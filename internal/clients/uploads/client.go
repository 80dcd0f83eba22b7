// Package uploads pushes authored artwork (class icons, race portraits) to
// the asset host.
package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// maxUploadBytes caps a single upload. Anything larger is author error.
const maxUploadBytes = 8 << 20

// Client defines the interface for asset uploads
type Client interface {
	// Upload sends a file and returns its public URL
	// Returns errors.InvalidArgument for missing names or oversized content
	// Returns errors.Unavailable when the asset host cannot be reached
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}

// UploadInput defines the input for uploading an asset
type UploadInput struct {
	// FileName as it should be stored, e.g. "class_bard_icon.png"
	FileName string
	// Folder on the asset host, e.g. "class-icons". Empty means the host's
	// default folder.
	Folder string
	// Content is the file data
	Content io.Reader
}

// UploadOutput defines the output for uploading an asset
type UploadOutput struct {
	// URL where the asset is now served
	URL string
}

// Config contains configuration options for the uploads client.
type Config struct {
	// BaseURL of the asset host upload endpoint
	BaseURL string
	// AuthToken sent as a bearer token (optional)
	AuthToken string
	// HTTPTimeout for upload requests (optional, defaults to 60 seconds)
	HTTPTimeout time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		return errors.InvalidArgument("base URL cannot be empty")
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 60 * time.Second
	}
	return nil
}

type client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// New creates a new uploads client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &client{
		baseURL:    cfg.BaseURL,
		authToken:  cfg.AuthToken,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}, nil
}

func (c *client) Upload(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	if strings.TrimSpace(input.FileName) == "" {
		return nil, errors.InvalidArgument("file name cannot be empty")
	}
	if input.Content == nil {
		return nil, errors.InvalidArgument("content cannot be nil")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", input.FileName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build multipart body")
	}

	written, err := io.Copy(part, io.LimitReader(input.Content, maxUploadBytes+1))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read upload content")
	}
	if written > maxUploadBytes {
		return nil, errors.InvalidArgumentf("upload exceeds %d bytes", maxUploadBytes)
	}
	if input.Folder != "" {
		if err := writer.WriteField("folder", input.Folder); err != nil {
			return nil, errors.Wrapf(err, "failed to build multipart body")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrapf(err, "failed to finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Unavailablef("upload failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Internalf("asset host returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrapf(err, "failed to decode upload response")
	}
	if result.URL == "" {
		return nil, errors.Internal("asset host returned no URL")
	}

	return &UploadOutput{URL: result.URL}, nil
}
