package uploads_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-codex/internal/clients/uploads"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

type UploadsTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *UploadsTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *UploadsTestSuite) newClient(baseURL string) uploads.Client {
	client, err := uploads.New(&uploads.Config{
		BaseURL:   baseURL,
		AuthToken: "token-123",
	})
	s.Require().NoError(err)
	return client
}

func (s *UploadsTestSuite) TestUpload() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer token-123", r.Header.Get("Authorization"))

		s.Require().NoError(r.ParseMultipartForm(1 << 20))
		file, header, err := r.FormFile("file")
		s.Require().NoError(err)
		defer func() { _ = file.Close() }()

		s.Equal("class_bard_icon.png", header.Filename)
		s.Equal("class-icons", r.FormValue("folder"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url": "https://assets.example.com/class-icons/class_bard_icon.png"}`))
	}))
	defer server.Close()

	out, err := s.newClient(server.URL).Upload(s.ctx, uploads.UploadInput{
		FileName: "class_bard_icon.png",
		Folder:   "class-icons",
		Content:  strings.NewReader("png bytes"),
	})
	s.Require().NoError(err)
	s.Equal("https://assets.example.com/class-icons/class_bard_icon.png", out.URL)
}

func (s *UploadsTestSuite) TestUploadOmitsFolderWhenUnset() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(r.ParseMultipartForm(1 << 20))
		_, ok := r.MultipartForm.Value["folder"]
		s.False(ok, "no folder field when none was requested")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url": "https://assets.example.com/icon.png"}`))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).Upload(s.ctx, uploads.UploadInput{
		FileName: "icon.png",
		Content:  strings.NewReader("x"),
	})
	s.Require().NoError(err)
}

func (s *UploadsTestSuite) TestUploadValidation() {
	client := s.newClient("http://localhost:1")

	_, err := client.Upload(s.ctx, uploads.UploadInput{Content: strings.NewReader("x")})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = client.Upload(s.ctx, uploads.UploadInput{FileName: "icon.png"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *UploadsTestSuite) TestHostError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).Upload(s.ctx, uploads.UploadInput{
		FileName: "icon.png",
		Content:  strings.NewReader("x"),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "status 500")
}

func (s *UploadsTestSuite) TestMissingConfig() {
	_, err := uploads.New(&uploads.Config{})
	s.Error(err)
}

func TestUploadsTestSuite(t *testing.T) {
	suite.Run(t, new(UploadsTestSuite))
}
