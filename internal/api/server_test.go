package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/jask/floorplan/internal/layoutio"
	"github.com/jask/floorplan/internal/service"
	"github.com/jask/floorplan/internal/testdata"
)

type stubGenerator struct {
	doc   []byte
	err   error
	calls []string
}

func (g *stubGenerator) FromText(_ context.Context, description string) ([]byte, error) {
	g.calls = append(g.calls, "text:"+description)
	return g.doc, g.err
}

func (g *stubGenerator) FromImage(_ context.Context, image []byte, mimeType string) ([]byte, error) {
	g.calls = append(g.calls, "image:"+mimeType+":"+string(image))
	return g.doc, g.err
}

func newServer(t *testing.T, gen *stubGenerator, opts Options) *Server {
	t.Helper()
	return New(&service.LayoutService{Generator: gen}, opts)
}

func sampleDoc(t *testing.T) []byte {
	t.Helper()
	doc, err := layoutio.Marshal(testdata.SampleLayout())
	require.NoError(t, err)
	return doc
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var r Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	return r
}

func textRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/retail-layout/generate-from-text", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func imageRequest(t *testing.T, field, mimeType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="plan.png"`)
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/retail-layout/generate-from-image", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestGenerateFromTextReturnsDocument(t *testing.T) {
	gen := &stubGenerator{doc: sampleDoc(t)}
	s := newServer(t, gen, Options{})

	rec := serve(s, textRequest(`{"description":"  a corner grocery  "}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"text:a corner grocery"}, gen.calls)

	layout, err := layoutio.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, "Sample Store Layout", layout.Name)
	require.Len(t, layout.Shelves, 8)
}

func TestGenerateFromTextFallsBackToMock(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream down")}
	s := newServer(t, gen, Options{})

	rec := serve(s, textRequest(`{"description":"Hardware store"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	layout, err := layoutio.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, "Hardware store", layout.Name)
	require.NotNil(t, layout.ShelfByID("mock-shelf-1"))
	require.Equal(t, 75.0, layout.OverallScore)
}

func TestGenerateFromTextValidation(t *testing.T) {
	gen := &stubGenerator{}
	s := newServer(t, gen, Options{})

	for _, body := range []string{`{}`, `{"description":"   "}`} {
		rec := serve(s, textRequest(body))
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		env := decodeEnvelope(t, rec)
		require.False(t, env.Success)
		require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		require.Equal(t, "description is required", env.Message)
	}

	rec := serve(s, textRequest(`{"description":`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_INPUT", decodeEnvelope(t, rec).Error.Code)
	require.Empty(t, gen.calls)
}

func TestGenerateFromImage(t *testing.T) {
	gen := &stubGenerator{doc: sampleDoc(t)}
	s := newServer(t, gen, Options{})

	rec := serve(s, imageRequest(t, "image", "image/png", []byte("png-bytes")))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"image:image/png:png-bytes"}, gen.calls)
}

func TestGenerateFromImageFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("vision unavailable")}
	s := newServer(t, gen, Options{})

	rec := serve(s, imageRequest(t, "image", "image/jpeg", []byte("jpg")))
	require.Equal(t, http.StatusOK, rec.Code)
	layout, err := layoutio.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, "Image-based layout", layout.Name)
}

func TestGenerateFromImageRejectsMissingOrLarge(t *testing.T) {
	gen := &stubGenerator{doc: sampleDoc(t)}
	s := newServer(t, gen, Options{MaxImageBytes: 4})

	rec := serve(s, imageRequest(t, "file", "image/png", []byte("png")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Equal(t, "NO_IMAGE", env.Error.Code)
	require.Equal(t, "No image file provided", env.Message)

	rec = serve(s, imageRequest(t, "image", "image/png", []byte("too large")))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, "IMAGE_TOO_LARGE", decodeEnvelope(t, rec).Error.Code)
	require.Empty(t, gen.calls)
}

func TestHealthz(t *testing.T) {
	s := newServer(t, &stubGenerator{}, Options{})
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.Equal(t, map[string]any{"status": "ok"}, env.Data)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newServer(t, &stubGenerator{}, Options{})
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.False(t, env.Success)
	require.Equal(t, "HTTP_ERROR", env.Error.Code)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	s := newServer(t, &stubGenerator{}, Options{CORSOrigin: "https://plans.example.com"})
	req := httptest.NewRequest(http.MethodOptions, "/api/retail-layout/generate-from-text", nil)
	req.Header.Set(echo.HeaderOrigin, "https://plans.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)

	rec := serve(s, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://plans.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestPreview(t *testing.T) {
	require.Equal(t, "short", preview("short", 50))
	require.Equal(t, "abc...", preview("abcdef", 3))
}
