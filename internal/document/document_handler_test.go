package document_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/document"
	documenterrors "go-hrms/internal/document/errors"
	"go-hrms/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Ok      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fakeDocumentService struct {
	document.Service
	uploadFn func(ctx context.Context, caller identity.Caller, in document.UploadInput) (document.DocumentResponse, error)
	openFn   func(ctx context.Context, caller identity.Caller, id string) (document.DocumentFile, error)
	deleteFn func(ctx context.Context, caller identity.Caller, id string) error
}

func (f *fakeDocumentService) Upload(ctx context.Context, caller identity.Caller, in document.UploadInput) (document.DocumentResponse, error) {
	return f.uploadFn(ctx, caller, in)
}
func (f *fakeDocumentService) Open(ctx context.Context, caller identity.Caller, id string) (document.DocumentFile, error) {
	return f.openFn(ctx, caller, id)
}
func (f *fakeDocumentService) Delete(ctx context.Context, caller identity.Caller, id string) error {
	return f.deleteFn(ctx, caller, id)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func multipartRequest(t *testing.T, fields map[string]string, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestDocumentHandler_Upload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		svc := &fakeDocumentService{uploadFn: func(ctx context.Context, caller identity.Caller, in document.UploadInput) (document.DocumentResponse, error) {
			assert.Equal(t, "Contract", in.Title)
			assert.Equal(t, "contract.pdf", in.Filename)
			body, _ := io.ReadAll(in.File)
			assert.Equal(t, "%PDF", string(body))
			return document.DocumentResponse{Title: in.Title}, nil
		}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = multipartRequest(t, map[string]string{"title": "Contract", "type": "contract"}, "contract.pdf", "%PDF")
		identity.SetGin(c, owner)

		document.NewHandler(svc).Upload(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Document uploaded successfully!", decode(t, w).Message)
	})

	t.Run("no file part", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = multipartRequest(t, map[string]string{"title": "Contract"}, "", "")
		identity.SetGin(c, owner)

		document.NewHandler(&fakeDocumentService{}).Upload(c)

		env := decode(t, w)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file part", env.Error.Message)
	})

	t.Run("missing title", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = multipartRequest(t, map[string]string{"type": "contract"}, "contract.pdf", "%PDF")
		identity.SetGin(c, owner)

		document.NewHandler(&fakeDocumentService{}).Upload(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
	})
}

func TestDocumentHandler_Download(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("streams file", func(t *testing.T) {
		svc := &fakeDocumentService{openFn: func(ctx context.Context, caller identity.Caller, id string) (document.DocumentFile, error) {
			assert.Equal(t, "abc", id)
			return document.DocumentFile{Filename: "x_contract.pdf", Content: io.NopCloser(strings.NewReader("%PDF"))}, nil
		}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/documents/download/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		identity.SetGin(c, owner)

		document.NewHandler(svc).Download(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "%PDF", w.Body.String())
		assert.Equal(t, `attachment; filename="x_contract.pdf"`, w.Header().Get("Content-Disposition"))
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeDocumentService{openFn: func(ctx context.Context, caller identity.Caller, id string) (document.DocumentFile, error) {
			return document.DocumentFile{}, documenterrors.ErrDocumentNotFound
		}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/documents/download/abc", nil)
		identity.SetGin(c, owner)

		document.NewHandler(svc).Download(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDocumentHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeDocumentService{deleteFn: func(ctx context.Context, caller identity.Caller, id string) error {
		assert.Equal(t, owner.UserID, caller.UserID)
		return nil
	}}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/documents/delete/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	identity.SetGin(c, owner)

	document.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Document deleted successfully!", decode(t, w).Message)
}
