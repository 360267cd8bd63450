package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scamwatch/security-api/dashboard"
	"scamwatch/security-api/security"
	"scamwatch/security-api/storage"
	"scamwatch/security-api/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  string          `json:"errors"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

func newTestAPI(t *testing.T) *API {
	t.Helper()
	return newTestAPIWithSecret(t, "test-secret")
}

func newTestAPIWithSecret(t *testing.T, secret string) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploads, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	return New(
		store.NewMemoryUserStore(),
		store.NewMemoryAlertStore(),
		store.NewMemoryReportStore(),
		security.NewTokenService(secret, time.Hour),
		dashboard.NewService(),
		uploads,
	)
}

func doJSON(t *testing.T, a *API, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}

	return w, env
}

func registerAndLogin(t *testing.T, a *API, username, email, password string) string {
	t.Helper()

	w, _ := doJSON(t, a, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)

	return data.Token
}

type multipartBody struct {
	buf         bytes.Buffer
	contentType string
}

func buildMultipart(t *testing.T, fields map[string]string, files map[string][]string) *multipartBody {
	t.Helper()

	m := &multipartBody{}
	w := multipart.NewWriter(&m.buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	for field, names := range files {
		for _, name := range names {
			fw, err := w.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = fw.Write([]byte("file-content"))
			require.NoError(t, err)
		}
	}

	require.NoError(t, w.Close())
	m.contentType = w.FormDataContentType()
	return m
}

func doMultipart(t *testing.T, a *API, path string, m *multipartBody) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, &m.buf)
	req.Header.Set("Content-Type", m.contentType)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}

	return w, env
}
