package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tawatchai-03/clinic-frontend/clinicapi"
	"github.com/Tawatchai-03/clinic-frontend/services/profile"
	"github.com/Tawatchai-03/clinic-frontend/services/session"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

func newAuthRig(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, *session.Store, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := httptest.NewServer(upstream)
	t.Cleanup(ts.Close)

	mr := miniredis.RunT(t)
	store := session.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	api := clinicapi.NewClient(ts.URL)
	h := NewAuthHandler(api, profile.NewService(api), store)

	r := gin.New()
	r.POST("/api/auth/register", h.RegisterHandler)
	r.POST("/api/auth/login", h.LoginHandler)
	return r, store, ts
}

func tokenClaims(t *testing.T, token string) (sub, sid string) {
	t.Helper()
	sub, sid, err := utils.ExtractSessionFromToken(token)
	require.NoError(t, err)
	return sub, sid
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginCreatesSessionAndRoutesByRole(t *testing.T) {
	r, store, _ := newAuthRig(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/api/login", req.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 42, "role": "doctor", "firstName": "Anya", "lastName": "Otero",
			"email": "anya@example.com", "token": "backend-token",
		})
	})

	w := postJSON(r, "/api/auth/login", `{"email":"anya@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token    string `json:"token"`
		Redirect string `json:"redirect"`
		Session  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Doctors land on their dashboard, patients on search.
	assert.Equal(t, "/doctor", resp.Redirect)
	assert.Equal(t, "42", resp.Session.ID)
	assert.NotEmpty(t, resp.Token)

	// The minted token resolves to a stored session.
	sub, sid := tokenClaims(t, resp.Token)
	assert.Equal(t, "42", sub)
	sess, err := store.Get(sid)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", sess.Token)
}

func TestLoginSurfacesBackendRejection(t *testing.T) {
	r, _, _ := newAuthRig(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid email or password"}`))
	})

	w := postJSON(r, "/api/auth/login", `{"email":"x@example.com","password":"wrong1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestRegisterValidatesBeforeSubmitting(t *testing.T) {
	upstreamHits := 0
	r, _, _ := newAuthRig(t, func(w http.ResponseWriter, req *http.Request) {
		upstreamHits++
		w.WriteHeader(http.StatusCreated)
	})

	// Too-short password is blocked locally.
	w := postJSON(r, "/api/auth/register", `{"role":"patient","password":"123","confirm":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, upstreamHits)

	// A valid form goes through and points at the login screen.
	body := `{
		"role":"patient","firstName":"Mali","lastName":"Srisuk",
		"email":"mali@example.com","password":"secret1","confirm":"secret1",
		"birthDate":"1995-04-12","gender":"female",
		"address":{"line1":"1 Main Rd","district":"Bang Rak","province":"Bangkok","postalCode":"10500"}
	}`
	w = postJSON(r, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, upstreamHits)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
}

func TestMalformedBodyReturnsStandardEnvelope(t *testing.T) {
	upstreamHits := 0
	r, _, _ := newAuthRig(t, func(w http.ResponseWriter, req *http.Request) {
		upstreamHits++
	})

	w := postJSON(r, "/api/auth/login", `{"email": "broken`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, upstreamHits)

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid request", resp.Message)
	assert.NotEmpty(t, resp.Details)
}
