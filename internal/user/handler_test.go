package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ratepoint/service-core/internal/auth"
)

func newTestHandler(f *fakeRepo) (*Handler, *auth.Issuer) {
	issuer := auth.NewIssuer([]byte("test-secret"))
	svc := NewService(f, auth.BcryptHasher{Cost: 4}, issuer)
	return NewHandler(svc, zap.NewNop().Sugar()), issuer
}

func TestSignupEndpointIssuesToken(t *testing.T) {
	t.Parallel()

	h, issuer := newTestHandler(&fakeRepo{})

	body := `{"name":"` + validName + `","email":"new@example.com","password":"` + validPass + `","address":"` + validAddress + `"}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var out SignupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "new@example.com", out.User.Email)

	// the token logs the caller in immediately
	claims, err := issuer.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.Subject)

	// the hash never leaves the server
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignupEndpointValidationEnvelope(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(&fakeRepo{})

	body := `{"name":"Shorty","email":"s@example.com","password":"` + validPass + `","address":"` + validAddress + `"}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"name must be 20-60 characters"}`, rec.Body.String())
}

func TestSignupEndpointDuplicateEmailConflict(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	h, _ := newTestHandler(f)

	body := `{"name":"` + validName + `","email":"dup@example.com","password":"` + validPass + `","address":"` + validAddress + `"}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"email already registered"}`, rec.Body.String())
	assert.Len(t, f.users, 1)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(&fakeRepo{})

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"nobody@example.com","password":"Wrong@pass1"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"invalid email or password"}`, rec.Body.String())
}

func TestChangePasswordEndpoint(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	h, _ := newTestHandler(f)

	// create the target account
	body := `{"name":"` + validName + `","email":"pw@example.com","password":"` + validPass + `","address":"` + validAddress + `"}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	targetID := f.users[0].ID

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /users/{id}/password", h.ChangePassword)

	// stranger → 403
	req := httptest.NewRequest(http.MethodPut, "/users/"+targetID+"/password",
		strings.NewReader(`{"password":"Fresh@pass2"}`))
	req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{UserID: "someone-else", Role: auth.RoleNormal}))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// self → 200
	req = httptest.NewRequest(http.MethodPut, "/users/"+targetID+"/password",
		strings.NewReader(`{"password":"Fresh@pass2"}`))
	req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{UserID: targetID, Role: auth.RoleNormal}))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
