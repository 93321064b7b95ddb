package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-ticket/internal/data/entity"
	"movie-ticket/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGate struct {
	principal entity.Principal
	authErr   error
	adminErr  error
	seen      string
}

func (g *stubGate) Authenticate(ctx context.Context, credential string) (entity.Principal, error) {
	g.seen = credential
	return g.principal, g.authErr
}

func (g *stubGate) AuthorizeAdmin(principal entity.Principal) error {
	return g.adminErr
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer abc":   "abc",
		"Bearer  abc ": "abc",
		"Token abc":    "",
		"Bearer":       "",
		"":             "",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, BearerToken(req), header)
	}
}

func TestAuthenticate(t *testing.T) {
	alice := entity.Principal{ID: uuid.New(), Name: "Alice", Role: entity.RoleUser}

	t.Run("principal reaches the handler", func(t *testing.T) {
		gate := &stubGate{principal: alice}
		var got entity.Principal
		h := Authenticate(gate, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = utils.GetPrincipalFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "tok", gate.seen)
		assert.Equal(t, alice, got)
	})

	t.Run("internal failure is a generic 500", func(t *testing.T) {
		gate := &stubGate{authErr: assert.AnError}
		h := Authenticate(gate, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
	})
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "boom")
}
