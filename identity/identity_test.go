package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestMiddleware(t *testing.T) {
	var got string
	var ok bool
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = ContextProvider{}.CurrentPrincipal(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "  jane@example.com ")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", got)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestFromContext_Blank(t *testing.T) {
	_, ok := FromContext(WithPrincipal(context.Background(), "   "))
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{name: "email", id: " jane@example.com ", expected: "jane@example.com"},
		{name: "blank", id: "   ", expected: ""},
		{name: "placeholder", id: PlaceholderUserID, expected: ""},
		{name: "placeholder_padded", id: " user-id ", expected: ""},
		{name: "placeholder_prefix_is_real", id: "user-id-7", expected: "user-id-7"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Normalize(testCase.id))
		})
	}
}

func TestMiddleware_PlaceholderIsAnonymous(t *testing.T) {
	var ok bool
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = ContextProvider{}.CurrentPrincipal(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, PlaceholderUserID)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "jane", DisplayName("jane@example.com"))
	assert.Equal(t, "uid-42", DisplayName("uid-42"))
	assert.Equal(t, "", DisplayName("@example.com"))
}

func TestJWTVerifier_Principal(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{
			name:   "email_claim",
			header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{"email": "jane@example.com", "sub": "uid-1", "exp": exp}),
			want:   "jane@example.com",
		},
		{
			name:   "falls_back_to_sub",
			header: "bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "uid-1", "exp": exp}),
			want:   "uid-1",
		},
		{
			name:   "placeholder_email_falls_back_to_sub",
			header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{"email": PlaceholderUserID, "sub": "uid-2", "exp": exp}),
			want:   "uid-2",
		},
		{
			name:    "missing",
			header:  "",
			wantErr: ErrMissingToken,
		},
		{
			name:    "wrong_secret",
			header:  "Bearer " + signToken(t, "other", jwt.MapClaims{"email": "jane@example.com", "exp": exp}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "expired",
			header:  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"email": "jane@example.com", "exp": jwt.NewNumericDate(time.Now().Add(-time.Hour))}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "no_subject",
			header:  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"exp": exp}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "not_bearer",
			header:  "Basic abc",
			wantErr: ErrInvalidToken,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := verifier.Principal(testCase.header)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}
