package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newTestIssuer(ttl time.Duration, at time.Time) *Issuer {
	i := NewIssuer(testSecret, ttl)
	i.now = func() time.Time { return at }
	return i
}

func TestIssuer_IssueAndParse(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := newTestIssuer(time.Hour, issued)

	token, err := i.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := i.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestIssuer_DefaultTTL(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := newTestIssuer(0, issued)

	token, err := i.Issue("user-1")
	require.NoError(t, err)

	claims, err := i.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestIssuer_ExpiredToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := newTestIssuer(time.Hour, issued)

	token, err := i.Issue("user-1")
	require.NoError(t, err)

	i.now = func() time.Time { return issued.Add(2 * time.Hour) }

	_, err = i.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_WrongSecret(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := newTestIssuer(time.Hour, at)

	token, err := i.Issue("user-1")
	require.NoError(t, err)

	other := NewIssuer([]byte("other-secret"), time.Hour)
	other.now = i.now

	_, err = other.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsUnsignedToken(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := newTestIssuer(time.Hour, at)

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(at.Add(time.Hour)),
		},
	})
	unsigned, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = i.Parse(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsEmptyUserID(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := newTestIssuer(time.Hour, at)

	token, err := i.Issue("")
	require.NoError(t, err)

	_, err = i.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_MalformedToken(t *testing.T) {
	i := newTestIssuer(time.Hour, time.Now())

	_, err := i.Parse("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = i.Parse("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer prefix", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase prefix", header: "bearer abc123", want: "abc123"},
		{name: "bare token", header: "abc123", want: "abc123"},
		{name: "missing header", header: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(r))
		})
	}
}
