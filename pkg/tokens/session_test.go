package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestService_IssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewService(testSecret, 0)
	id := uuid.NewString()

	token, exp, err := svc.Issue(id, "a@x.com", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), exp, 2*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.AccountID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestService_Verify_Expired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-8 * 24 * time.Hour)
	issuer := NewService(testSecret, 0).WithClock(func() time.Time { return past })

	token, _, err := issuer.Issue(uuid.NewString(), "a@x.com", "CLIENT")
	require.NoError(t, err)

	_, err = NewService(testSecret, 0).Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Verify_ShortTTLElapsed(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc := NewService(testSecret, 0).WithClock(func() time.Time { return now })
	token, _, err := svc.IssueWithTTL(uuid.NewString(), "a@x.com", "CLIENT", time.Minute)
	require.NoError(t, err)

	later := svc.WithClock(func() time.Time { return now.Add(2 * time.Minute) })
	_, err = later.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestService_Verify_Rejections(t *testing.T) {
	t.Parallel()

	svc := NewService(testSecret, 0)
	good, _, err := svc.Issue(uuid.NewString(), "a@x.com", "CLIENT")
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	require.Len(t, parts, 3)
	tamperedSig := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	otherSecret, _, err := NewService([]byte("other-secret"), 0).Issue(uuid.NewString(), "a@x.com", "ADMIN")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		AccountID: "x",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		kind  error
	}{
		{name: "tampered signature", token: tamperedSig, kind: ErrInvalidSignature},
		{name: "foreign secret", token: otherSecret, kind: ErrInvalidSignature},
		{name: "none algorithm", token: noneAlg, kind: ErrInvalidSignature},
		{name: "garbage", token: "not-a-valid-jwt", kind: ErrMalformed},
		{name: "empty", token: "", kind: ErrMalformed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := svc.Verify(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestService_Verify_MissingAccountID(t *testing.T) {
	t.Parallel()

	svc := NewService(testSecret, 0)
	token, _, err := svc.Issue("", "a@x.com", "CLIENT")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrMalformed)
}
