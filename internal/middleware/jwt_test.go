//go:build !integration

package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{"with expiry", time.Minute},
		{"without expiry", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := IssueToken(testSecret, "warehouse-1", tt.ttl)
			require.NoError(t, err)

			subject, err := VerifyToken(testSecret, token)

			require.NoError(t, err)
			assert.Equal(t, "warehouse-1", subject)
		})
	}
}

func TestVerifyToken_Rejects(t *testing.T) {
	good, err := IssueToken(testSecret, "alice", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		secret  []byte
		token   string
		wantErr error
	}{
		{name: "wrong secret", secret: []byte("other"), token: good, wantErr: jwt.ErrTokenSignatureInvalid},
		{name: "garbage", secret: testSecret, token: "not.a.token", wantErr: jwt.ErrTokenMalformed},
		{
			name:    "no subject",
			secret:  testSecret,
			token:   signed(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: "parcel-service"}),
			wantErr: ErrMissingSubject,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(tt.secret, tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
