package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carshare/config"
	"carshare/infras/jwt"
)

const secret = "test-secret"

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = secret
	cfg.JWT.Issuer = "carshare-accounts"

	return cfg
}

func sign(t *testing.T, claims jwt.Claims, method gojwt.SigningMethod, key any) string {
	t.Helper()

	token, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func validClaims() jwt.Claims {
	now := time.Now()

	return jwt.Claims{
		UserID:  "user-1",
		TokenID: "token-1",
		Type:    jwt.AccessToken,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "carshare-accounts",
			Subject:   "user-1",
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestValidateToken(t *testing.T) {
	svc := jwt.New(newConfig())

	expired := validClaims()
	expired.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongType := validClaims()
	wrongType.Type = "refresh"

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid", token: sign(t, validClaims(), gojwt.SigningMethodHS256, []byte(secret))},
		{name: "expired", token: sign(t, expired, gojwt.SigningMethodHS256, []byte(secret)), wantErr: jwt.ErrExpiredToken},
		{name: "wrong secret", token: sign(t, validClaims(), gojwt.SigningMethodHS256, []byte("other")), wantErr: jwt.ErrInvalidToken},
		{name: "wrong algorithm", token: sign(t, validClaims(), gojwt.SigningMethodHS512, []byte(secret)), wantErr: jwt.ErrInvalidToken},
		{name: "wrong issuer", token: sign(t, wrongIssuer, gojwt.SigningMethodHS256, []byte(secret)), wantErr: jwt.ErrInvalidToken},
		{name: "refresh token", token: sign(t, wrongType, gojwt.SigningMethodHS256, []byte(secret)), wantErr: jwt.ErrInvalidClaim},
		{name: "garbage", token: "not-a-token", wantErr: jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.UserID)
			assert.Equal(t, "token-1", claims.TokenID)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = jwt.ExtractTokenFromHeader("")
	require.ErrorIs(t, err, jwt.ErrMissingHeader)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	require.ErrorIs(t, err, jwt.ErrInvalidHeader)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	require.ErrorIs(t, err, jwt.ErrInvalidHeader)
}
