package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/infras/jwt"
	"roombook/internal/domains/auth/model/dto"
	"roombook/shared/constant"
	"roombook/shared/timezone"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestUpdateLastLoginRequest(t *testing.T) {
	now := timezone.Now()

	req := dto.UpdateLastLoginRequest{
		LastLogin: now,
	}

	assert.Equal(t, now, req.LastLogin)
}

func TestUpdatePasswordRequest(t *testing.T) {
	hashedPassword := "hashed-new-password"

	req := dto.UpdatePasswordRequest{
		Password: hashedPassword,
	}

	assert.Equal(t, hashedPassword, req.Password)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Name:         "Test User",
		Email:        "Test.User@Example.COM",
		Password:     "plaintext",
		MobileNumber: "+6281234567890",
	}

	user := req.ToUserModel("guest", "hashed-password", "verification-token")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, req.Name, user.Name)
	assert.Equal(t, "test.user@example.com", user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.Equal(t, constant.RoleUser, user.Role)
	assert.False(t, user.IsVerified)
	assert.True(t, user.Active)

	if assert.NotNil(t, user.VerificationToken) {
		assert.Equal(t, "verification-token", *user.VerificationToken)
	}
}
