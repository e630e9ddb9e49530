package auth

import (
	"testing"
	"time"

	"fenix/config"
	"fenix/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{AccessTokenTTL: time.Hour},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()

	token, err := jwtService.GenerateToken(userID, entity.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.SecretKey.Access = "a_completely_different_secret_key_for_testing"
	otherService, err := NewJWTService(otherCfg)
	assert.NoError(t, err)

	token, err := jwtService.GenerateToken(uuid.New(), entity.RoleUser)
	assert.NoError(t, err)

	claims, err := otherService.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MissingSecret(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{}}
	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
}
