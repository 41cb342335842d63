package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "company-1", "company_admin", "orderdesk", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, companyID, role, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "company-1", companyID)
	assert.Equal(t, "company_admin", role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "", "normal", "orderdesk", 60)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("other-secret", token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "", "normal", "orderdesk", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, _, _, err := jwt.Parse(secret, "not.a.token")
	assert.Error(t, err)
}

func TestGenerateRequiresSecret(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "", "normal", "orderdesk", 60)
	assert.Error(t, err)
}
