//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/dadlab/jokeboard/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_Register_Login_Flow(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()
	password := "password123"

	resp, err := client.POST("/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": password,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var registerResult struct {
		Data struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &registerResult)
	assert.Equal(t, email, registerResult.Data.Email)
	assert.Equal(t, "USER", registerResult.Data.Role)
	assert.NotEmpty(t, registerResult.Data.ID)

	resp, err = client.POST("/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResult struct {
		JWTToken string `json:"jwt_token"`
	}
	testutil.DecodeJSON(t, resp, &loginResult)
	require.NotEmpty(t, loginResult.JWTToken)

	// The token carries the email as subject and no expiry claim.
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	_, _, err = parser.ParseUnverified(loginResult.JWTToken, claims)
	require.NoError(t, err)
	assert.Equal(t, email, claims["sub"])
	_, hasExp := claims["exp"]
	assert.False(t, hasExp, "login tokens are issued without an expiry")
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()

	registerUser(t, client, email, "password123", "")

	resp, err := client.POST("/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": "password456",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_Register_RejectsUnknownRole(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/auth/register", map[string]string{
		"email":    testutil.RandomEmail(),
		"password": "password123",
		"role":     "SUPERUSER",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()
	registerUser(t, client, email, "password123", "")

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "wrongpassword",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	wrongPassBody := testutil.ReadBody(t, resp)

	resp, err = client.POST("/api/v1/auth/login", map[string]string{
		"email":    testutil.RandomEmail(),
		"password": "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	unknownBody := testutil.ReadBody(t, resp)

	// Unknown account and wrong password are indistinguishable.
	assert.Equal(t, wrongPassBody, unknownBody)
}

func TestAuth_Me_RequiresAuth(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_Me_ReturnsCurrentUser(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()
	registerUser(t, client, email, "password123", "")
	client.LoginAs(t, email, "password123")

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, email, result.Data.Email)
	assert.Equal(t, "USER", result.Data.Role)
}

func TestAuth_GarbageToken_Rejected(t *testing.T) {
	client := newTestClient(t)
	client.Token = "not.a.token"

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
