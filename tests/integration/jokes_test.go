//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/dadlab/jokeboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submitJoke submits a joke as the client's current user and returns
// the new joke's ID.
func submitJoke(t *testing.T, client *testutil.Client, content string) string {
	t.Helper()

	resp, err := client.POST("/api/v1/jokes/submit", map[string]string{
		"content": content,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Success bool   `json:"success"`
		JokeID  string `json:"joke_id"`
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.True(t, result.Success)
	require.NotEmpty(t, result.JokeID)
	return result.JokeID
}

func TestJokes_Submit_Moderate_Random_Flow(t *testing.T) {
	userClient := newTestClient(t)
	userEmail := testutil.RandomEmail()
	registerUser(t, userClient, userEmail, "password123", "")
	userClient.LoginAs(t, userEmail, "password123")

	content := testutil.RandomJoke()
	jokeID := submitJoke(t, userClient, content)

	modClient := newTestClient(t)
	modEmail := testutil.RandomEmail()
	registerUser(t, modClient, modEmail, "password123", "MODERATOR")
	modClient.LoginAs(t, modEmail, "password123")

	resp, err := modClient.PUT("/api/v1/jokes/moderate", map[string]string{
		"joke_id":    jokeID,
		"new_status": "APPROVED",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var moderateResult struct {
		Message         string `json:"message"`
		ModeratedJokeID string `json:"moderated_joke_id"`
		NewStatus       string `json:"new_status"`
	}
	testutil.DecodeJSON(t, resp, &moderateResult)
	assert.Equal(t, "Dad joke has been successfully moderated.", moderateResult.Message)
	assert.Equal(t, jokeID, moderateResult.ModeratedJokeID)
	assert.Equal(t, "APPROVED", moderateResult.NewStatus)

	// Random is public and only serves approved jokes.
	anonClient := newTestClient(t)
	resp, err = anonClient.GET("/api/v1/jokes/random")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var joke struct {
		ID      string `json:"id"`
		Content string `json:"content"`
		Status  string `json:"status"`
	}
	testutil.DecodeJSON(t, resp, &joke)
	assert.Equal(t, "APPROVED", joke.Status)
	assert.NotEmpty(t, joke.Content)
}

func TestJokes_Submit_RequiresAuth(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/jokes/submit", map[string]string{
		"content": "anonymous joke",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestJokes_Submit_EmptyContent(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()
	registerUser(t, client, email, "password123", "")
	client.LoginAs(t, email, "password123")

	resp, err := client.POST("/api/v1/jokes/submit", map[string]string{
		"content": "",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestJokes_Moderate_ForbiddenForUser(t *testing.T) {
	userClient := newTestClient(t)
	email := testutil.RandomEmail()
	registerUser(t, userClient, email, "password123", "")
	userClient.LoginAs(t, email, "password123")

	jokeID := submitJoke(t, userClient, testutil.RandomJoke())

	resp, err := userClient.PUT("/api/v1/jokes/moderate", map[string]string{
		"joke_id":    jokeID,
		"new_status": "APPROVED",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestJokes_Moderate_AdminAllowed(t *testing.T) {
	userClient := newTestClient(t)
	email := testutil.RandomEmail()
	registerUser(t, userClient, email, "password123", "")
	userClient.LoginAs(t, email, "password123")
	jokeID := submitJoke(t, userClient, testutil.RandomJoke())

	adminClient := newTestClient(t)
	adminEmail := testutil.RandomEmail()
	registerUser(t, adminClient, adminEmail, "password123", "ADMIN")
	adminClient.LoginAs(t, adminEmail, "password123")

	resp, err := adminClient.PUT("/api/v1/jokes/moderate", map[string]string{
		"joke_id":    jokeID,
		"new_status": "REJECTED",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestJokes_Moderate_UnknownJoke(t *testing.T) {
	modClient := newTestClient(t)
	modEmail := testutil.RandomEmail()
	registerUser(t, modClient, modEmail, "password123", "MODERATOR")
	modClient.LoginAs(t, modEmail, "password123")

	resp, err := modClient.PUT("/api/v1/jokes/moderate", map[string]string{
		"joke_id":    "00000000-0000-0000-0000-000000000000",
		"new_status": "APPROVED",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestJokes_Moderate_InvalidStatus(t *testing.T) {
	modClient := newTestClient(t)
	modEmail := testutil.RandomEmail()
	registerUser(t, modClient, modEmail, "password123", "MODERATOR")
	modClient.LoginAs(t, modEmail, "password123")

	resp, err := modClient.PUT("/api/v1/jokes/moderate", map[string]string{
		"joke_id":    "00000000-0000-0000-0000-000000000000",
		"new_status": "PUBLISHED",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestJokes_List_FiltersByStatus(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()
	registerUser(t, client, email, "password123", "")
	client.LoginAs(t, email, "password123")

	submitJoke(t, client, testutil.RandomJoke())

	resp, err := client.GET("/api/v1/jokes?status=PENDING&limit=100")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data)
	for _, j := range result.Data {
		assert.Equal(t, "PENDING", j.Status)
	}
}

func TestJokes_List_MineOnly(t *testing.T) {
	firstClient := newTestClient(t)
	firstEmail := testutil.RandomEmail()
	registerUser(t, firstClient, firstEmail, "password123", "")
	firstClient.LoginAs(t, firstEmail, "password123")
	ownJokeID := submitJoke(t, firstClient, testutil.RandomJoke())

	otherClient := newTestClient(t)
	otherEmail := testutil.RandomEmail()
	registerUser(t, otherClient, otherEmail, "password123", "")
	otherClient.LoginAs(t, otherEmail, "password123")
	submitJoke(t, otherClient, testutil.RandomJoke())

	resp, err := firstClient.GET("/api/v1/jokes?mine=true&limit=100")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.Len(t, result.Data, 1)
	assert.Equal(t, ownJokeID, result.Data[0].ID)
}

func TestJokes_List_InvalidLimit(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()
	registerUser(t, client, email, "password123", "")
	client.LoginAs(t, email, "password123")

	resp, err := client.GET("/api/v1/jokes?limit=500")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestJokes_Random_NeverErrors(t *testing.T) {
	// Even with no approved jokes the endpoint answers 200: the pool
	// falls back to a canned joke rather than a 404.
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/jokes/random")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var joke struct {
		Content string `json:"content"`
		Status  string `json:"status"`
	}
	testutil.DecodeJSON(t, resp, &joke)
	assert.NotEmpty(t, joke.Content)
	assert.Equal(t, "APPROVED", joke.Status)
}
