package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loantrack/models"
	"loantrack/utils"
)

func TestRegisterIssuesToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := performRequest(t, app, http.MethodPost, "/api/users", map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := resp.Header.Get("x-auth-token")
	require.NotEmpty(t, token)

	claims, err := utils.ParseAuthToken(token)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)

	var body struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	decodeJSON(t, raw, &body)
	assert.Equal(t, claims.UserID, body.ID)
	assert.Equal(t, "New User", body.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "taken@example.com", false)

	resp, _ := performRequest(t, app, http.MethodPost, "/api/users", map[string]string{
		"name":     "Someone Else",
		"email":    "taken@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"short password", map[string]string{"name": "Valid Name", "email": "ok@example.com", "password": "short"}},
		{"bad email", map[string]string{"name": "Valid Name", "email": "not-an-email", "password": "password123"}},
		{"short name", map[string]string{"name": "ab", "email": "ok@example.com", "password": "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := performRequest(t, app, http.MethodPost, "/api/users", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLoginGenericFailureMessage(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "known@example.com", false)

	resp, rawUnknown := performRequest(t, app, http.MethodPost, "/api/auth", map[string]string{
		"email": "unknown@example.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, rawWrong := performRequest(t, app, http.MethodPost, "/api/auth", map[string]string{
		"email": "known@example.com", "password": "wrongpassword",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Same body either way, so accounts cannot be enumerated.
	assert.Equal(t, string(rawUnknown), string(rawWrong))
}

func TestLoginIssuesUsableToken(t *testing.T) {
	app, db := newTestApp(t)
	user, _ := createUser(t, db, "login@example.com", true)

	resp, raw := performRequest(t, app, http.MethodPost, "/api/auth", map[string]string{
		"email": "login@example.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeJSON(t, raw, &body)
	require.NotEmpty(t, body.Token)

	claims, err := utils.ParseAuthToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestWatchlistRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := performRequest(t, app, http.MethodGet, "/api/users/watchlist", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWatchlistAddListRemove(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createUser(t, db, "watcher@example.com", false)
	team := createTeam(t, db, "")
	alpha := createPlayer(t, db, team, "Player Alpha", 10, 1)
	beta := createPlayer(t, db, team, "Player Beta", 5, 1)

	// Initially empty.
	resp, raw := performRequest(t, app, http.MethodGet, "/api/users/watchlist", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var watchlist []models.Player
	decodeJSON(t, raw, &watchlist)
	assert.Empty(t, watchlist)

	// Add both, insertion order preserved.
	resp, _ = performRequest(t, app, http.MethodPost, fmt.Sprintf("/api/users/watchlist/%d", beta.ID), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, raw = performRequest(t, app, http.MethodPost, fmt.Sprintf("/api/users/watchlist/%d", alpha.ID), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeJSON(t, raw, &watchlist)
	require.Len(t, watchlist, 2)
	assert.Equal(t, beta.ID, watchlist[0].ID)
	assert.Equal(t, alpha.ID, watchlist[1].ID)

	// Remove restores the original state.
	resp, raw = performRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/users/watchlist/%d", beta.ID), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, raw, &watchlist)
	require.Len(t, watchlist, 1)
	assert.Equal(t, alpha.ID, watchlist[0].ID)
}

func TestWatchlistDoubleAddRejected(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createUser(t, db, "watcher@example.com", false)
	team := createTeam(t, db, "")
	player := createPlayer(t, db, team, "Watched Player", 10, 1)

	resp, _ := performRequest(t, app, http.MethodPost, fmt.Sprintf("/api/users/watchlist/%d", player.ID), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = performRequest(t, app, http.MethodPost, fmt.Sprintf("/api/users/watchlist/%d", player.ID), nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWatchlistRemoveAbsentRejected(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createUser(t, db, "watcher@example.com", false)
	team := createTeam(t, db, "")
	player := createPlayer(t, db, team, "Unwatched Player", 10, 1)

	resp, _ := performRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/users/watchlist/%d", player.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWatchlistAddUnknownPlayer(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createUser(t, db, "watcher@example.com", false)

	resp, _ := performRequest(t, app, http.MethodPost, "/api/users/watchlist/9999", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWatchlistIsPerUser(t *testing.T) {
	app, db := newTestApp(t)
	_, tokenA := createUser(t, db, "a@example.com", false)
	_, tokenB := createUser(t, db, "b@example.com", false)
	team := createTeam(t, db, "")
	player := createPlayer(t, db, team, "Shared Player", 10, 1)

	resp, _ := performRequest(t, app, http.MethodPost, fmt.Sprintf("/api/users/watchlist/%d", player.ID), nil, tokenA)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := performRequest(t, app, http.MethodGet, "/api/users/watchlist", nil, tokenB)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var watchlist []models.Player
	decodeJSON(t, raw, &watchlist)
	assert.Empty(t, watchlist)
}
