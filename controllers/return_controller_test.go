package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loantrack/models"
)

func TestProcessReturnComputesFee(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createUser(t, db, "user@example.com", false)
	team := createTeam(t, db, "")
	player := createPlayer(t, db, team, "Returning Player", 5, 2)
	loan := createLoan(t, db, player, time.Now().UTC().AddDate(0, 0, -7))

	resp, raw := performRequest(t, app, http.MethodPost, "/api/returns",
		map[string]uint{"loanId": loan.ID}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var returned models.Loan
	decodeJSON(t, raw, &returned)
	require.NotNil(t, returned.ReturnDate)
	require.NotNil(t, returned.LoanFee)
	assert.Equal(t, 14, *returned.LoanFee)
	assert.WithinDuration(t, time.Now().UTC(), *returned.ReturnDate, 10*time.Second)

	// Both fields persisted together.
	var stored models.Loan
	require.NoError(t, db.First(&stored, loan.ID).Error)
	require.NotNil(t, stored.ReturnDate)
	require.NotNil(t, stored.LoanFee)
	assert.Equal(t, 14, *stored.LoanFee)
}

func TestProcessReturnPartialDayTruncates(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createUser(t, db, "user@example.com", false)
	team := createTeam(t, db, "")
	player := createPlayer(t, db, team, "Quick Return", 5, 3)
	loan := createLoan(t, db, player, time.Now().UTC().Add(-12*time.Hour))

	resp, raw := performRequest(t, app, http.MethodPost, "/api/returns",
		map[string]uint{"loanId": loan.ID}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var returned models.Loan
	decodeJSON(t, raw, &returned)
	require.NotNil(t, returned.LoanFee)
	assert.Equal(t, 0, *returned.LoanFee)
}

func TestProcessReturnTwiceIsConflict(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createUser(t, db, "user@example.com", false)
	team := createTeam(t, db, "")
	player := createPlayer(t, db, team, "Double Return", 5, 2)
	loan := createLoan(t, db, player, time.Now().UTC().AddDate(0, 0, -3))

	resp, _ := performRequest(t, app, http.MethodPost, "/api/returns",
		map[string]uint{"loanId": loan.ID}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first models.Loan
	require.NoError(t, db.First(&first, loan.ID).Error)

	resp, _ = performRequest(t, app, http.MethodPost, "/api/returns",
		map[string]uint{"loanId": loan.ID}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Fields unchanged by the failed second attempt.
	var second models.Loan
	require.NoError(t, db.First(&second, loan.ID).Error)
	require.NotNil(t, second.ReturnDate)
	assert.True(t, first.ReturnDate.Equal(*second.ReturnDate))
	assert.Equal(t, *first.LoanFee, *second.LoanFee)
}

func TestProcessReturnUnknownLoan(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createUser(t, db, "user@example.com", false)

	resp, _ := performRequest(t, app, http.MethodPost, "/api/returns",
		map[string]uint{"loanId": 9999}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProcessReturnMissingLoanID(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createUser(t, db, "user@example.com", false)

	resp, _ := performRequest(t, app, http.MethodPost, "/api/returns",
		map[string]string{}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcessReturnRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := performRequest(t, app, http.MethodPost, "/api/returns",
		map[string]uint{"loanId": 1}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
