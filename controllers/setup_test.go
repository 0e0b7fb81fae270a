package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loantrack/config"
	"loantrack/middleware"
	"loantrack/models"
	"loantrack/routes"
	"loantrack/utils"
)

// newTestApp builds the full route stack over an in-memory database, the
// same wiring main.go produces.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig.JWTSecret = "test-secret-key"
	config.AppConfig.TokenTTLHours = 1
	config.AppConfig.LoginRateLimit = 10000
	config.AppConfig.Redis.Enabled = false

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled pure in-memory sqlite would hand each connection its own
	// empty database; pin the pool to one connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateDB(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(log),
	})
	routes.SetupRoutes(app, db, log)

	return app, db
}

func performRequest(t *testing.T, app *fiber.App, method, url string, body interface{}, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, raw
}

func decodeJSON(t *testing.T, raw []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out))
}

func createUser(t *testing.T, db *gorm.DB, email string, isAdmin bool) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateAuthToken(&user)
	require.NoError(t, err)

	return &user, token
}

var teamSeq int

func createTeam(t *testing.T, db *gorm.DB, name string) *models.Team {
	t.Helper()

	if name == "" {
		teamSeq++
		name = fmt.Sprintf("Team %03d", teamSeq)
	}
	team := models.Team{Name: name, Coach: "Test Coach"}
	require.NoError(t, db.Create(&team).Error)
	return &team
}

func createPlayer(t *testing.T, db *gorm.DB, team *models.Team, name string, loanDays, loanCost int) *models.Player {
	t.Helper()

	player := models.Player{
		Name:              name,
		Team:              team.Snapshot(),
		LoanDaysRemaining: loanDays,
		LoanCost:          loanCost,
	}
	require.NoError(t, db.Create(&player).Error)
	return &player
}

func createAgent(t *testing.T, db *gorm.DB) *models.Agent {
	t.Helper()

	agent := models.Agent{
		Name:  "Test Agent",
		Email: "agent@example.com",
		Phone: "555-0100",
	}
	require.NoError(t, db.Create(&agent).Error)
	return &agent
}

func createLoan(t *testing.T, db *gorm.DB, player *models.Player, loanDate time.Time) *models.Loan {
	t.Helper()

	loan := models.Loan{
		Player:        player.Snapshot(),
		LoaningTeam:   models.TeamSnapshot{TeamID: player.Team.TeamID, Name: player.Team.Name},
		BorrowingTeam: models.TeamSnapshot{TeamID: player.Team.TeamID + 1, Name: "Borrowing Team"},
		StartDate:     loanDate,
		EndDate:       loanDate.AddDate(0, 0, 30),
		LoanDate:      loanDate,
	}
	require.NoError(t, db.Create(&loan).Error)
	return &loan
}
