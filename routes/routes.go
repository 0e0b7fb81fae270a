package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loantrack/controllers"
	"loantrack/middleware"
)

// SetupRoutes wires every controller under /api. Read-only team/player/loan
// listing is public; writes require a token, and team mutation additionally
// requires admin.
func SetupRoutes(app *fiber.App, db *gorm.DB, log *logrus.Logger) {
	authController := controllers.NewAuthController(db, log)
	userController := controllers.NewUserController(db, log)
	teamController := controllers.NewTeamController(db, log)
	agentController := controllers.NewAgentController(db, log)
	playerController := controllers.NewPlayerController(db, log)
	loanController := controllers.NewLoanController(db, log)
	returnController := controllers.NewReturnController(db, log)
	healthController := controllers.NewHealthController(db)

	protected := middleware.Protected(db)
	adminOnly := middleware.AdminOnly()
	loginLimiter := middleware.LoginRateLimiter()

	api := app.Group("/api", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	api.Get("/health", healthController.Status)

	// Credential endpoints carry the per-IP limiter.
	api.Post("/auth", loginLimiter, authController.Login)
	users := api.Group("/users")
	users.Post("/", loginLimiter, userController.Register)

	watchlist := users.Group("/watchlist", protected)
	watchlist.Get("/", userController.GetWatchlist)
	watchlist.Post("/:playerId", userController.AddToWatchlist)
	watchlist.Delete("/:playerId", userController.RemoveFromWatchlist)

	teams := api.Group("/teams")
	teams.Get("/", teamController.GetTeams)
	teams.Get("/:id", teamController.GetTeam)
	teams.Post("/", protected, adminOnly, teamController.CreateTeam)
	teams.Put("/:id", protected, adminOnly, teamController.UpdateTeam)
	teams.Delete("/:id", protected, adminOnly, teamController.DeleteTeam)

	agents := api.Group("/agents")
	agents.Get("/", agentController.GetAgents)
	agents.Get("/:id", agentController.GetAgent)
	agents.Post("/", protected, agentController.CreateAgent)
	agents.Put("/:id", protected, agentController.UpdateAgent)
	agents.Delete("/:id", protected, agentController.DeleteAgent)

	players := api.Group("/players")
	players.Get("/", playerController.GetPlayers)
	players.Get("/:id", playerController.GetPlayer)
	players.Post("/", protected, playerController.CreatePlayer)
	players.Put("/:id", protected, playerController.UpdatePlayer)
	players.Delete("/:id", protected, playerController.DeletePlayer)

	loans := api.Group("/loans")
	loans.Get("/", loanController.GetLoans)
	loans.Get("/:id", loanController.GetLoan)
	loans.Post("/", protected, loanController.CreateLoan)

	api.Post("/returns", protected, returnController.ProcessReturn)

	// 404 fallback
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
