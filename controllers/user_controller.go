package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loantrack/models"
	"loantrack/utils"
)

type UserController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewUserController(db *gorm.DB, logger *logrus.Logger) *UserController {
	return &UserController{DB: db, Logger: logger}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=4,max=255"`
	Email    string `json:"email" validate:"required,min=6,max=255,email"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

// Register creates a user and returns a token in the x-auth-token header so
// the client is signed in immediately. The password never leaves this
// handler unhashed.
func (uc *UserController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if err := utils.ValidateEmailFormat(req.Email); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var existing models.User
	if err := uc.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "User already registered.", nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		return err
	}

	token, err := utils.GenerateAuthToken(&user)
	if err != nil {
		return err
	}

	c.Set("x-auth-token", token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// GetWatchlist returns the caller's followed players in insertion order,
// hydrated from the live player rows.
func (uc *UserController) GetWatchlist(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	players, err := uc.loadWatchlist(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(players)
}

// AddToWatchlist follows a player. Adding one already present is an error,
// not a no-op.
func (uc *UserController) AddToWatchlist(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	playerID, err := c.ParamsInt("playerId")
	if err != nil || playerID < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Player ID.", nil)
	}

	var player models.Player
	if err := uc.DB.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Player not found.", nil)
		}
		return err
	}

	var existing models.WatchlistEntry
	if err := uc.DB.Where("user_id = ? AND player_id = ?", user.ID, player.ID).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Player already in watchlist.", nil)
	}

	entry := models.WatchlistEntry{UserID: user.ID, PlayerID: player.ID}
	if err := uc.DB.Create(&entry).Error; err != nil {
		return err
	}

	players, err := uc.loadWatchlist(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(players)
}

// RemoveFromWatchlist unfollows a player. Removing an absent entry is an
// error, not a no-op.
func (uc *UserController) RemoveFromWatchlist(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	playerID, err := c.ParamsInt("playerId")
	if err != nil || playerID < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Player ID.", nil)
	}

	var entry models.WatchlistEntry
	if err := uc.DB.Where("user_id = ? AND player_id = ?", user.ID, playerID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Player not in watchlist.", nil)
		}
		return err
	}

	if err := uc.DB.Delete(&entry).Error; err != nil {
		return err
	}

	players, err := uc.loadWatchlist(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(players)
}

func (uc *UserController) loadWatchlist(userID uint) ([]models.Player, error) {
	var entries []models.WatchlistEntry
	if err := uc.DB.Where("user_id = ?", userID).Order("created_at, id").Find(&entries).Error; err != nil {
		return nil, err
	}

	players := make([]models.Player, 0, len(entries))
	if len(entries) == 0 {
		return players, nil
	}

	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.PlayerID)
	}

	var rows []models.Player
	if err := uc.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Player, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	for _, e := range entries {
		if p, ok := byID[e.PlayerID]; ok {
			players = append(players, p)
		}
	}
	return players, nil
}
