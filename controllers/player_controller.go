package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loantrack/models"
	"loantrack/utils"
)

type PlayerController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewPlayerController(db *gorm.DB, logger *logrus.Logger) *PlayerController {
	return &PlayerController{DB: db, Logger: logger}
}

// PlayerInput uses pointers for the numeric fields so a legitimate zero
// passes the required check while a missing field still fails it.
type PlayerInput struct {
	Name              string          `json:"name" validate:"required,min=4,max=50"`
	TeamID            uint            `json:"teamId" validate:"required"`
	LoanDaysRemaining *int            `json:"loanDaysRemaining" validate:"required,gte=0,lte=255"`
	LoanCost          *int            `json:"loanCost" validate:"required,gte=0,lte=255"`
	APIFootballID     *int            `json:"apiFootballId"`
	Statistics        json.RawMessage `json:"statistics"`
	DateOfBirth       *time.Time      `json:"dateOfBirth"`
	Nationality       *string         `json:"nationality"`
}

// GetPlayers returns players sorted by name. An optional `name` query
// parameter narrows the list with a case-insensitive substring match.
func (pc *PlayerController) GetPlayers(c *fiber.Ctx) error {
	query := pc.DB.Order("name")
	if name := c.Query("name"); name != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var players []models.Player
	if err := query.Find(&players).Error; err != nil {
		return err
	}
	return c.JSON(players)
}

func (pc *PlayerController) GetPlayer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Player ID.", nil)
	}

	var player models.Player
	if err := pc.DB.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Player with given ID was not found.", nil)
		}
		return err
	}
	return c.JSON(player)
}

func (pc *PlayerController) CreatePlayer(c *fiber.Ctx) error {
	var input PlayerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var team models.Team
	if err := pc.DB.First(&team, input.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Team name is not valid", nil)
		}
		return err
	}

	player := models.Player{
		Name:              strings.TrimSpace(input.Name),
		Team:              team.Snapshot(),
		LoanDaysRemaining: *input.LoanDaysRemaining,
		LoanCost:          *input.LoanCost,
		APIFootballID:     input.APIFootballID,
		Statistics:        input.Statistics,
		DateOfBirth:       input.DateOfBirth,
		Nationality:       input.Nationality,
	}
	if err := pc.DB.Create(&player).Error; err != nil {
		return err
	}
	return c.JSON(player)
}

func (pc *PlayerController) UpdatePlayer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Player ID.", nil)
	}

	var input PlayerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var team models.Team
	if err := pc.DB.First(&team, input.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Team details provided", nil)
		}
		return err
	}

	var player models.Player
	if err := pc.DB.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Player ID not found", nil)
		}
		return err
	}

	player.Name = strings.TrimSpace(input.Name)
	player.Team = team.Snapshot()
	player.LoanDaysRemaining = *input.LoanDaysRemaining
	player.LoanCost = *input.LoanCost
	player.APIFootballID = input.APIFootballID
	player.Statistics = input.Statistics
	player.DateOfBirth = input.DateOfBirth
	player.Nationality = input.Nationality
	if err := pc.DB.Save(&player).Error; err != nil {
		return err
	}
	return c.JSON(player)
}

func (pc *PlayerController) DeletePlayer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Player ID.", nil)
	}

	var player models.Player
	if err := pc.DB.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Player ID not found", nil)
		}
		return err
	}

	if err := pc.DB.Delete(&player).Error; err != nil {
		return err
	}
	return c.JSON(player)
}
