package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loantrack/models"
	"loantrack/utils"
)

type TeamController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewTeamController(db *gorm.DB, logger *logrus.Logger) *TeamController {
	return &TeamController{DB: db, Logger: logger}
}

type TeamInput struct {
	Name  string `json:"name" validate:"required,min=4,max=50"`
	Coach string `json:"coach" validate:"required,min=2,max=50"`
}

// GetTeams returns all teams sorted by name.
func (tc *TeamController) GetTeams(c *fiber.Ctx) error {
	var teams []models.Team
	if err := tc.DB.Order("name").Find(&teams).Error; err != nil {
		return err
	}
	return c.JSON(teams)
}

func (tc *TeamController) GetTeam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Team ID.", nil)
	}

	var team models.Team
	if err := tc.DB.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Team ID not found", nil)
		}
		return err
	}
	return c.JSON(team)
}

func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	var input TeamInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	team := models.Team{
		Name:  input.Name,
		Coach: input.Coach,
	}
	if err := tc.DB.Create(&team).Error; err != nil {
		return err
	}
	return c.JSON(team)
}

func (tc *TeamController) UpdateTeam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Team ID.", nil)
	}

	var input TeamInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var team models.Team
	if err := tc.DB.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Team ID not found", nil)
		}
		return err
	}

	team.Name = input.Name
	team.Coach = input.Coach
	if err := tc.DB.Save(&team).Error; err != nil {
		return err
	}
	return c.JSON(team)
}

// DeleteTeam removes a team. Players and loans that embed a snapshot of the
// team keep their copy; deletion does not cascade or rewrite history.
func (tc *TeamController) DeleteTeam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Team ID.", nil)
	}

	var team models.Team
	if err := tc.DB.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Team ID not found", nil)
		}
		return err
	}

	if err := tc.DB.Delete(&team).Error; err != nil {
		return err
	}
	return c.JSON(team)
}
