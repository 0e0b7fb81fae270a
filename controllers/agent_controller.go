package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loantrack/models"
	"loantrack/utils"
)

type AgentController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewAgentController(db *gorm.DB, logger *logrus.Logger) *AgentController {
	return &AgentController{DB: db, Logger: logger}
}

type AgentInput struct {
	Name      string `json:"name" validate:"required,min=4,max=50"`
	Email     string `json:"email" validate:"required,min=5,max=255,email"`
	Phone     string `json:"phone" validate:"required,min=4,max=50"`
	IsPremium bool   `json:"isPremium"`
}

func (ac *AgentController) GetAgents(c *fiber.Ctx) error {
	var agents []models.Agent
	if err := ac.DB.Order("name").Find(&agents).Error; err != nil {
		return err
	}
	return c.JSON(agents)
}

func (ac *AgentController) GetAgent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Agent ID.", nil)
	}

	var agent models.Agent
	if err := ac.DB.First(&agent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "The agent with the given ID was not found.", nil)
		}
		return err
	}
	return c.JSON(agent)
}

func (ac *AgentController) CreateAgent(c *fiber.Ctx) error {
	var input AgentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if err := utils.ValidateEmailFormat(input.Email); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	agent := models.Agent{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		IsPremium: input.IsPremium,
	}
	if err := ac.DB.Create(&agent).Error; err != nil {
		return err
	}
	return c.JSON(agent)
}

func (ac *AgentController) UpdateAgent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Agent ID.", nil)
	}

	var input AgentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if err := utils.ValidateEmailFormat(input.Email); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var agent models.Agent
	if err := ac.DB.First(&agent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "The agent with the given ID was not found.", nil)
		}
		return err
	}

	agent.Name = input.Name
	agent.Email = input.Email
	agent.Phone = input.Phone
	agent.IsPremium = input.IsPremium
	if err := ac.DB.Save(&agent).Error; err != nil {
		return err
	}
	return c.JSON(agent)
}

func (ac *AgentController) DeleteAgent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Agent ID.", nil)
	}

	var agent models.Agent
	if err := ac.DB.First(&agent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "The agent with the given ID was not found.", nil)
		}
		return err
	}

	if err := ac.DB.Delete(&agent).Error; err != nil {
		return err
	}
	return c.JSON(agent)
}
