package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loantrack/models"
	"loantrack/utils"
)

type AuthController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewAuthController(db *gorm.DB, logger *logrus.Logger) *AuthController {
	return &AuthController{DB: db, Logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=6,max=255,email"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password produce the same message so accounts cannot be enumerated.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var user models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid email or password.", nil)
		}
		return err
	}

	if err := utils.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid email or password.", nil)
	}

	token, err := utils.GenerateAuthToken(&user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"token": token})
}
