package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loantrack/models"
	"loantrack/utils"
)

type ReturnController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewReturnController(db *gorm.DB, logger *logrus.Logger) *ReturnController {
	return &ReturnController{DB: db, Logger: logger}
}

type ReturnInput struct {
	LoanID uint `json:"loanId" validate:"required"`
}

// ProcessReturn closes out a loan: the return date and the accrued fee are
// computed and persisted together, exactly once per loan. A second return
// attempt is a conflict, not a no-op.
func (rc *ReturnController) ProcessReturn(c *fiber.Ctx) error {
	var input ReturnInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var loan models.Loan
	if err := rc.DB.First(&loan, input.LoanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Loan not found.", nil)
		}
		return err
	}

	if err := loan.MarkReturned(time.Now().UTC()); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Loan already processed/returned.", nil)
	}

	// Guard on return_date still being unset so two racing returns cannot
	// both record a fee.
	res := rc.DB.Model(&models.Loan{}).
		Where("id = ? AND return_date IS NULL", loan.ID).
		Updates(map[string]interface{}{
			"return_date": loan.ReturnDate,
			"loan_fee":    loan.LoanFee,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Loan already processed/returned.", nil)
	}

	return c.JSON(loan)
}
