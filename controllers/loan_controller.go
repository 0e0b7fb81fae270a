package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loantrack/models"
	"loantrack/utils"
)

// errPlayerUnavailable marks a creation attempt that lost the availability
// check inside the transaction.
var errPlayerUnavailable = errors.New("player not available for loan")

type LoanController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewLoanController(db *gorm.DB, logger *logrus.Logger) *LoanController {
	return &LoanController{DB: db, Logger: logger}
}

type CreateLoanInput struct {
	PlayerID        uint       `json:"playerId" validate:"required"`
	LoaningTeamID   uint       `json:"loaningTeamId" validate:"required"`
	BorrowingTeamID uint       `json:"borrowingTeamId" validate:"required"`
	AgentID         *uint      `json:"agentId"`
	StartDate       *time.Time `json:"startDate" validate:"required"`
	EndDate         *time.Time `json:"endDate" validate:"required"`
}

// GetLoans returns the paginated page object, newest loans first.
func (lc *LoanController) GetLoans(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	page, limit, offset := utils.Paginate(page, limit)

	var total int64
	if err := lc.DB.Model(&models.Loan{}).Count(&total).Error; err != nil {
		return err
	}

	var loans []models.Loan
	if err := lc.DB.Order("loan_date DESC").Offset(offset).Limit(limit).Find(&loans).Error; err != nil {
		return err
	}

	return c.JSON(utils.PaginatedResponse{
		Items:       loans,
		TotalItems:  total,
		TotalPages:  utils.TotalPages(total, limit),
		CurrentPage: page,
	})
}

func (lc *LoanController) GetLoan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Loan ID.", nil)
	}

	var loan models.Loan
	if err := lc.DB.First(&loan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Loan with given ID not found", nil)
		}
		return err
	}
	return c.JSON(loan)
}

// CreateLoan inserts the loan and decrements the player's remaining loan
// days in one transaction. The decrement is guarded so loanDaysRemaining can
// never go negative, even when concurrent requests race past the initial
// availability read.
func (lc *LoanController) CreateLoan(c *fiber.Ctx) error {
	var input CreateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if input.LoaningTeamID == input.BorrowingTeamID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "A team cannot loan a player to itself", nil)
	}

	var player models.Player
	if err := lc.DB.First(&player, input.PlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Player ID not found", nil)
		}
		return err
	}

	var loaningTeam models.Team
	if err := lc.DB.First(&loaningTeam, input.LoaningTeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Loaning team ID not found", nil)
		}
		return err
	}

	var borrowingTeam models.Team
	if err := lc.DB.First(&borrowingTeam, input.BorrowingTeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Borrowing team ID not found", nil)
		}
		return err
	}

	var agentSnapshot models.AgentSnapshot
	if input.AgentID != nil {
		var agent models.Agent
		if err := lc.DB.First(&agent, *input.AgentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Agent ID not found", nil)
			}
			return err
		}
		agentSnapshot = agent.Snapshot()
	}

	if player.LoanDaysRemaining == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Player not available for loan", nil)
	}

	loan := models.Loan{
		Agent:         agentSnapshot,
		Player:        player.Snapshot(),
		LoaningTeam:   loaningTeam.Snapshot(),
		BorrowingTeam: borrowingTeam.Snapshot(),
		StartDate:     *input.StartDate,
		EndDate:       *input.EndDate,
		LoanDate:      time.Now().UTC(),
	}

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Player{}).
			Where("id = ? AND loan_days_remaining > 0", player.ID).
			UpdateColumn("loan_days_remaining", gorm.Expr("loan_days_remaining - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errPlayerUnavailable
		}
		return tx.Create(&loan).Error
	})
	if err != nil {
		if errors.Is(err, errPlayerUnavailable) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Player not available for loan", nil)
		}
		return err
	}

	return c.JSON(loan)
}
