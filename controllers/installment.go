// controllers/installment.go
package controllers

import (
	"io"
	"net/http"
	"strconv"

	"opsdesk-backend/config"
	"opsdesk-backend/services"
	"opsdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type EditInstallmentInput struct {
	Value       string `json:"value" binding:"required"`
	DueDate     string `json:"dueDate"`
	PaymentInfo string `json:"paymentInfo"`
}

type InstallmentStatusInput struct {
	PaidAt      string `json:"paidAt"`
	PaymentInfo string `json:"paymentInfo"`
}

// EditInstallment changes one installment's value and due date; the bill
// total shifts by the value delta
func EditInstallment(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "installment") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	installmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid installment ID")
		return
	}

	var input EditInstallmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	installment, err := services.NewBillService(config.DB).
		EditInstallment(uint(installmentID), input.Value, input.DueDate, input.PaymentInfo)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, installment)
}

// SetInstallmentStatus toggles one installment's paid flag and recomputes
// the bill rollup
func SetInstallmentStatus(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "installment") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	installmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid installment ID")
		return
	}

	var input InstallmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	paidAt, err := utils.ParseDate(input.PaidAt)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	installment, err := services.NewBillService(config.DB).
		SetInstallmentStatus(uint(installmentID), paidAt, input.PaymentInfo)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, installment)
}

// DeleteInstallment removes one installment and renumbers the remainder
func DeleteInstallment(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionDelete, "installment") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	installmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid installment ID")
		return
	}

	if err := services.NewBillService(config.DB).DeleteInstallment(uint(installmentID)); err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Installment deleted successfully"})
}
