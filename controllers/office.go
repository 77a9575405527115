// controllers/office.go
package controllers

import (
	"errors"
	"net/http"

	"opsdesk-backend/config"
	"opsdesk-backend/models"
	"opsdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OfficeInput struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type BankAccountInput struct {
	Bank   string `json:"bank" binding:"required"`
	Agency string `json:"agency"`
	Number string `json:"number"`
	PixKey string `json:"pixKey"`
}

// CreateOffice creates a new office
func CreateOffice(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionAdd, "office") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var input OfficeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	office := models.Office{
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Location:    input.Location,
		Description: input.Description,
	}

	if err := config.DB.Create(&office).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create office")
		return
	}

	c.JSON(http.StatusCreated, office)
}

// GetOffices lists all offices
func GetOffices(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "office") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var offices []models.Office
	if err := config.DB.Find(&offices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve offices")
		return
	}

	c.JSON(http.StatusOK, offices)
}

// GetOffice retrieves an office by slug with its bank accounts
func GetOffice(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "office") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var office models.Office
	if err := config.DB.Preload("BankAccounts").Where("slug = ?", c.Param("slug")).First(&office).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Office not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, office)
}

// UpdateOffice edits an office
func UpdateOffice(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "office") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var office models.Office
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&office).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Office not found")
		return
	}

	var input OfficeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	office.Name = input.Name
	office.Location = input.Location
	office.Description = input.Description

	if err := config.DB.Save(&office).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update office")
		return
	}

	c.JSON(http.StatusOK, office)
}

// DeleteOffice removes an office
func DeleteOffice(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionDelete, "office") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	result := config.DB.Where("slug = ?", c.Param("slug")).Delete(&models.Office{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete office")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Office not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Office deleted successfully"})
}

// AddOfficeBankAccount attaches a bank account to an office
func AddOfficeBankAccount(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "office") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var office models.Office
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&office).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Office not found")
		return
	}

	var input BankAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	account := models.BankAccount{
		OfficeID: &office.ID,
		Bank:     input.Bank,
		Agency:   input.Agency,
		Number:   input.Number,
		PixKey:   input.PixKey,
	}

	if err := config.DB.Create(&account).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create bank account")
		return
	}

	c.JSON(http.StatusCreated, account)
}

// DeleteBankAccount removes a bank account (office or collaborator owned)
func DeleteBankAccount(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "office") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	result := config.DB.Delete(&models.BankAccount{}, c.Param("id"))
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete bank account")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Bank account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bank account deleted successfully"})
}
