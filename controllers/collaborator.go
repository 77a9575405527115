// controllers/collaborator.go
package controllers

import (
	"net/http"

	"opsdesk-backend/config"
	"opsdesk-backend/models"
	"opsdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type CollaboratorInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Position string `json:"position"`
}

// CreateCollaborator creates a new collaborator
func CreateCollaborator(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionAdd, "collaborator") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var input CollaboratorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	collaborator := models.Collaborator{
		Name:     input.Name,
		Slug:     utils.Slugify(input.Name),
		Email:    input.Email,
		Position: input.Position,
		IsActive: true,
	}

	if err := config.DB.Create(&collaborator).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create collaborator")
		return
	}

	c.JSON(http.StatusCreated, collaborator)
}

// GetCollaborators lists collaborators
func GetCollaborators(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "collaborator") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var collaborators []models.Collaborator
	if err := config.DB.Find(&collaborators).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve collaborators")
		return
	}

	c.JSON(http.StatusOK, collaborators)
}

// GetCollaborator retrieves one collaborator with documents and accounts
func GetCollaborator(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "collaborator") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var collaborator models.Collaborator
	if err := config.DB.Preload("Documents").Preload("BankAccounts").
		Where("slug = ?", c.Param("slug")).First(&collaborator).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Collaborator not found")
		return
	}

	c.JSON(http.StatusOK, collaborator)
}

// UpdateCollaborator edits a collaborator
func UpdateCollaborator(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "collaborator") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var collaborator models.Collaborator
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&collaborator).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Collaborator not found")
		return
	}

	var input CollaboratorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	collaborator.Name = input.Name
	collaborator.Email = input.Email
	collaborator.Position = input.Position

	if err := config.DB.Save(&collaborator).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update collaborator")
		return
	}

	c.JSON(http.StatusOK, collaborator)
}

// DeleteCollaborator removes a collaborator
func DeleteCollaborator(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionDelete, "collaborator") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	result := config.DB.Where("slug = ?", c.Param("slug")).Delete(&models.Collaborator{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete collaborator")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Collaborator not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator deleted successfully"})
}

// ToggleCollaboratorStatus flips the active flag
func ToggleCollaboratorStatus(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "collaborator") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var collaborator models.Collaborator
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&collaborator).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Collaborator not found")
		return
	}

	collaborator.IsActive = !collaborator.IsActive
	if err := config.DB.Save(&collaborator).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update collaborator")
		return
	}

	c.JSON(http.StatusOK, collaborator)
}

// AddCollaboratorBankAccount attaches a bank account to a collaborator
func AddCollaboratorBankAccount(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "collaborator") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var collaborator models.Collaborator
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&collaborator).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Collaborator not found")
		return
	}

	var input BankAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	account := models.BankAccount{
		CollaboratorID: &collaborator.ID,
		Bank:           input.Bank,
		Agency:         input.Agency,
		Number:         input.Number,
		PixKey:         input.PixKey,
	}

	if err := config.DB.Create(&account).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create bank account")
		return
	}

	c.JSON(http.StatusCreated, account)
}
