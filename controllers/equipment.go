// controllers/equipment.go
package controllers

import (
	"net/http"

	"opsdesk-backend/config"
	"opsdesk-backend/models"
	"opsdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type EquipmentInput struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Serial   string `json:"serial"`
	OfficeID *uint  `json:"officeId"`
	Notes    string `json:"notes"`
}

// CreateEquipment registers an inventory asset
func CreateEquipment(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionAdd, "equipment") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var input EquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.OfficeID != nil {
		var office models.Office
		if err := config.DB.First(&office, *input.OfficeID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Office not found")
			return
		}
	}

	equipment := models.Equipment{
		Name:     input.Name,
		Category: input.Category,
		Serial:   input.Serial,
		OfficeID: input.OfficeID,
		Notes:    input.Notes,
	}

	if err := config.DB.Create(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create equipment")
		return
	}

	c.JSON(http.StatusCreated, equipment)
}

// GetEquipments lists inventory, optionally narrowed by category
func GetEquipments(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "equipment") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	query := config.DB.Model(&models.Equipment{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var equipments []models.Equipment
	if err := query.Order("id DESC").Find(&equipments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve equipment")
		return
	}

	c.JSON(http.StatusOK, equipments)
}

// UpdateEquipment edits an inventory asset
func UpdateEquipment(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "equipment") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var equipment models.Equipment
	if err := config.DB.First(&equipment, c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
		return
	}

	var input EquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	equipment.Name = input.Name
	equipment.Category = input.Category
	equipment.Serial = input.Serial
	equipment.OfficeID = input.OfficeID
	equipment.Notes = input.Notes

	if err := config.DB.Save(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update equipment")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

// DeleteEquipment removes an inventory asset
func DeleteEquipment(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionDelete, "equipment") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	result := config.DB.Delete(&models.Equipment{}, c.Param("id"))
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete equipment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Equipment deleted successfully"})
}
