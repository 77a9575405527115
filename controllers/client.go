// controllers/client.go
package controllers

import (
	"errors"
	"net/http"

	"opsdesk-backend/config"
	"opsdesk-backend/filters"
	"opsdesk-backend/models"
	"opsdesk-backend/services"
	"opsdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name         string `json:"name" binding:"required"`
	CNPJ         string `json:"cnpj"`
	Area         string `json:"area"`
	OfficeID     *uint  `json:"officeId"`
	Location     string `json:"address"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	XMLEmail     string `json:"xmlEmail" binding:"omitempty,email"`
	Description  string `json:"about"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name         *string `json:"name"`
	CNPJ         *string `json:"cnpj"`
	Area         *string `json:"area"`
	OfficeID     *uint   `json:"officeId"`
	Location     *string `json:"address"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	XMLEmail     *string `json:"xmlEmail" binding:"omitempty,email"`
	Description  *string `json:"about"`
}

type BranchInput struct {
	Name     string `json:"name" binding:"required"`
	CNPJ     string `json:"cnpj"`
	Location string `json:"location"`
}

// CreateClient creates a new client
func CreateClient(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionAdd, "client") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if !utils.ValidateCNPJ(input.CNPJ) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid CNPJ")
		return
	}
	if input.OfficeID != nil {
		var office models.Office
		if err := config.DB.First(&office, *input.OfficeID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Office not found")
			return
		}
	}

	client := models.Client{
		Name:         input.Name,
		Slug:         utils.Slugify(input.Name),
		CNPJ:         input.CNPJ,
		Area:         input.Area,
		OfficeID:     input.OfficeID,
		Location:     input.Location,
		ContactEmail: input.ContactEmail,
		Phone:        input.Phone,
		XMLEmail:     input.XMLEmail,
		Description:  input.Description,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients lists clients, optionally filtered and sorted via token params
func GetClients(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "client") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	services.NewSweeperService(config.DB).CheckExpiredDocuments()

	filter := filters.DecodeClientFilter(c.Query("filters"))
	sort := filters.ParseSort(c.Query("sort_by"), c.Query("sort_type"))

	query := filter.Apply(config.DB.Model(&models.Client{}))
	query = sort.ApplyToClients(query)

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients, "filters": filter.Encode()})
}

// GetClient retrieves a client by slug with its branches
func GetClient(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "client") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var client models.Client
	if err := config.DB.Preload("Branches").Where("slug = ?", c.Param("slug")).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient merges the provided fields into an existing client
func UpdateClient(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "client") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var client models.Client
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.CNPJ != nil {
		if !utils.ValidateCNPJ(*input.CNPJ) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid CNPJ")
			return
		}
		client.CNPJ = *input.CNPJ
	}
	if input.Area != nil {
		client.Area = *input.Area
	}
	if input.OfficeID != nil {
		var office models.Office
		if err := config.DB.First(&office, *input.OfficeID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Office not found")
			return
		}
		client.OfficeID = input.OfficeID
	}
	if input.Location != nil {
		client.Location = *input.Location
	}
	if input.ContactEmail != nil {
		client.ContactEmail = *input.ContactEmail
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.Phone = *input.Phone
	}
	if input.XMLEmail != nil {
		client.XMLEmail = *input.XMLEmail
	}
	if input.Description != nil {
		client.Description = *input.Description
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client
func DeleteClient(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionDelete, "client") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	result := config.DB.Where("slug = ?", c.Param("slug")).Delete(&models.Client{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// ChangeClientPicture replaces the client avatar, releasing the previous file
func ChangeClientPicture(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "client") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var client models.Client
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Avatar file required")
		return
	}
	defer file.Close()

	path, err := utils.DefaultFileStore.Save("avatars", header.Filename, file)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store avatar")
		return
	}

	if client.Avatar != "" && !utils.IsPlaceholderFile(client.Avatar) {
		utils.DefaultFileStore.Delete(client.Avatar)
	}

	client.Avatar = path
	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// CreateBranch adds a branch to a client
func CreateBranch(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionAdd, "branch") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var client models.Client
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	var input BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateCNPJ(input.CNPJ) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid CNPJ")
		return
	}

	branch := models.Branch{
		ClientID: client.ID,
		Name:     input.Name,
		CNPJ:     input.CNPJ,
		Location: input.Location,
	}

	if err := config.DB.Create(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create branch")
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// UpdateBranch edits a client branch
func UpdateBranch(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "branch") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var branch models.Branch
	if err := config.DB.First(&branch, c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}

	var input BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateCNPJ(input.CNPJ) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid CNPJ")
		return
	}

	branch.Name = input.Name
	branch.CNPJ = input.CNPJ
	branch.Location = input.Location

	if err := config.DB.Save(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update branch")
		return
	}

	c.JSON(http.StatusOK, branch)
}

// DeleteBranch removes a client branch
func DeleteBranch(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionDelete, "branch") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	result := config.DB.Delete(&models.Branch{}, c.Param("id"))
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete branch")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted successfully"})
}
