// controllers/project.go
package controllers

import (
	"net/http"

	"opsdesk-backend/config"
	"opsdesk-backend/models"
	"opsdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type ProjectInput struct {
	ClientSlug  string `json:"clientSlug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// CreateProject creates a project for a client
func CreateProject(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionAdd, "project") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var input ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("slug = ?", input.ClientSlug).First(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		return
	}

	project := models.Project{
		ClientID:    client.ID,
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Situation:   models.ProjectWorking,
		Status:      input.Status,
		Description: input.Description,
	}

	if err := config.DB.Create(&project).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects lists projects, optionally narrowed to a situation
func GetProjects(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "project") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	query := config.DB.Model(&models.Project{})
	if situation := c.Query("situation"); situation != "" {
		query = query.Where("situation = ?", situation)
	}

	var projects []models.Project
	if err := query.Order("id DESC").Find(&projects).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// ToggleProjectArchive flips a project between working and archived
func ToggleProjectArchive(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "project") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var project models.Project
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&project).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		return
	}

	if project.Situation == models.ProjectArchived {
		project.Situation = models.ProjectWorking
	} else {
		project.Situation = models.ProjectArchived
	}

	if err := config.DB.Save(&project).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProjectStatus sets the free-form status label
func UpdateProjectStatus(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "project") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var project models.Project
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&project).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		return
	}

	project.Status = input.Status
	if err := config.DB.Save(&project).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project
func DeleteProject(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionDelete, "project") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	result := config.DB.Where("slug = ?", c.Param("slug")).Delete(&models.Project{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
