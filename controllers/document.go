// controllers/document.go
package controllers

import (
	"io"
	"net/http"
	"strings"

	"opsdesk-backend/config"
	"opsdesk-backend/filters"
	"opsdesk-backend/models"
	"opsdesk-backend/services"
	"opsdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// documentOwner resolves the :slug route param into the owning entity for
// the route group (clients, offices or collaborators).
func documentOwner(c *gin.Context) (*models.Document, bool) {
	slug := c.Param("slug")
	owner := &models.Document{}
	if isOfficeRoute(c) {
		var office models.Office
		if err := config.DB.Where("slug = ?", slug).First(&office).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Office not found")
			return nil, false
		}
		owner.OfficeID = &office.ID
		return owner, true
	}
	if isCollaboratorRoute(c) {
		var collaborator models.Collaborator
		if err := config.DB.Where("slug = ?", slug).First(&collaborator).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Collaborator not found")
			return nil, false
		}
		owner.CollaboratorID = &collaborator.ID
		return owner, true
	}
	var client models.Client
	if err := config.DB.Where("slug = ?", slug).First(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return nil, false
	}
	owner.ClientID = &client.ID
	return owner, true
}

func isOfficeRoute(c *gin.Context) bool {
	return strings.HasPrefix(c.FullPath(), "/api/offices")
}

func isCollaboratorRoute(c *gin.Context) bool {
	return strings.HasPrefix(c.FullPath(), "/api/collaborators")
}

// UploadDocument creates or replaces a document from a multipart form
func UploadDocument(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionAdd, "document") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	owner, ok := documentOwner(c)
	if !ok {
		return
	}

	expiration, err := utils.ParseDate(c.PostForm("expiration"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expiration date")
		return
	}

	document := models.Document{
		ClientID:         owner.ClientID,
		OfficeID:         owner.OfficeID,
		CollaboratorID:   owner.CollaboratorID,
		UploadedByUserID: currentUserID(c),
		Name:             c.PostForm("name"),
		Category:         c.PostForm("category"),
		Description:      c.PostForm("description"),
		Expiration:       expiration,
	}
	if document.Name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Document name required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Document file required")
		return
	}
	defer file.Close()

	path, err := utils.DefaultFileStore.Save("documents", header.Filename, file)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store document")
		return
	}
	document.File = path

	if err := config.DB.Create(&document).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create document")
		return
	}

	c.JSON(http.StatusCreated, document)
}

// EditDocument merges form fields into an existing document; a new file
// replaces and releases the previous one
func EditDocument(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "document") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var document models.Document
	if err := config.DB.First(&document, c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Document not found")
		return
	}

	if name := c.PostForm("name"); name != "" {
		document.Name = name
	}
	if category := c.PostForm("category"); category != "" {
		document.Category = category
	}
	if description := c.PostForm("description"); description != "" {
		document.Description = description
	}
	expiration, err := utils.ParseDate(c.PostForm("expiration"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expiration date")
		return
	}
	document.Expiration = expiration

	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		path, err := utils.DefaultFileStore.Save("documents", header.Filename, file)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store document")
			return
		}
		if document.File != "" && !utils.IsPlaceholderFile(document.File) {
			utils.DefaultFileStore.Delete(document.File)
		}
		document.File = path
	}

	if err := config.DB.Save(&document).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update document")
		return
	}

	c.JSON(http.StatusOK, document)
}

// GetDocuments lists an owner's documents filtered and sorted via tokens
func GetDocuments(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "document") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	services.NewSweeperService(config.DB).CheckExpiredDocuments()

	owner, ok := documentOwner(c)
	if !ok {
		return
	}

	filter, err := filters.DecodeDocumentFilter(c.Query("filters"))
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}
	sort := filters.ParseSort(c.Query("sort_by"), c.Query("sort_type"))

	query := config.DB.Model(&models.Document{})
	switch {
	case owner.ClientID != nil:
		query = query.Where("client_id = ?", *owner.ClientID)
	case owner.OfficeID != nil:
		query = query.Where("office_id = ?", *owner.OfficeID)
	case owner.CollaboratorID != nil:
		query = query.Where("collaborator_id = ?", *owner.CollaboratorID)
	}

	query, err = filter.Apply(query)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}
	query = sort.ApplyToDocuments(query)

	var documents []models.Document
	if err := query.Find(&documents).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve documents")
		return
	}

	var lastID uint
	for _, document := range documents {
		if document.ID > lastID {
			lastID = document.ID
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"lastId":    lastID,
		"filters":   filter.Encode(),
	})
}

// DownloadDocument streams the stored file
func DownloadDocument(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "document") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var document models.Document
	if err := config.DB.First(&document, c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Document not found")
		return
	}

	reader, err := utils.DefaultFileStore.Open(document.File)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Stored file not found")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+document.Name+`"`)
	c.Header("Content-Type", "application/octet-stream")
	io.Copy(c.Writer, reader)
}

// DeleteDocument removes a document and releases its file
func DeleteDocument(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionDelete, "document") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var document models.Document
	if err := config.DB.First(&document, c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Document not found")
		return
	}

	if document.File != "" && !utils.IsPlaceholderFile(document.File) {
		utils.DefaultFileStore.Delete(document.File)
	}

	if err := config.DB.Delete(&document).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
