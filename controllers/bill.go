// controllers/bill.go
package controllers

import (
	"io"
	"net/http"
	"strconv"

	"opsdesk-backend/config"
	"opsdesk-backend/filters"
	"opsdesk-backend/models"
	"opsdesk-backend/services"
	"opsdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// Bills come in as multipart forms: the proof file rides along with the
// money/date strings the frontend submits.

// CreateBill creates a bill for a client, optionally with an installment
// schedule
func CreateBill(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionAdd, "bill") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	input := services.CreateBillInput{
		ClientSlug: c.Param("slug"),
		CreatedBy:  currentUserID(c),
		Title:      c.PostForm("title"),
		Category:   c.PostForm("category"),
		Method:     c.PostForm("method"),
		Origin:     c.PostForm("origin"),
		Code:       c.PostForm("code"),
		Link:       c.PostForm("link"),
		DueDate:    c.PostForm("due_date"),
		Total:      c.PostForm("total"),
		Currency:   c.DefaultPostForm("currency", "BRL"),
		Status:     c.DefaultPostForm("status", "Pending"),
	}
	if input.Title == "" || input.Total == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Title and total are required")
		return
	}

	input.PayerID, _ = optionalUintForm(c, "payer_id")
	input.OfficeID, _ = optionalUintForm(c, "office_id")

	if count := c.PostForm("installments"); count != "" {
		n, err := strconv.Atoi(count)
		if err != nil || n < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid installments count")
			return
		}
		input.InstallmentsCount = n
	}
	input.InstallmentsValue = c.PostForm("installments_value")
	if frequency := c.PostForm("installments_frequency"); frequency != "" {
		n, err := strconv.Atoi(frequency)
		if err != nil || n < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid installments frequency")
			return
		}
		input.InstallmentsFrequency = n
	}

	if file, header, err := c.Request.FormFile("proof"); err == nil {
		defer file.Close()
		path, err := utils.DefaultFileStore.Save("proofs", header.Filename, file)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store proof")
			return
		}
		input.Proof = path
	}

	bill, err := services.NewBillService(config.DB).Create(input)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// UpdateBill merges submitted fields into a bill and reconciles the
// installment schedule
func UpdateBill(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "bill") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	billID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	var input services.UpdateBillInput
	input.PayerID, input.PayerSet = optionalUintForm(c, "payer_id")
	input.OfficeID, input.OfficeSet = optionalUintForm(c, "office_id")
	input.Title = optionalStringForm(c, "title")
	input.Category = optionalStringForm(c, "category")
	input.Method = optionalStringForm(c, "method")
	input.Origin = optionalStringForm(c, "origin")
	input.Code = optionalStringForm(c, "code")
	input.Link = optionalStringForm(c, "link")
	input.DueDate = optionalStringForm(c, "due_date")
	input.Total = optionalStringForm(c, "total")
	input.Currency = optionalStringForm(c, "currency")
	input.InstallmentsValue = optionalStringForm(c, "installments_value")

	if count := optionalStringForm(c, "installments"); count != nil {
		n, err := strconv.Atoi(*count)
		if err != nil || n < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid installments count")
			return
		}
		input.InstallmentsCount = &n
	}
	if frequency := optionalStringForm(c, "installments_frequency"); frequency != nil {
		n, err := strconv.Atoi(*frequency)
		if err != nil || n < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid installments frequency")
			return
		}
		input.InstallmentsFrequency = &n
	}

	if file, header, err := c.Request.FormFile("proof"); err == nil {
		defer file.Close()
		path, err := utils.DefaultFileStore.Save("proofs", header.Filename, file)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store proof")
			return
		}
		input.Proof = &path
	}

	bill, err := services.NewBillService(config.DB).Update(uint(billID), input)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// SetBillStatus toggles a bill's paid flag, optionally reconciling it
func SetBillStatus(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionChange, "bill") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	billID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	var input struct {
		PaidAt      string `json:"paidAt"`
		PaymentInfo string `json:"paymentInfo"`
		Reconcile   bool   `json:"reconcile"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	paidAt, err := utils.ParseDate(input.PaidAt)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	bill, err := services.NewBillService(config.DB).SetPaid(uint(billID), paidAt, input.PaymentInfo, input.Reconcile)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// DeleteBill removes a bill, its installments and its proof file
func DeleteBill(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionDelete, "bill") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	billID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	if err := services.NewBillService(config.DB).Delete(uint(billID)); err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}

// GetClientBalance returns a client's bills narrowed by the filter token
// string, with the balance rollup and the newest bill id
func GetClientBalance(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "bill") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	services.NewSweeperService(config.DB).CheckLateBills()

	sort := filters.ParseSort(c.Query("sort_by"), c.Query("sort_type"))
	bills, lastID, summary, err := services.NewBillService(config.DB).
		FilterBills(c.Param("slug"), c.Query("filters"), sort)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bills":   bills,
		"lastId":  lastID,
		"summary": summary,
	})
}

// DownloadBillProof streams a bill's proof file
func DownloadBillProof(c *gin.Context) {
	if !utils.Authorize(c, utils.ActionView, "bill") {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var bill models.Bill
	if err := config.DB.First(&bill, c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		return
	}
	if bill.Proof == "" {
		utils.RespondWithError(c, http.StatusNotFound, "Bill has no proof attached")
		return
	}

	reader, err := utils.DefaultFileStore.Open(bill.Proof)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Stored file not found")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="proof-`+c.Param("id")+`"`)
	c.Header("Content-Type", "application/octet-stream")
	io.Copy(c.Writer, reader)
}

func optionalStringForm(c *gin.Context, key string) *string {
	if values, ok := c.GetPostFormArray(key); ok && len(values) > 0 {
		return &values[0]
	}
	return nil
}

// optionalUintForm reads an optional numeric reference from the form. The
// second return distinguishes a submitted empty value (present, clears the
// reference) from an absent key (leave the stored value alone).
func optionalUintForm(c *gin.Context, key string) (*uint, bool) {
	raw, ok := c.GetPostForm(key)
	if !ok {
		return nil, false
	}
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	out := uint(id)
	return &out, true
}
