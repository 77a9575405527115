// controllers/bill_test.go
package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func formContext(t *testing.T, form url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestOptionalUintFormDistinguishesEmptyFromAbsent(t *testing.T) {
	c := formContext(t, url.Values{
		"payer_id":  {"7"},
		"office_id": {""},
	})

	value, present := optionalUintForm(c, "payer_id")
	if !present || value == nil || *value != 7 {
		t.Errorf("payer_id=7: got (%v, %v), want (7, true)", value, present)
	}

	// Submitted empty clears the reference.
	value, present = optionalUintForm(c, "office_id")
	if !present {
		t.Error("submitted empty office_id should count as present")
	}
	if value != nil {
		t.Errorf("submitted empty office_id: value = %v, want nil", value)
	}

	// Absent key leaves the stored value alone.
	value, present = optionalUintForm(c, "missing")
	if present {
		t.Error("absent key should not count as present")
	}
	if value != nil {
		t.Errorf("absent key: value = %v, want nil", value)
	}
}

func TestOptionalUintFormIgnoresGarbage(t *testing.T) {
	c := formContext(t, url.Values{"payer_id": {"not-a-number"}})
	value, present := optionalUintForm(c, "payer_id")
	if present || value != nil {
		t.Errorf("unparsable value: got (%v, %v), want (nil, false)", value, present)
	}
}

func TestOptionalStringForm(t *testing.T) {
	c := formContext(t, url.Values{"title": {"Retainer"}, "code": {""}})

	if got := optionalStringForm(c, "title"); got == nil || *got != "Retainer" {
		t.Errorf("title: got %v, want Retainer", got)
	}
	if got := optionalStringForm(c, "code"); got == nil || *got != "" {
		t.Errorf("submitted empty code: got %v, want pointer to empty string", got)
	}
	if got := optionalStringForm(c, "missing"); got != nil {
		t.Errorf("absent key: got %v, want nil", got)
	}
}
