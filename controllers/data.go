// controllers/data.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercury-backend/models"
	"mercury-backend/utils"
)

// GetData returns the whole snapshot.
func (lc *LedgerController) GetData(c *gin.Context) {
	c.JSON(http.StatusOK, lc.store().Snapshot())
}

// ReplaceData replaces every customer, work item and payment.
func (lc *LedgerController) ReplaceData(c *gin.Context) {
	var snap models.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := lc.gateway.ReplaceAll(c.Request.Context(), snap); err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Veriler başarıyla kaydedildi"})
}

// ClearData deletes everything.
func (lc *LedgerController) ClearData(c *gin.Context) {
	if err := lc.gateway.ClearAll(c.Request.Context()); err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tüm veriler temizlendi"})
}
