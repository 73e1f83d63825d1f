package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercury-backend/ledger"
	"mercury-backend/utils"
)

func (lc *LedgerController) CreateWork(c *gin.Context) {
	var input ledger.WorkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	work, err := lc.gateway.AddWorkItem(c.Request.Context(), input)
	if err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, work)
}

// UpdateWork replaces all editable fields of a work item.
func (lc *LedgerController) UpdateWork(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ledger.WorkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	work, err := lc.gateway.UpdateWorkItem(c.Request.Context(), id, input)
	if err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

func (lc *LedgerController) DeleteWork(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := lc.gateway.DeleteWorkItem(c.Request.Context(), id); err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "İşlem silindi"})
}
