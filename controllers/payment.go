package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercury-backend/ledger"
	"mercury-backend/utils"
)

// CreatePayment records a payment. Payments cannot be edited or deleted
// except by deleting the customer.
func (lc *LedgerController) CreatePayment(c *gin.Context) {
	var input ledger.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	payment, err := lc.gateway.AddPayment(c.Request.Context(), input)
	if err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}
