package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercury-backend/ledger"
	"mercury-backend/utils"
)

// CreateCustomer adds a customer. Names are unique regardless of case.
func (lc *LedgerController) CreateCustomer(c *gin.Context) {
	var input ledger.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := lc.gateway.AddCustomer(c.Request.Context(), input)
	if err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomer returns a customer with its stats, works and payments.
func (lc *LedgerController) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, found := lc.store().Accounts().Detail(id)
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetCustomerBalance returns billed, paid and remaining amounts.
func (lc *LedgerController) GetCustomerBalance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, found := lc.store().Customer(id); !found {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, lc.store().CustomerBalance(id))
}

// DeleteCustomer deletes a customer with all of its works and payments.
func (lc *LedgerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := lc.gateway.DeleteCustomer(c.Request.Context(), id); err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Müşteri ve ilgili veriler silindi"})
}
