package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mercury-backend/ledger"
	"mercury-backend/models"
	"mercury-backend/utils"
)

// refDate reads the "month" query parameter, any day of the wanted month.
// It defaults to today.
func (lc *LedgerController) refDate(c *gin.Context) (models.Date, bool) {
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		return lc.today(), true
	}
	if len(month) == len("2006-01") {
		month += "-01"
	}
	d, err := models.ParseDate(month)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid month: "+err.Error())
		return models.Date{}, false
	}
	return d, true
}

// GetSummary returns the global totals and the figures of one month.
func (lc *LedgerController) GetSummary(c *gin.Context) {
	ref, ok := lc.refDate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, lc.store().Accounts().Summary(ref))
}

// GetView returns the filtered and sorted customer list, the work list, the
// selected customer and the summary in one response.
func (lc *LedgerController) GetView(c *gin.Context) {
	var q ledger.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	var err error
	if q.Debt, err = ledger.ParseDebtFilter(string(q.Debt)); err != nil {
		lc.fail(c, err)
		return
	}
	if q.Sort, err = ledger.ParseSortKey(string(q.Sort)); err != nil {
		lc.fail(c, err)
		return
	}
	if selected := c.Query("selected"); selected != "" {
		if q.Selected, err = uuid.Parse(selected); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid selected customer ID")
			return
		}
	}

	ref, ok := lc.refDate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, lc.store().Accounts().Render(q, ref))
}
