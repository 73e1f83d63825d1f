// controllers/ledger.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mercury-backend/ledger"
	"mercury-backend/models"
	"mercury-backend/utils"
)

// LedgerController serves customers, work items and payments. Mutations go
// through the gateway; reads use the latest store snapshot.
type LedgerController struct {
	gateway *ledger.Gateway
	now     func() time.Time
	logger  zerolog.Logger
}

func NewLedgerController(gateway *ledger.Gateway, logger zerolog.Logger) *LedgerController {
	return &LedgerController{
		gateway: gateway,
		now:     time.Now,
		logger:  logger.With().Str("component", "ledger-controller").Logger(),
	}
}

// WithClock sets the clock used for "today" and the current month.
func (lc *LedgerController) WithClock(now func() time.Time) *LedgerController {
	lc.now = now
	return lc
}

func (lc *LedgerController) store() *ledger.Store { return lc.gateway.Store() }

func (lc *LedgerController) today() models.Date { return models.DateOf(lc.now()) }

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// fail logs server side failures and writes the mapped error response.
func (lc *LedgerController) fail(c *gin.Context, err error) {
	if utils.StatusOf(err) >= http.StatusInternalServerError {
		lc.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	utils.RespondWithLedgerError(c, err)
}

// Health reports liveness and the time of the last committed change.
func (lc *LedgerController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"lastUpdated": lc.store().Snapshot().LastUpdated,
	})
}
