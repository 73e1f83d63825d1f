// controllers/report.go
package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"mercury-backend/ledger"
	"mercury-backend/models"
)

// Export downloads the works, customers or debt report as CSV.
func (lc *LedgerController) Export(c *gin.Context) {
	kind, err := ledger.ParseExportKind(c.Param("kind"))
	if err != nil {
		lc.fail(c, err)
		return
	}

	now := lc.now()
	var buf bytes.Buffer
	if err := lc.store().Accounts().Export(&buf, kind, now); err != nil {
		lc.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, kind.FileName(models.DateOf(now))))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
