package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gkobilansky/landing-page-report/analyzer"
	"github.com/gkobilansky/landing-page-report/models"
)

// AnalyzeSnapshot returns a handler for POST /api/v1/analyze/snapshot.
//
// It runs the scoring engine over a snapshot captured by an external
// renderer, without touching the browser pool. Useful for offline
// batches and for replaying stored captures.
func AnalyzeSnapshot(an *analyzer.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.SnapshotAnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		if len(req.Snapshot.Elements) == 0 && req.Snapshot.HTML == "" {
			c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "snapshot carries no elements and no html",
				},
			})
			return
		}

		analysisStart := time.Now()
		report := an.Analyze(c.Request.Context(), &req.Snapshot, req.Categories)
		analysisMs := time.Since(analysisStart).Milliseconds()

		c.JSON(http.StatusOK, &models.AnalyzeResponse{
			Success: true,
			Report:  report,
			Timing: models.TimingInfo{
				TotalMs:    time.Since(totalStart).Milliseconds(),
				AnalysisMs: analysisMs,
			},
		})
	}
}
