package admin

import (
	"encoding/json"
	"fmt"

	"kikiks-backend/internal/database"
	"kikiks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ImportLogResponse struct {
	ID             uint     `json:"id"`
	RunID          string   `json:"run_id"`
	BranchID       *uint    `json:"branch_id"`
	Location       string   `json:"location"`
	FileName       string   `json:"file_name"`
	InventoryDate  string   `json:"inventory_date"`
	TotalRows      int      `json:"total_rows"`
	MatchedCount   int      `json:"matched_count"`
	UnmatchedCount int      `json:"unmatched_count"`
	DroppedCount   int      `json:"dropped_count"`
	Status         string   `json:"status"`
	Errors         []string `json:"errors"`
	CreatedAt      string   `json:"created_at"`
}

// GET /api/admin/import-logs?branch_id=1&status=failed
func ListImportLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.ImportLog{})

		if bidStr := c.Query("branch_id"); bidStr != "" {
			var bid uint
			if _, err := fmt.Sscan(bidStr, &bid); err == nil && bid > 0 {
				dbq = dbq.Where("branch_id = ?", bid)
			}
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var logs []models.ImportLog
		if err := dbq.Order("created_at DESC").Limit(200).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list import logs")
		}

		res := make([]ImportLogResponse, 0, len(logs))
		for _, l := range logs {
			var errs []string
			_ = json.Unmarshal([]byte(l.Errors), &errs)

			res = append(res, ImportLogResponse{
				ID:             l.ID,
				RunID:          l.RunID,
				BranchID:       l.BranchID,
				Location:       l.Location,
				FileName:       l.FileName,
				InventoryDate:  l.InventoryDate,
				TotalRows:      l.TotalRows,
				MatchedCount:   l.MatchedCount,
				UnmatchedCount: l.UnmatchedCount,
				DroppedCount:   l.DroppedCount,
				Status:         string(l.Status),
				Errors:         errs,
				CreatedAt:      l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
