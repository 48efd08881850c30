package inventory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kikiks-backend/internal/audit"
	"kikiks-backend/internal/auth"
	"kikiks-backend/internal/database"
	"kikiks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UpsertStockLevelRequest struct {
	BranchID    *uint  `json:"branch_id"` // super_admin only; branch admins use their own
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note"`
}

type StockLevelResponse struct {
	ID             uint   `json:"id"`
	BranchID       uint   `json:"branch_id"`
	ProductCode    string `json:"product_code"`
	CurrentStock   int    `json:"current_stock"`
	LastSyncSource string `json:"last_sync_source"`
	LastSyncAt     string `json:"last_sync_at"`
	UpdatedAt      string `json:"updated_at"`
}

func toStockLevelResponse(s models.StockLevel) StockLevelResponse {
	res := StockLevelResponse{
		ID:             s.ID,
		BranchID:       s.BranchID,
		ProductCode:    s.ProductCode,
		CurrentStock:   s.CurrentStock,
		LastSyncSource: s.LastSyncSource,
		UpdatedAt:      s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if s.LastSyncAt != nil {
		res.LastSyncAt = s.LastSyncAt.Format("2006-01-02 15:04:05")
	}
	return res
}

// GET /api/stock-levels?branch_id=1&code=FGC-005
func ListStockLevelsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var requested *uint
		if bidStr := c.Query("branch_id"); bidStr != "" {
			var bid uint
			if _, err := fmt.Sscan(bidStr, &bid); err == nil && bid > 0 {
				requested = &bid
			}
		}

		branchID, err := auth.ResolveBranchID(c, requested)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("branch_id = ?", branchID)
		if code := strings.TrimSpace(c.Query("code")); code != "" {
			dbq = dbq.Where("product_code = ?", strings.ToUpper(code))
		}

		var levels []models.StockLevel
		if err := dbq.Order("product_code ASC").Find(&levels).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list stock levels")
		}

		res := make([]StockLevelResponse, 0, len(levels))
		for _, s := range levels {
			res = append(res, toStockLevelResponse(s))
		}
		return c.JSON(res)
	}
}

// PUT /api/stock-levels
// Manual count: sets the current stock for one code and writes the matching
// history entry in the same transaction.
func UpsertStockLevelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertStockLevelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.ProductCode = strings.ToUpper(strings.TrimSpace(body.ProductCode))
		if body.ProductCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "product_code is required")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity cannot be negative")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		userID, userName, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var level models.StockLevel
		var beforeStock int
		now := time.Now()

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			err := tx.Where("branch_id = ? AND product_code = ?", branchID, body.ProductCode).
				First(&level).Error
			if err == nil {
				beforeStock = level.CurrentStock
			} else {
				level = models.StockLevel{BranchID: branchID, ProductCode: body.ProductCode}
			}

			level.CurrentStock = body.Quantity
			level.LastSyncSource = "manual_count"
			level.LastSyncAt = &now
			if err := tx.Save(&level).Error; err != nil {
				return err
			}

			rawNote, _ := json.Marshal(map[string]string{"note": body.Note, "by": userName})
			history := models.StockHistory{
				BranchID:    branchID,
				ProductCode: body.ProductCode,
				Before:      beforeStock,
				Change:      body.Quantity - beforeStock,
				After:       body.Quantity,
				Source:      "manual_count",
				RawRow:      string(rawNote),
			}
			return tx.Create(&history).Error
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save stock count")
		}

		_ = audit.WriteLog(audit.LogOptions{
			BranchID:    &branchID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "stock_level",
			EntityID:    level.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Manual count %s: %d -> %d", body.ProductCode, beforeStock, body.Quantity),
			Before:      fiber.Map{"current_stock": beforeStock},
			After:       fiber.Map{"current_stock": body.Quantity},
		})

		return c.JSON(toStockLevelResponse(level))
	}
}

// GET /api/stock-history?branch_id=1&code=FGC-005&run_id=...
func ListStockHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var requested *uint
		if bidStr := c.Query("branch_id"); bidStr != "" {
			var bid uint
			if _, err := fmt.Sscan(bidStr, &bid); err == nil && bid > 0 {
				requested = &bid
			}
		}

		branchID, err := auth.ResolveBranchID(c, requested)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("branch_id = ?", branchID)
		if code := strings.TrimSpace(c.Query("code")); code != "" {
			dbq = dbq.Where("product_code = ?", strings.ToUpper(code))
		}
		if runID := strings.TrimSpace(c.Query("run_id")); runID != "" {
			dbq = dbq.Where("import_run_id = ?", runID)
		}

		var entries []models.StockHistory
		if err := dbq.Order("created_at DESC").Limit(500).Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list stock history")
		}

		type historyResponse struct {
			ID          uint   `json:"id"`
			ProductCode string `json:"product_code"`
			Before      int    `json:"before"`
			Change      int    `json:"change"`
			After       int    `json:"after"`
			Source      string `json:"source"`
			ImportRunID string `json:"import_run_id,omitempty"`
			CreatedAt   string `json:"created_at"`
		}

		res := make([]historyResponse, 0, len(entries))
		for _, e := range entries {
			res = append(res, historyResponse{
				ID:          e.ID,
				ProductCode: e.ProductCode,
				Before:      e.Before,
				Change:      e.Change,
				After:       e.After,
				Source:      e.Source,
				ImportRunID: e.ImportRunID,
				CreatedAt:   e.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}
