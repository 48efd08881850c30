package inventory

import (
	"fmt"

	"kikiks-backend/internal/auth"
	"kikiks-backend/internal/database"
	"kikiks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/stock-levels/export?branch_id=1
// Produces an XLSX snapshot of a branch's current stock.
func ExportStockLevelsHandler() fiber.Handler {
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

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", branchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}

		var levels []models.StockLevel
		if err := database.DB.Where("branch_id = ?", branchID).
			Order("product_code ASC").Find(&levels).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load stock levels")
		}

		// product names for the codes we are exporting
		names := map[string]string{}
		var products []models.Product
		if err := database.DB.Find(&products).Error; err == nil {
			for _, p := range products {
				names[p.Code] = p.Name
			}
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Stock"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Code", "Product", "Current Stock", "Last Sync Source", "Last Sync At"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for rowIdx, level := range levels {
			syncedAt := ""
			if level.LastSyncAt != nil {
				syncedAt = level.LastSyncAt.Format("2006-01-02 15:04:05")
			}
			values := []interface{}{
				level.ProductCode,
				names[level.ProductCode],
				level.CurrentStock,
				level.LastSyncSource,
				syncedAt,
			}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build export file")
		}

		filename := fmt.Sprintf("stock-%s.xlsx", branch.Name)
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	}
}
