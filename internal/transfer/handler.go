package transfer

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
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TransferItemRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

type CreateTransferRequest struct {
	FromBranchID uint                  `json:"from_branch_id"`
	ToBranchID   uint                  `json:"to_branch_id"`
	Note         string                `json:"note"`
	Items        []TransferItemRequest `json:"items"`
}

type TransferItemResponse struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

type TransferResponse struct {
	ID          uint   `json:"id"`
	Reference   string `json:"reference"`
	FromBranch  string `json:"from_branch"`
	ToBranch    string `json:"to_branch"`
	Status      string `json:"status"`
	Note        string `json:"note"`
	CompletedAt string `json:"completed_at,omitempty"`
	CreatedAt   string `json:"created_at"`
	Items       []TransferItemResponse `json:"items"`
}

func toTransferResponse(t models.StockTransfer) TransferResponse {
	res := TransferResponse{
		ID:         t.ID,
		Reference:  t.Reference,
		FromBranch: t.FromBranch.Name,
		ToBranch:   t.ToBranch.Name,
		Status:     string(t.Status),
		Note:       t.Note,
		CreatedAt:  t.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:      make([]TransferItemResponse, 0, len(t.Items)),
	}
	if t.CompletedAt != nil {
		res.CompletedAt = t.CompletedAt.Format("2006-01-02 15:04:05")
	}
	for _, it := range t.Items {
		res.Items = append(res.Items, TransferItemResponse{ProductCode: it.ProductCode, Quantity: it.Quantity})
	}
	return res
}

// POST /api/stock-transfers
func CreateTransferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.FromBranchID == 0 || body.ToBranchID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Both branches are required")
		}
		if body.FromBranchID == body.ToBranchID {
			return fiber.NewError(fiber.StatusBadRequest, "Source and destination must differ")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "At least one item is required")
		}
		for _, it := range body.Items {
			if strings.TrimSpace(it.ProductCode) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Every item needs a product code")
			}
			if it.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Item quantities must be positive")
			}
		}

		var from, to models.Branch
		if err := database.DB.First(&from, "id = ?", body.FromBranchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Source branch not found")
		}
		if err := database.DB.First(&to, "id = ?", body.ToBranchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Destination branch not found")
		}

		transfer := models.StockTransfer{
			Reference:    "TR-" + uuid.NewString()[:8],
			FromBranchID: body.FromBranchID,
			ToBranchID:   body.ToBranchID,
			Status:       models.TransferStatusDraft,
			Note:         body.Note,
		}
		for _, it := range body.Items {
			transfer.Items = append(transfer.Items, models.StockTransferItem{
				ProductCode: strings.ToUpper(strings.TrimSpace(it.ProductCode)),
				Quantity:    it.Quantity,
			})
		}

		if err := database.DB.Create(&transfer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create transfer")
		}

		userID, userName, branchID, err := auth.CurrentUser(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    branchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "stock_transfer",
				EntityID:    transfer.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Transfer %s: %s -> %s", transfer.Reference, from.Name, to.Name),
				After:       transfer,
			})
		}

		transfer.FromBranch = from
		transfer.ToBranch = to
		return c.Status(fiber.StatusCreated).JSON(toTransferResponse(transfer))
	}
}

// GET /api/stock-transfers?branch_id=1&status=draft
func ListTransfersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Items").Preload("FromBranch").Preload("ToBranch")

		if bidStr := c.Query("branch_id"); bidStr != "" {
			var bid uint
			if _, err := fmt.Sscan(bidStr, &bid); err == nil && bid > 0 {
				dbq = dbq.Where("from_branch_id = ? OR to_branch_id = ?", bid, bid)
			}
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var transfers []models.StockTransfer
		if err := dbq.Order("created_at DESC").Find(&transfers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transfers")
		}

		res := make([]TransferResponse, 0, len(transfers))
		for _, t := range transfers {
			res = append(res, toTransferResponse(t))
		}
		return c.JSON(res)
	}
}

// GET /api/stock-transfers/:id
func GetTransferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var transfer models.StockTransfer
		if err := database.DB.Preload("Items").Preload("FromBranch").Preload("ToBranch").
			First(&transfer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transfer not found")
		}

		return c.JSON(toTransferResponse(transfer))
	}
}

// POST /api/stock-transfers/:id/complete
// Moves the stock. Decrements at the source, increments at the destination
// and writes history entries for both sides of every item, all in one
// transaction. Insufficient source stock aborts the whole transfer.
func CompleteTransferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var transfer models.StockTransfer
		if err := database.DB.Preload("Items").Preload("FromBranch").Preload("ToBranch").
			First(&transfer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transfer not found")
		}

		if transfer.Status != models.TransferStatusDraft {
			return fiber.NewError(fiber.StatusBadRequest, "Only draft transfers can be completed")
		}

		now := time.Now()

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			for _, item := range transfer.Items {
				if err := moveStock(tx, transfer.FromBranchID, item.ProductCode, -item.Quantity, transfer.Reference, now); err != nil {
					return err
				}
				if err := moveStock(tx, transfer.ToBranchID, item.ProductCode, item.Quantity, transfer.Reference, now); err != nil {
					return err
				}
			}

			transfer.Status = models.TransferStatusCompleted
			transfer.CompletedAt = &now
			return tx.Save(&transfer).Error
		})
		if txErr != nil {
			if strings.Contains(txErr.Error(), "insufficient stock") {
				return fiber.NewError(fiber.StatusBadRequest, txErr.Error())
			}
			logrus.WithError(txErr).Error("transfer completion failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Could not complete transfer")
		}

		userID, userName, branchID, err := auth.CurrentUser(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    branchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "stock_transfer",
				EntityID:    transfer.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Transfer %s completed", transfer.Reference),
				After:       transfer,
			})
		}

		return c.JSON(toTransferResponse(transfer))
	}
}

// moveStock applies one signed stock change and its history entry.
func moveStock(tx *gorm.DB, branchID uint, code string, change int, reference string, now time.Time) error {
	var level models.StockLevel
	err := tx.Where("branch_id = ? AND product_code = ?", branchID, code).First(&level).Error
	if err != nil {
		level = models.StockLevel{BranchID: branchID, ProductCode: code}
	}

	before := level.CurrentStock
	after := before + change
	if after < 0 {
		return fmt.Errorf("insufficient stock for %s at branch %d (have %d, need %d)", code, branchID, before, -change)
	}

	level.CurrentStock = after
	level.LastSyncSource = "transfer"
	level.LastSyncAt = &now
	if err := tx.Save(&level).Error; err != nil {
		return err
	}

	raw, _ := json.Marshal(map[string]string{"transfer": reference})
	history := models.StockHistory{
		BranchID:    branchID,
		ProductCode: code,
		Before:      before,
		Change:      change,
		After:       after,
		Source:      "transfer",
		RawRow:      string(raw),
	}
	return tx.Create(&history).Error
}
