package orders

import (
	"fmt"
	"strings"
	"time"

	"kikiks-backend/internal/audit"
	"kikiks-backend/internal/auth"
	"kikiks-backend/internal/database"
	"kikiks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSeasonalOrderRequest struct {
	BranchID     *uint              `json:"branch_id"`
	Label        string             `json:"label"`
	CustomerName string             `json:"customer_name"`
	TargetDate   string             `json:"target_date"` // "2026-12-20"
	Note         string             `json:"note"`
	Items        []OrderItemRequest `json:"items"`
}

type SeasonalOrderResponse struct {
	ID           uint                `json:"id"`
	BranchID     uint                `json:"branch_id"`
	Label        string              `json:"label"`
	CustomerName string              `json:"customer_name"`
	TargetDate   string              `json:"target_date"`
	Status       string              `json:"status"`
	TotalAmount  string              `json:"total_amount"`
	Note         string              `json:"note"`
	CreatedAt    string              `json:"created_at"`
	Items        []OrderItemResponse `json:"items"`
}

func toSeasonalOrderResponse(o models.SeasonalOrder) SeasonalOrderResponse {
	res := SeasonalOrderResponse{
		ID:           o.ID,
		BranchID:     o.BranchID,
		Label:        o.Label,
		CustomerName: o.CustomerName,
		TargetDate:   o.TargetDate.Format("2006-01-02"),
		Status:       string(o.Status),
		TotalAmount:  o.TotalAmount.StringFixed(2),
		Note:         o.Note,
		CreatedAt:    o.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:        make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		res.Items = append(res.Items, OrderItemResponse{
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			LineTotal:   it.LineTotal.StringFixed(2),
		})
	}
	return res
}

// POST /api/seasonal-orders
func CreateSeasonalOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSeasonalOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Label = strings.TrimSpace(body.Label)
		if body.Label == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Label is required")
		}

		targetDate, err := time.Parse("2006-01-02", body.TargetDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "target_date must be YYYY-MM-DD")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		lines, total, err := resolveLines(body.Items)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// same line shape, different table
		items := make([]models.SeasonalOrderItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, models.SeasonalOrderItem{
				ProductCode: l.ProductCode,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				LineTotal:   l.LineTotal,
			})
		}

		order := models.SeasonalOrder{
			BranchID:     branchID,
			Label:        body.Label,
			CustomerName: strings.TrimSpace(body.CustomerName),
			TargetDate:   targetDate,
			Status:       models.OrderStatusPending,
			TotalAmount:  total,
			Note:         body.Note,
			Items:        items,
		}
		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create order")
		}

		if userID, userName, bID, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    bID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "seasonal_order",
				EntityID:    order.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Seasonal order %q, total %s", order.Label, total.StringFixed(2)),
				After:       order,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toSeasonalOrderResponse(order))
	}
}

// GET /api/seasonal-orders?branch_id=1&status=pending
func ListSeasonalOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Items")

		if bidStr := c.Query("branch_id"); bidStr != "" {
			var bid uint
			if _, err := fmt.Sscan(bidStr, &bid); err == nil && bid > 0 {
				dbq = dbq.Where("branch_id = ?", bid)
			}
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var ordersList []models.SeasonalOrder
		if err := dbq.Order("target_date ASC").Find(&ordersList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		res := make([]SeasonalOrderResponse, 0, len(ordersList))
		for _, o := range ordersList {
			res = append(res, toSeasonalOrderResponse(o))
		}
		return c.JSON(res)
	}
}

// GET /api/seasonal-orders/:id
func GetSeasonalOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.SeasonalOrder
		if err := database.DB.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		return c.JSON(toSeasonalOrderResponse(order))
	}
}

// PUT /api/seasonal-orders/:id/status
func UpdateSeasonalOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.SeasonalOrder
		if err := database.DB.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		var body UpdateOrderStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		newStatus := models.OrderStatus(body.Status)
		if !canTransition(order.Status, newStatus) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Cannot change status from %s to %s", order.Status, body.Status))
		}

		before := order.Status
		order.Status = newStatus
		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update order")
		}

		if userID, userName, bID, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    bID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "seasonal_order",
				EntityID:    order.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Order status %s -> %s", before, newStatus),
				Before:      fiber.Map{"status": before},
				After:       fiber.Map{"status": newStatus},
			})
		}

		return c.JSON(toSeasonalOrderResponse(order))
	}
}
