package orders

import (
	"fmt"
	"strings"

	"kikiks-backend/internal/audit"
	"kikiks-backend/internal/auth"
	"kikiks-backend/internal/database"
	"kikiks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"` // empty = take the product's list price
}

type CreateResellerOrderRequest struct {
	BranchID     *uint              `json:"branch_id"`
	ResellerName string             `json:"reseller_name"`
	ContactPhone string             `json:"contact_phone"`
	Note         string             `json:"note"`
	Items        []OrderItemRequest `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type ResellerOrderResponse struct {
	ID           uint                `json:"id"`
	BranchID     uint                `json:"branch_id"`
	ResellerName string              `json:"reseller_name"`
	ContactPhone string              `json:"contact_phone"`
	Status       string              `json:"status"`
	TotalAmount  string              `json:"total_amount"`
	Note         string              `json:"note"`
	CreatedAt    string              `json:"created_at"`
	Items        []OrderItemResponse `json:"items"`
}

func toResellerOrderResponse(o models.ResellerOrder) ResellerOrderResponse {
	res := ResellerOrderResponse{
		ID:           o.ID,
		BranchID:     o.BranchID,
		ResellerName: o.ResellerName,
		ContactPhone: o.ContactPhone,
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

// resolveLines turns item requests into priced order lines. When no unit
// price is given, the product's list price is used.
func resolveLines(items []OrderItemRequest) ([]models.ResellerOrderItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, fmt.Errorf("at least one item is required")
	}

	lines := make([]models.ResellerOrderItem, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		code := strings.ToUpper(strings.TrimSpace(it.ProductCode))
		if code == "" {
			return nil, decimal.Zero, fmt.Errorf("every item needs a product code")
		}
		if it.Quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("item quantities must be positive")
		}

		var price decimal.Decimal
		if it.UnitPrice != "" {
			p, err := decimal.NewFromString(it.UnitPrice)
			if err != nil || p.IsNegative() {
				return nil, decimal.Zero, fmt.Errorf("invalid unit price for %s", code)
			}
			price = p
		} else {
			var product models.Product
			if err := database.DB.Where("code = ?", code).First(&product).Error; err != nil {
				return nil, decimal.Zero, fmt.Errorf("unknown product %s and no unit price given", code)
			}
			price = product.UnitPrice
		}

		lineTotal := price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		lines = append(lines, models.ResellerOrderItem{
			ProductCode: code,
			Quantity:    it.Quantity,
			UnitPrice:   price,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return lines, total, nil
}

var validStatusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusDelivered, models.OrderStatusCancelled},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, s := range validStatusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// POST /api/reseller-orders
func CreateResellerOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateResellerOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.ResellerName = strings.TrimSpace(body.ResellerName)
		if body.ResellerName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Reseller name is required")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		lines, total, err := resolveLines(body.Items)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		order := models.ResellerOrder{
			BranchID:     branchID,
			ResellerName: body.ResellerName,
			ContactPhone: body.ContactPhone,
			Status:       models.OrderStatusPending,
			TotalAmount:  total,
			Note:         body.Note,
			Items:        lines,
		}
		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create order")
		}

		if userID, userName, bID, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    bID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "reseller_order",
				EntityID:    order.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Reseller order for %s, total %s", order.ResellerName, total.StringFixed(2)),
				After:       order,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResellerOrderResponse(order))
	}
}

// GET /api/reseller-orders?branch_id=1&status=pending
func ListResellerOrdersHandler() fiber.Handler {
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

		var ordersList []models.ResellerOrder
		if err := dbq.Order("created_at DESC").Find(&ordersList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		res := make([]ResellerOrderResponse, 0, len(ordersList))
		for _, o := range ordersList {
			res = append(res, toResellerOrderResponse(o))
		}
		return c.JSON(res)
	}
}

// GET /api/reseller-orders/:id
func GetResellerOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.ResellerOrder
		if err := database.DB.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		return c.JSON(toResellerOrderResponse(order))
	}
}

// PUT /api/reseller-orders/:id/status
func UpdateResellerOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.ResellerOrder
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
				EntityType:  "reseller_order",
				EntityID:    order.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Order status %s -> %s", before, newStatus),
				Before:      fiber.Map{"status": before},
				After:       fiber.Map{"status": newStatus},
			})
		}

		return c.JSON(toResellerOrderResponse(order))
	}
}
