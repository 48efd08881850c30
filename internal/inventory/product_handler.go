package inventory

import (
	"strings"

	"kikiks-backend/internal/catalog"
	"kikiks-backend/internal/database"
	"kikiks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
}

type UpdateProductRequest struct {
	Name      *string `json:"name"`
	UnitPrice *string `json:"unit_price"`
	Active    *bool   `json:"active"`
}

type ProductResponse struct {
	ID         uint   `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	SizeCode   string `json:"size_code"`
	FlavorCode string `json:"flavor_code"`
	UnitPrice  string `json:"unit_price"`
	Active     bool   `json:"active"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		SizeCode:   p.SizeCode,
		FlavorCode: p.FlavorCode,
		UnitPrice:  p.UnitPrice.StringFixed(2),
		Active:     p.Active,
	}
}

// splitCode breaks "FGC-005" into its size and flavor parts.
func splitCode(code string) (string, string, bool) {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Code = strings.ToUpper(strings.TrimSpace(body.Code))
		body.Name = strings.TrimSpace(body.Name)
		if body.Code == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Code and name are required")
		}

		sizeCode, flavorCode, ok := splitCode(body.Code)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Code must look like SIZE-FLAVOR, e.g. FGC-005")
		}

		price := decimal.Zero
		if body.UnitPrice != "" {
			var err error
			price, err = decimal.NewFromString(body.UnitPrice)
			if err != nil || price.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid unit price")
			}
		}

		var exist models.Product
		if err := database.DB.Where("code = ?", body.Code).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "A product with this code already exists")
		}

		product := models.Product{
			Code:       body.Code,
			Name:       body.Name,
			SizeCode:   sizeCode,
			FlavorCode: flavorCode,
			UnitPrice:  price,
			Active:     true,
		}
		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Product name cannot be empty")
			}
			product.Name = name
		}
		if body.UnitPrice != nil {
			price, err := decimal.NewFromString(*body.UnitPrice)
			if err != nil || price.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid unit price")
			}
			product.UnitPrice = price
		}
		if body.Active != nil {
			product.Active = *body.Active
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}

		return c.JSON(toProductResponse(product))
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})
		if c.Query("active") == "true" {
			dbq = dbq.Where("active = ?", true)
		}

		var products []models.Product
		if err := dbq.Order("code ASC").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/catalog/codes
// Full size x flavor listing, independent of which products exist in the DB.
func ListCatalogCodesHandler(cat catalog.Catalog) fiber.Handler {
	variants := cat.AllVariants()
	return func(c *fiber.Ctx) error {
		return c.JSON(variants)
	}
}

// POST /api/admin/products/generate
// Creates a product row for every catalog variant that does not exist yet.
func GenerateProductsHandler(cat catalog.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		created := 0
		skipped := 0

		for _, v := range cat.AllVariants() {
			var exist models.Product
			if err := database.DB.Where("code = ?", v.Code).First(&exist).Error; err == nil {
				skipped++
				continue
			}

			product := models.Product{
				Code:       v.Code,
				Name:       v.Name,
				SizeCode:   v.SizeCode,
				FlavorCode: v.FlavorCode,
				UnitPrice:  decimal.Zero,
				Active:     true,
			}
			if err := database.DB.Create(&product).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not create product "+v.Code)
			}
			created++
		}

		return c.JSON(fiber.Map{
			"created": created,
			"skipped": skipped,
		})
	}
}
