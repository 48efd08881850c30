package auth

import (
	"kikiks-backend/internal/database"
	"kikiks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser resolves the authenticated user from the request context.
// Returns the user id, display name and branch (nil for super admins).
func CurrentUser(c *fiber.Ctx) (uint, string, *uint, error) {
	roleVal := c.Locals(CtxUserRoleKey)
	if _, ok := roleVal.(models.UserRole); !ok {
		return 0, "", nil, fiber.NewError(fiber.StatusForbidden, "Role information missing")
	}

	userIDVal := c.Locals(CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", nil, fiber.NewError(fiber.StatusForbidden, "User information missing")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", nil, fiber.NewError(fiber.StatusInternalServerError, "User not found")
	}

	var branchID *uint
	bVal := c.Locals(CtxBranchIDKey)
	if bPtr, ok := bVal.(*uint); ok && bPtr != nil {
		branchID = bPtr
	}

	return userID, user.Name, branchID, nil
}

// ResolveBranchID picks the effective branch for a request: branch admins are
// pinned to their own branch, super admins may target any branch explicitly.
func ResolveBranchID(c *fiber.Ctx, requested *uint) (uint, error) {
	roleVal := c.Locals(CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Role information missing")
	}

	if role == models.RoleBranchAdmin {
		bVal := c.Locals(CtxBranchIDKey)
		bPtr, ok := bVal.(*uint)
		if !ok || bPtr == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Branch information missing")
		}
		return *bPtr, nil
	}

	if requested == nil || *requested == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "branch_id is required")
	}
	return *requested, nil
}
