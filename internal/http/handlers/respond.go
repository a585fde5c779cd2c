package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "selectshop/internal/log"
	"selectshop/internal/services"
)

// writeErr translates the service error taxonomy into HTTP statuses:
// not-found 404, invalid input 400, ownership 403, duplicates 409.
func writeErr(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrFolderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPriceBelowMin),
		errors.Is(err, services.ErrBadSortField),
		errors.Is(err, services.ErrBadInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotOwner):
		applog.Security(c, action+".denied", nil)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateFolder),
		errors.Is(err, services.ErrDuplicateFolderName):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
}
