package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "selectshop/internal/log"
	"selectshop/internal/services"
)

type FolderHandler struct {
	Folders *services.FolderService
}

type addFoldersRequest struct {
	Names []string `json:"names"`
}

func (h *FolderHandler) Add(c *fiber.Ctx) error {
	var req addFoldersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	resp, err := h.Folders.AddFolders(currentUser(c), req.Names)
	if err != nil {
		return writeErr(c, "folder.add", err)
	}
	applog.Audit(c, "folder.add", map[string]any{"count": len(resp)})
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *FolderHandler) List(c *fiber.Ctx) error {
	resp, err := h.Folders.GetFolders(currentUser(c))
	if err != nil {
		return writeErr(c, "folder.list", err)
	}
	return c.JSON(resp)
}
