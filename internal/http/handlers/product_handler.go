package handlers

import (
	"github.com/gofiber/fiber/v2"

	"selectshop/internal/domain"
	applog "selectshop/internal/log"
	"selectshop/internal/services"
	"selectshop/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req services.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	resp, err := h.Products.CreateProduct(currentUser(c), req)
	if err != nil {
		return writeErr(c, "product.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product": resp.ID})
	return c.Status(fiber.StatusCreated).JSON(resp)
}

type mypriceRequest struct {
	Myprice int `json:"myprice"`
}

func (h *ProductHandler) UpdateMyprice(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var req mypriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	resp, err := h.Products.UpdateMyprice(id, req.Myprice)
	if err != nil {
		return writeErr(c, "product.myprice", err)
	}
	applog.Audit(c, "product.myprice", map[string]any{"product": id, "myprice": req.Myprice})
	return c.JSON(resp)
}

// pagingParams parses ?page=&size=&sortBy=&isAsc= the same way for both
// listing endpoints.
func pagingParams(c *fiber.Ctx) (page, size int, sortBy string, asc bool) {
	page = validate.Page(c.Query("page", "1"))
	size = validate.Size(c.Query("size", "10"))
	sortBy = c.Query("sortBy", "id")
	asc = c.QueryBool("isAsc", false)
	return
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, size, sortBy, asc := pagingParams(c)
	resp, err := h.Products.GetProducts(currentUser(c), page, size, sortBy, asc)
	if err != nil {
		return writeErr(c, "product.list", err)
	}
	return c.JSON(resp)
}

func (h *ProductHandler) ListInFolder(c *fiber.Ctx) error {
	folderID, ok := validate.ID(c.Params("folderId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid folder id"})
	}
	page, size, sortBy, asc := pagingParams(c)
	resp, err := h.Products.GetProductsInFolder(currentUser(c), folderID, page, size, sortBy, asc)
	if err != nil {
		return writeErr(c, "product.list.folder", err)
	}
	return c.JSON(resp)
}

func (h *ProductHandler) AddFolder(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	folderID, ok := validate.ID(c.Query("folderId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid folder id"})
	}
	if err := h.Products.AddFolder(productID, folderID, currentUser(c)); err != nil {
		return writeErr(c, "product.folder.add", err)
	}
	applog.Audit(c, "product.folder.add", map[string]any{"product": productID, "folder": folderID})
	return c.SendStatus(fiber.StatusNoContent)
}

// Sync applies an externally sourced item record to one product. The search
// integration posts the item it found; this endpoint only consumes its shape.
func (h *ProductHandler) Sync(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var item domain.Item
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if _, ok := validate.Title(item.Title); !ok || item.Lprice < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item record"})
	}
	resp, err := h.Products.UpdateBySearch(id, item)
	if err != nil {
		return writeErr(c, "product.sync", err)
	}
	applog.Info(c, "product.sync", map[string]any{"product": id, "lprice": item.Lprice})
	return c.JSON(resp)
}
