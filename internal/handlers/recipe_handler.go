package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/reqctx"
	"github.com/sazonapp/sazon-backend/internal/services"
)

type RecipeHandler struct {
	recipeService *services.RecipeService
}

func NewRecipeHandler(recipeService *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// Feed handles GET /api/recetas?q=&limit=&offset=.
func (h *RecipeHandler) Feed(c *fiber.Ctx) error {
	viewer, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	search := strings.TrimSpace(c.Query("q", ""))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	recipes, total, err := h.recipeService.Feed(viewer, search, limit, offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"recetas": recipes,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// Get handles GET /api/recetas/:id.
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	viewer, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid recipe ID")
	}

	recipe, err := h.recipeService.Get(viewer, recipeID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(recipe)
}

// AddComment handles POST /api/recetas/:id/comentarios.
func (h *RecipeHandler) AddComment(c *fiber.Ctx) error {
	viewer, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid recipe ID")
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Body) == "" {
		return badRequest(c, "Comment body is required")
	}

	comment, err := h.recipeService.AddComment(viewer, recipeID, strings.TrimSpace(req.Body))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// Like handles POST /api/recetas/:id/like.
func (h *RecipeHandler) Like(c *fiber.Ctx) error {
	viewer, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid recipe ID")
	}

	if err := h.recipeService.Like(viewer, recipeID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Liked"})
}
