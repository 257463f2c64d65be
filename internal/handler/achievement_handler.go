package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 実績（受賞・掲載など）のHTTP
type AchievementHandler struct {
	uc *usecase.AchievementUsecase
}

// DI
func NewAchievementHandler(uc *usecase.AchievementUsecase) *AchievementHandler {
	return &AchievementHandler{uc: uc}
}

type AchievementCreateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Year         string `json:"year"`
	DisplayOrder int64  `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

func (h *AchievementHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/achievements", h.listPublic)

	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/achievements", h.adminList)
	admin.POST("/achievements", h.create)
	admin.DELETE("/achievements/:id", h.delete)
}

func (h *AchievementHandler) listPublic(c echo.Context) error {
	items, err := h.uc.ListPublic(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AchievementHandler) adminList(c echo.Context) error {
	items, err := h.uc.AdminList(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AchievementHandler) create(c echo.Context) error {
	var req AchievementCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	a, err := h.uc.AdminCreate(c.Request().Context(), usecase.AchievementInput{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Year:         req.Year,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, a)
}

func (h *AchievementHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.AdminDelete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "achievement deleted"})
}
