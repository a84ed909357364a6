package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reactiverse/core/internal/application/services"
	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/ports"
)

// PageHandler handles CMS page requests
type PageHandler struct {
	pageService *services.PageService
	logger      *logger.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(pageService *services.PageService, logger *logger.Logger) *PageHandler {
	return &PageHandler{
		pageService: pageService,
		logger:      logger,
	}
}

// GetPage godoc
// @Summary Get a static page
// @Tags pages
// @Produce json
// @Param slug path string true "Page slug"
// @Success 200 {object} entities.PageContent
// @Failure 404 {object} ports.ActionResult
// @Router /pages/{slug} [get]
func (h *PageHandler) GetPage(c echo.Context) error {
	slug := c.Param("slug")

	page, err := h.pageService.GetPage(c.Request().Context(), slug)
	if err != nil {
		return lookupFailed(c, h.logger, err, entities.ErrPageNotFound, ports.MsgPageNotFound, "slug", slug)
	}

	return c.JSON(http.StatusOK, page)
}

// ListPages godoc
// @Summary List all static pages
// @Tags admin
// @Produce json
// @Success 200 {array} entities.PageContent
// @Security BearerAuth
// @Router /admin/pages [get]
func (h *PageHandler) ListPages(c echo.Context) error {
	pages, err := h.pageService.ListPages(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List pages failed", "error", err)
		return writeResult(c, ports.Failed(ports.OutcomeStorage, ports.MsgGenericFailure))
	}

	if pages == nil {
		pages = []*entities.PageContent{}
	}
	return c.JSON(http.StatusOK, pages)
}

// UpdatePage godoc
// @Summary Create or replace a static page
// @Tags admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param slug path string true "Page slug"
// @Param request body ports.UpdatePageRequest true "Page content"
// @Success 200 {object} ports.ActionResult
// @Failure 400 {object} ports.ActionResult
// @Security BearerAuth
// @Router /admin/pages/{slug} [put]
func (h *PageHandler) UpdatePage(c echo.Context) error {
	var req ports.UpdatePageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	req.Slug = c.Param("slug")

	return writeResult(c, h.pageService.UpdatePage(c.Request().Context(), req))
}
