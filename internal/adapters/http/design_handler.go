package http

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reactiverse/core/internal/application/services"
	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/ports"
)

// DesignHandler handles design-related requests
type DesignHandler struct {
	designService *services.DesignService
	logger        *logger.Logger
}

// NewDesignHandler creates a new design handler
func NewDesignHandler(designService *services.DesignService, logger *logger.Logger) *DesignHandler {
	return &DesignHandler{
		designService: designService,
		logger:        logger,
	}
}

// ListDesigns godoc
// @Summary List all designs
// @Tags designs
// @Produce json
// @Success 200 {array} entities.Design
// @Router /designs [get]
func (h *DesignHandler) ListDesigns(c echo.Context) error {
	designs, err := h.designService.GetAllDesigns(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List designs failed", "error", err)
		return writeResult(c, ports.Failed(ports.OutcomeStorage, ports.MsgGenericFailure))
	}

	return c.JSON(http.StatusOK, nonNil(designs))
}

// GetDesign godoc
// @Summary Get design by ID
// @Tags designs
// @Produce json
// @Param id path string true "Design ID"
// @Success 200 {object} entities.Design
// @Failure 404 {object} ports.ActionResult
// @Router /designs/{id} [get]
func (h *DesignHandler) GetDesign(c echo.Context) error {
	id := c.Param("id")

	design, err := h.designService.GetDesignByID(c.Request().Context(), id)
	if err != nil {
		return lookupFailed(c, h.logger, err, entities.ErrDesignNotFound, ports.MsgDesignNotFound, "design_id", id)
	}

	return c.JSON(http.StatusOK, design)
}

// ListUserDesigns godoc
// @Summary List the designs a user submitted
// @Tags designs
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} entities.Design
// @Router /users/{id}/designs [get]
func (h *DesignHandler) ListUserDesigns(c echo.Context) error {
	userID := c.Param("id")

	designs, err := h.designService.GetDesignsByUser(c.Request().Context(), userID)
	if err != nil {
		h.logger.Errorw("List user designs failed", "error", err, "user_id", userID)
		return writeResult(c, ports.Failed(ports.OutcomeStorage, ports.MsgGenericFailure))
	}

	return c.JSON(http.StatusOK, nonNil(designs))
}

// SubmitDesign godoc
// @Summary Submit a new design
// @Description Form bodies carry tags as a comma separated string.
// @Tags designs
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body ports.SubmitDesignRequest true "Design data"
// @Success 200 {object} ports.ActionResult
// @Failure 400 {object} ports.ActionResult
// @Failure 404 {object} ports.ActionResult
// @Security BearerAuth
// @Router /designs [post]
func (h *DesignHandler) SubmitDesign(c echo.Context) error {
	var req ports.SubmitDesignRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	if isFormRequest(c) {
		req.Tags = entities.SplitTags(c.FormValue("tags"))

		if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsInf(price, 0) || math.IsNaN(price) {
				return writeResult(c, ports.FieldFailed(ports.OutcomeValidation, ports.MsgValidationFailed, "price", "Price must be a number."))
			}
			req.Price = &price
		}
	}
	req.SubmittedByUserID = currentSubject(c)

	return writeResult(c, h.designService.SubmitDesign(c.Request().Context(), req))
}

// DeleteDesign godoc
// @Summary Delete a design
// @Description Only the submitter or an administrator may delete a design.
// @Tags designs
// @Produce json
// @Param id path string true "Design ID"
// @Success 200 {object} ports.ActionResult
// @Failure 403 {object} ports.ActionResult
// @Failure 404 {object} ports.ActionResult
// @Security BearerAuth
// @Router /designs/{id} [delete]
func (h *DesignHandler) DeleteDesign(c echo.Context) error {
	req := ports.DeleteDesignRequest{
		DesignID: c.Param("id"),
		UserID:   currentSubject(c),
		Role:     currentRole(c),
	}

	return writeResult(c, h.designService.DeleteDesign(c.Request().Context(), req))
}

func isFormRequest(c echo.Context) bool {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ctype, echo.MIMEApplicationForm) || strings.HasPrefix(ctype, echo.MIMEMultipartForm)
}

func nonNil(designs []*entities.Design) []*entities.Design {
	if designs == nil {
		return []*entities.Design{}
	}
	return designs
}
