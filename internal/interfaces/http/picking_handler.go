package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-picking/internal/application/dto"
	"github.com/jhoicas/Inventario-picking/internal/application/picking"
	"github.com/jhoicas/Inventario-picking/internal/domain"
	"github.com/jhoicas/Inventario-picking/pkg/logger"
)

// PickingHandler planes de picking, hoja de ruta y confirmación (protegido).
type PickingHandler struct {
	plan    *picking.PlanUseCase
	confirm *picking.ConfirmUseCase
	log     *logger.Logger
}

// NewPickingHandler construye el handler.
func NewPickingHandler(plan *picking.PlanUseCase, confirm *picking.ConfirmUseCase, log *logger.Logger) *PickingHandler {
	return &PickingHandler{plan: plan, confirm: confirm, log: log}
}

// Plan godoc
// @Summary      Plan de picking por lote
// @Description  Calcula, para cada demanda, de qué ubicaciones sacar y cuánto (FEFO por fecha
//
//	de fabricación), más el recorrido unificado por zona/posición/nivel. No descuenta stock.
//
// @Tags         picking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkPlanRequest  true  "demandas (product_code admite sufijo Xn)"
// @Success      200   {object}  dto.BulkPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/picking/plan [post]
func (h *PickingHandler) Plan(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.BulkPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.plan.PlanBulk(c.Context(), companyID, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// PlanSingle godoc
// @Summary      Plan de picking de una demanda
// @Tags         picking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DemandRequest  true  "product_code, product_name, quantity"
// @Success      200   {object}  dto.SinglePlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/picking/plan/single [post]
func (h *PickingHandler) PlanSingle(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.DemandRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.plan.PlanSingle(c.Context(), companyID, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// RouteSheet godoc
// @Summary      Hoja de picking en PDF
// @Description  Mismo cálculo que /api/picking/plan, impreso en orden de recorrido con QR de la referencia.
// @Tags         picking
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.BulkPlanRequest  true  "demandas; reference opcional (se genera si falta)"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/picking/route-sheet [post]
func (h *PickingHandler) RouteSheet(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.BulkPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdf, reference, err := h.plan.RouteSheet(c.Context(), companyID, in)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="picking-%s.pdf"`, reference))
	c.Set("X-Picking-Reference", reference)
	return c.Send(pdf)
}

// Confirm godoc
// @Summary      Confirmar picking
// @Description  Descuenta las cantidades del plan. Si alguna ubicación cambió desde que se calculó
//
//	el plan (expected_available distinto) se rechaza todo con 409 STALE_PLAN.
//
// @Tags         picking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmPickingRequest  true  "líneas: stock_record_id, to_pick, expected_available"
// @Success      201   {object}  dto.ConfirmPickingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/picking/confirm [post]
func (h *PickingHandler) Confirm(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConfirmPickingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.confirm.Confirm(c.Context(), companyID, userID, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// fail traduce errores de dominio a HTTP. Los mensajes de validación llegan al cliente
// porque indican la línea a corregir.
func (h *PickingHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STALE_PLAN", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Str("company_id", GetCompanyID(c)).Msg("error interno en picking")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
