package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-picking/internal/application/picking"
	"github.com/jhoicas/Inventario-picking/pkg/jwt"
	"github.com/jhoicas/Inventario-picking/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PlanUC    *picking.PlanUseCase
	ConfirmUC *picking.ConfirmUseCase
	Logger    *logger.Logger
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	pickingHandler := NewPickingHandler(deps.PlanUC, deps.ConfirmUC, deps.Logger)
	pick := api.Group("/picking")
	pick.Post("/plan", pickingHandler.Plan)
	pick.Post("/plan/single", pickingHandler.PlanSingle)
	pick.Post("/route-sheet", pickingHandler.RouteSheet)
	// Confirmar mueve stock: solo personal de bodega
	pick.Post("/confirm", RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero), pickingHandler.Confirm)
}
