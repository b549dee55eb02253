package repository

import (
	"context"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
)

// PickingMovementRepository historial de extracciones confirmadas.
type PickingMovementRepository interface {
	Create(ctx context.Context, mov *entity.PickingMovement) error
}
