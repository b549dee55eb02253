package picking

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Inventario-picking/internal/domain"
)

// Errores de llamada (parámetros mal formados). Los datos defectuosos nunca producen error,
// solo diagnósticos.
var (
	ErrNonPositiveQuantity = fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	ErrEmptyDemands        = fmt.Errorf("%w: la lista de demandas está vacía", domain.ErrInvalidInput)
)

// ErrUnparseableLocation la ubicación no cumple el patrón zona+posición/nivel.
var ErrUnparseableLocation = errors.New("ubicación no reconocida")
