package picking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Zona (una letra mayúscula) + posición, separador ("/" o "-") + nivel: "A12/3", "B4-1".
// La normalización de la cadena vive fuera de este paquete; aquí solo se descompone.
var locationPattern = regexp.MustCompile(`^([A-Z])([0-9]+)[/\-]([0-9]+)$`)

// LocationToken ubicación descompuesta, usada solo para ordenar y armar el recorrido.
type LocationToken struct {
	Zone     string
	Position int
	Level    int
}

// ParseLocation descompone una ubicación. Devuelve ErrUnparseableLocation si no cumple el patrón.
func ParseLocation(location string) (LocationToken, error) {
	m := locationPattern.FindStringSubmatch(strings.TrimSpace(location))
	if m == nil {
		return LocationToken{}, fmt.Errorf("%w: %q", ErrUnparseableLocation, location)
	}
	position, err := strconv.Atoi(m[2])
	if err != nil {
		return LocationToken{}, fmt.Errorf("%w: posición %q: %v", ErrUnparseableLocation, m[2], err)
	}
	level, err := strconv.Atoi(m[3])
	if err != nil {
		return LocationToken{}, fmt.Errorf("%w: nivel %q: %v", ErrUnparseableLocation, m[3], err)
	}
	return LocationToken{Zone: m[1], Position: position, Level: level}, nil
}

// compareTokens orden físico de recorrido: zona, posición, nivel.
func compareTokens(a, b LocationToken) int {
	if a.Zone != b.Zone {
		if a.Zone < b.Zone {
			return -1
		}
		return 1
	}
	if a.Position != b.Position {
		return a.Position - b.Position
	}
	return a.Level - b.Level
}
