// Package firma valida payloads de firmas digitales capturadas en el pad de
// firma: data URI PNG en base64, con tope de tamaño.
package firma

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/aqualab/aqualab-api/internal/domain"
)

// MaxBytes tamaño máximo del payload completo (data URI incluido): 2 MB.
const MaxBytes = 2 * 1024 * 1024

const prefijoPNG = "data:image/png;base64,"

// Validar verifica que el payload sea una firma aceptable: no vacío, dentro del
// tope de tamaño, data URI PNG y base64 decodificable a un PNG bien formado.
func Validar(payload string) error {
	if payload == "" {
		return fmt.Errorf("%w: la firma es requerida", domain.ErrValidacion)
	}
	if len(payload) > MaxBytes {
		return fmt.Errorf("%w: la firma no puede exceder 2MB", domain.ErrValidacion)
	}
	if !strings.HasPrefix(payload, prefijoPNG) {
		return fmt.Errorf("%w: formato de firma inválido, se espera un data URI PNG", domain.ErrValidacion)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(payload, prefijoPNG))
	if err != nil {
		return fmt.Errorf("%w: la firma no es base64 válido", domain.ErrValidacion)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("%w: la firma no es una imagen PNG válida", domain.ErrValidacion)
	}
	return nil
}
