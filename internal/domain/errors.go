package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Política de fallos: toda precondición incumplida se reporta al llamador como
// operación rechazada con mensaje legible; nada se reintenta automáticamente y
// nada es fatal para el proceso.
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrValidacion      = errors.New("entrada inválida")
	ErrEstadoInvalido  = errors.New("estado de la muestra no permite la operación")
	ErrPermisoDenegado = errors.New("acceso denegado")
	ErrYaVerificado    = errors.New("el resultado ya fue verificado")
	ErrSesionExpirada  = errors.New("sesión expirada o inválida")
	ErrRemoto          = errors.New("error del servicio remoto")
	ErrConflict        = errors.New("conflicto con el estado actual")
)
