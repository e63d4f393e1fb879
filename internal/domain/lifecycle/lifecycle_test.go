package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	"github.com/aqualab/aqualab-api/internal/domain/lifecycle"
)

func TestEsEstadoValido(t *testing.T) {
	for _, e := range []entity.EstadoMuestra{
		entity.EstadoRecibida, entity.EstadoEnAnalisis, entity.EstadoPendiente,
		entity.EstadoFinalizada, entity.EstadoRechazada,
	} {
		assert.True(t, lifecycle.EsEstadoValido(e), "%q debe ser válido", e)
	}
	assert.False(t, lifecycle.EsEstadoValido("Archivada"))
	assert.False(t, lifecycle.EsEstadoValido(""))
}

func TestEsTerminal(t *testing.T) {
	assert.True(t, lifecycle.EsTerminal(entity.EstadoFinalizada))
	assert.True(t, lifecycle.EsTerminal(entity.EstadoRechazada))
	assert.False(t, lifecycle.EsTerminal(entity.EstadoRecibida))
	assert.False(t, lifecycle.EsTerminal(entity.EstadoEnAnalisis))
	assert.False(t, lifecycle.EsTerminal(entity.EstadoPendiente))
}

func TestPuedeTransicionar_TablaCompleta(t *testing.T) {
	casos := []struct {
		nombre  string
		desde   entity.EstadoMuestra
		hacia   entity.EstadoMuestra
		rol     entity.Rol
		wantErr error // nil si la transición es legal
	}{
		{"creación por administrador", "", entity.EstadoRecibida, entity.RolAdministrador, nil},
		{"creación por super admin", "", entity.EstadoRecibida, entity.RolSuperAdmin, nil},
		{"creación por laboratorista", "", entity.EstadoRecibida, entity.RolLaboratorista, domain.ErrPermisoDenegado},
		{"recibida a en análisis por laboratorista", entity.EstadoRecibida, entity.EstadoEnAnalisis, entity.RolLaboratorista, nil},
		{"recibida a en análisis por administrador", entity.EstadoRecibida, entity.EstadoEnAnalisis, entity.RolAdministrador, domain.ErrPermisoDenegado},
		{"recibida a finalizada por administrador", entity.EstadoRecibida, entity.EstadoFinalizada, entity.RolAdministrador, nil},
		{"en análisis a finalizada por administrador", entity.EstadoEnAnalisis, entity.EstadoFinalizada, entity.RolAdministrador, nil},
		{"en análisis a finalizada por super admin", entity.EstadoEnAnalisis, entity.EstadoFinalizada, entity.RolSuperAdmin, nil},
		{"en análisis a finalizada por cliente", entity.EstadoEnAnalisis, entity.EstadoFinalizada, entity.RolCliente, domain.ErrPermisoDenegado},
		{"rechazo desde recibida", entity.EstadoRecibida, entity.EstadoRechazada, entity.RolAdministrador, nil},
		{"rechazo desde en análisis", entity.EstadoEnAnalisis, entity.EstadoRechazada, entity.RolAdministrador, nil},
		{"rechazo desde pendiente", entity.EstadoPendiente, entity.EstadoRechazada, entity.RolAdministrador, nil},
		{"rechazo desde finalizada", entity.EstadoFinalizada, entity.EstadoRechazada, entity.RolAdministrador, domain.ErrEstadoInvalido},
		{"sin transición de pendiente a en análisis", entity.EstadoPendiente, entity.EstadoEnAnalisis, entity.RolLaboratorista, domain.ErrEstadoInvalido},
		{"estado origen desconocido", "Archivada", entity.EstadoFinalizada, entity.RolAdministrador, domain.ErrEstadoInvalido},
		{"estado destino desconocido", entity.EstadoRecibida, "Archivada", entity.RolAdministrador, domain.ErrEstadoInvalido},
		{"terminal no admite transiciones", entity.EstadoRechazada, entity.EstadoRecibida, entity.RolAdministrador, domain.ErrEstadoInvalido},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			err := lifecycle.PuedeTransicionar(tc.desde, tc.hacia, tc.rol)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestPuedeIngresarResultados_SoloRecibidaYEnAnalisis(t *testing.T) {
	casos := []struct {
		estado  entity.EstadoMuestra
		permite bool
	}{
		{entity.EstadoRecibida, true},
		{entity.EstadoEnAnalisis, true},
		{entity.EstadoPendiente, false},
		{entity.EstadoFinalizada, false},
		{entity.EstadoRechazada, false},
	}
	for _, tc := range casos {
		t.Run(string(tc.estado), func(t *testing.T) {
			err := lifecycle.PuedeIngresarResultados(tc.estado)
			if tc.permite {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
				// El mensaje nombra los estados admitidos, no solo el rechazo.
				assert.Contains(t, err.Error(), string(entity.EstadoRecibida))
				assert.Contains(t, err.Error(), string(entity.EstadoEnAnalisis))
			}
		})
	}
}

func TestPuedeVerificar(t *testing.T) {
	sinVerificar := &entity.Resultado{IDMuestra: "M-1"}
	verificado := &entity.Resultado{IDMuestra: "M-1", Verificado: true}

	assert.ErrorIs(t, lifecycle.PuedeVerificar(nil, entity.RolAdministrador), domain.ErrNotFound)
	assert.ErrorIs(t, lifecycle.PuedeVerificar(sinVerificar, entity.RolLaboratorista), domain.ErrPermisoDenegado)
	assert.ErrorIs(t, lifecycle.PuedeVerificar(sinVerificar, entity.RolCliente), domain.ErrPermisoDenegado)
	assert.ErrorIs(t, lifecycle.PuedeVerificar(verificado, entity.RolAdministrador), domain.ErrYaVerificado)
	assert.NoError(t, lifecycle.PuedeVerificar(sinVerificar, entity.RolAdministrador))
	assert.NoError(t, lifecycle.PuedeVerificar(sinVerificar, entity.RolSuperAdmin))
}
