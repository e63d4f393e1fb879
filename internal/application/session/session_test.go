package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aqualab/aqualab-api/internal/application/session"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	"github.com/aqualab/aqualab-api/pkg/jwt"
)

func TestDesde_CopiaClaimsYToken(t *testing.T) {
	data := &jwt.SessionData{
		UserID:    "u-1",
		Documento: "1098765432",
		Nombre:    "Laura Méndez",
		Email:     "laura@lab.test",
		Rol:       "administrador",
	}
	ses := session.Desde(data, "tok-abc")

	assert.Equal(t, "u-1", ses.UserID)
	assert.Equal(t, "1098765432", ses.Documento)
	assert.Equal(t, entity.RolAdministrador, ses.Rol)
	assert.Equal(t, "tok-abc", ses.Token)
}

func TestCapacidades_PorRol(t *testing.T) {
	casos := []struct {
		rol  entity.Rol
		want session.Capacidades
	}{
		{entity.RolAdministrador, session.Capacidades{
			RegistrarMuestras: true, VerificarResultados: true,
			AdministrarUsuarios: true, VerResultados: true,
		}},
		{entity.RolSuperAdmin, session.Capacidades{
			RegistrarMuestras: true, VerificarResultados: true,
			AdministrarUsuarios: true, VerResultados: true,
		}},
		{entity.RolLaboratorista, session.Capacidades{
			IngresarResultados: true, VerResultados: true,
		}},
		{entity.RolCliente, session.Capacidades{}},
		{entity.Rol("desconocido"), session.Capacidades{}},
	}
	for _, tc := range casos {
		t.Run(string(tc.rol), func(t *testing.T) {
			ses := session.Sesion{Rol: tc.rol}
			assert.Equal(t, tc.want, ses.Capacidades())
		})
	}
}

// Un administrador no ingresa resultados y un laboratorista no verifica: los
// dos lados del workflow quedan en manos distintas.
func TestCapacidades_SeparacionDeFunciones(t *testing.T) {
	admin := session.Sesion{Rol: entity.RolAdministrador}
	lab := session.Sesion{Rol: entity.RolLaboratorista}

	assert.False(t, admin.Capacidades().IngresarResultados)
	assert.False(t, lab.Capacidades().VerificarResultados)
	assert.False(t, lab.Capacidades().RegistrarMuestras)
}
