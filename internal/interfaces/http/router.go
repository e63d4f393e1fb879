package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aqualab/aqualab-api/internal/application/muestras"
	"github.com/aqualab/aqualab-api/internal/application/registro"
	"github.com/aqualab/aqualab-api/internal/application/resultados"
	"github.com/aqualab/aqualab-api/internal/application/usuarios"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	"github.com/aqualab/aqualab-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegistroUC   *registro.UseCase
	ResultadosUC *resultados.UseCase
	MuestrasUC   *muestras.UseCase
	UsuariosUC   *usuarios.UseCase
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(LoggingMiddleware(deps.Log))
	app.Use(MetricsMiddleware())
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api")

	// Auth (público)
	usuarioHandler := NewUsuarioHandler(deps.UsuariosUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", usuarioHandler.Login)
	authGroup.Post("/recuperar-contrasena", usuarioHandler.RecuperarContrasena)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios (protegido; los gates de rol finos viven en el caso de uso)
	usuariosGroup := protected.Group("/usuarios")
	usuariosGroup.Get("/", usuarioHandler.Listar)
	usuariosGroup.Post("/", usuarioHandler.Registrar)
	usuariosGroup.Put("/cambiar-contrasena", usuarioHandler.CambiarContrasena)
	usuariosGroup.Put("/:id", usuarioHandler.Actualizar)

	// Registro de muestras (protegido, solo administradores)
	registroHandler := NewRegistroHandler(deps.RegistroUC)
	registroGroup := protected.Group("/registro", RequireRol(entity.RolAdministrador))
	registroGroup.Post("/borradores", registroHandler.CrearBorrador)
	registroGroup.Get("/borradores/:id", registroHandler.Borrador)
	registroGroup.Post("/borradores/:id/validar-cliente", registroHandler.ValidarCliente)
	registroGroup.Post("/borradores/:id/registrar-cliente", registroHandler.RegistrarCliente)
	registroGroup.Put("/borradores/:id/campos", registroHandler.ActualizarCampos)
	registroGroup.Post("/borradores/:id/firma-administrador", registroHandler.FirmarAdministrador)
	registroGroup.Post("/borradores/:id/firma-cliente", registroHandler.FirmarCliente)
	registroGroup.Post("/borradores/:id/enviar", registroHandler.Enviar)

	// Muestras (protegido; un cliente solo ve las suyas)
	muestraHandler := NewMuestraHandler(deps.MuestrasUC)
	muestrasGroup := protected.Group("/muestras")
	muestrasGroup.Get("/", muestraHandler.Listar)
	muestrasGroup.Get("/tipo/:tipo", muestraHandler.ListarPorTipo)
	muestrasGroup.Get("/estado/:estado", muestraHandler.ListarPorEstado)
	muestrasGroup.Get("/:id", muestraHandler.Obtener)
	muestrasGroup.Get("/:id/historial", muestraHandler.Historial)
	muestrasGroup.Post("/:id/cambiar-estado", muestraHandler.CambiarEstado)

	// Catálogos (protegido)
	catalogos := protected.Group("/catalogos")
	catalogos.Get("/tipos-agua", muestraHandler.TiposAgua)
	catalogos.Get("/analisis/:tipo", muestraHandler.CatalogoAnalisis)

	// Resultados (protegido; laboratorista ingresa, administrador verifica)
	resultadoHandler := NewResultadoHandler(deps.ResultadosUC)
	resultadosGroup := protected.Group("/resultados")
	resultadosGroup.Get("/", resultadoHandler.Listar)
	resultadosGroup.Get("/muestra/:id", resultadoHandler.Contexto)
	resultadosGroup.Put("/muestra/:id", resultadoHandler.Guardar)
	resultadosGroup.Post("/verificar/:id", resultadoHandler.Verificar)
}
