package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appmuestras "github.com/aqualab/aqualab-api/internal/application/muestras"
	"github.com/aqualab/aqualab-api/internal/application/registro"
	"github.com/aqualab/aqualab-api/internal/application/resultados"
	appusuarios "github.com/aqualab/aqualab-api/internal/application/usuarios"
	inframuestras "github.com/aqualab/aqualab-api/internal/infrastructure/muestras"
	infrausuarios "github.com/aqualab/aqualab-api/internal/infrastructure/usuarios"
	httpRouter "github.com/aqualab/aqualab-api/internal/interfaces/http"
	"github.com/aqualab/aqualab-api/pkg/config"
	"github.com/aqualab/aqualab-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	timeout := time.Duration(cfg.Servicios.TimeoutSeconds) * time.Second
	usuariosClient := infrausuarios.NewClient(cfg.Servicios.UsuariosURL, timeout)
	muestrasClient := inframuestras.NewClient(cfg.Servicios.MuestrasURL, timeout)

	registroUC := registro.NewUseCase(usuariosClient, muestrasClient)
	resultadosUC := resultados.NewUseCase(muestrasClient, muestrasClient)
	muestrasUC := appmuestras.NewUseCase(muestrasClient)
	usuariosUC := appusuarios.NewUseCase(usuariosClient, appusuarios.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// Las firmas viajan como data URIs de hasta 2 MB cada una.
		BodyLimit: 8 * 1024 * 1024,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistroUC:   registroUC,
		ResultadosUC: resultadosUC,
		MuestrasUC:   muestrasUC,
		UsuariosUC:   usuariosUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
