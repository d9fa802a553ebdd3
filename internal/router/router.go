package router

import (
	"time"

	"github.com/29jbarrera/FaktuFlow-back/internal/config"
	"github.com/29jbarrera/FaktuFlow-back/internal/crypto"
	"github.com/29jbarrera/FaktuFlow-back/internal/handler"
	"github.com/29jbarrera/FaktuFlow-back/internal/infra"
	"github.com/29jbarrera/FaktuFlow-back/internal/middleware"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"
	"github.com/29jbarrera/FaktuFlow-back/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, cipher *crypto.Cipher, store *infra.ArchivoStore, captcha *infra.CaptchaClient) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	ingresoRepo := repository.NewIngresoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg, cipher, mailer, captcha)
	clienteSvc := service.NewClienteService(clienteRepo)
	facturaSvc := service.NewFacturaService(facturaRepo, store)
	gastoSvc := service.NewGastoService(gastoRepo)
	ingresoSvc := service.NewIngresoService(ingresoRepo)
	adminSvc := service.NewAdminService(usuarioRepo, facturaRepo, gastoRepo, ingresoRepo, clienteRepo, cipher, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	ingresosH := handler.NewIngresosHandler(ingresoSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/verify-code", authH.VerifyCode)
		auth.POST("/resend-code", authH.ResendCode)
		auth.POST("/forgot-password", authH.ForgotPassword)
		auth.POST("/reset-password", authH.ResetPassword)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		api.POST("/auth/change-password", authH.ChangePassword)
		api.PUT("/auth/update-info", authH.UpdateInfo)
		api.DELETE("/auth/delete-user", authH.DeleteUser)

		api.GET("/usuarios/:id", usuariosH.ObtenerPorID)

		clientes := api.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		facturas := api.Group("/facturas")
		{
			facturas.POST("", facturasH.Crear)
			facturas.GET("", facturasH.Listar)
			facturas.GET("/:id", facturasH.ObtenerPorID)
			facturas.PUT("/:id", facturasH.Actualizar)
			facturas.DELETE("/:id", facturasH.Eliminar)
			facturas.POST("/:id/archivo", facturasH.SubirArchivo)
			facturas.GET("/:id/archivo", facturasH.DescargarArchivo)
		}

		gastos := api.Group("/gastos")
		{
			gastos.POST("", gastosH.Crear)
			gastos.GET("", gastosH.Listar)
			gastos.PUT("/:id", gastosH.Actualizar)
			gastos.DELETE("/:id", gastosH.Eliminar)
		}

		ingresos := api.Group("/ingresos")
		{
			ingresos.POST("", ingresosH.Crear)
			ingresos.GET("", ingresosH.Listar)
			ingresos.PUT("/:id", ingresosH.Actualizar)
			ingresos.DELETE("/:id", ingresosH.Eliminar)
		}

		admin := api.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/stats", adminH.Stats)
			admin.GET("/usuarios", adminH.Usuarios)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
