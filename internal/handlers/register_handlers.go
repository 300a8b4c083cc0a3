package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/nortis-app/nortis-backend/cmd/docs"
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/middleware"
	"github.com/nortis-app/nortis-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, loc *time.Location) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	// Everything under /api/v1 is scoped to the authenticated user.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	registerIncomeRoutes(v1, services.Income)
	registerObligationRoutes(v1, services.Ledger)
	registerFinancesRoutes(v1, services.Income, services.Ledger, loc)
	registerInsightRoutes(v1, services.Insight)

	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators teaches the binding layer the "YYYY-MM" period
// format used by payment and history requests.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
			_, err := domain.ParsePeriod(fl.Field().String())
			return err == nil
		})
	}
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
