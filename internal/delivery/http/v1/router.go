package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/CodeWithNorayr/job-portal-platform-backend/config"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/delivery/http/middleware"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/delivery/http/response"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/token"
)

type RouterDeps struct {
	UserUC        domain.UserUsecase
	CompanyUC     domain.CompanyUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	UserRepo      domain.UserRepository
	CompanyRepo   domain.CompanyRepository
	Tokens        *token.Issuer
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold, deps.Config.RateLimitWindowSeconds)))

	// Stricter limit on credential endpoints
	authLimit := middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(
		deps.Config.RateLimitAuthThreshold, deps.Config.RateLimitWindowSeconds))

	api := r.Group("/api")

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Route groups mirroring the public API surface
	companyPublic := api.Group("/companydata")
	companyPublic.Use(authLimit)
	companyProtected := api.Group("/companydata")
	companyProtected.Use(middleware.RequireCompany(deps.Tokens, deps.CompanyRepo))

	userPublic := api.Group("/userdetails")
	userPublic.Use(authLimit)
	userProtected := api.Group("/userdetails")
	userProtected.Use(middleware.RequireUser(deps.Tokens, deps.UserRepo))

	jobPublic := api.Group("/jobdata")
	userDirectory := api.Group("/userdata")
	companyDirectory := api.Group("/companydatas")
	view := api.Group("/view")
	view.Use(middleware.RequireCompany(deps.Tokens, deps.CompanyRepo))

	NewUserHandler(userPublic, userProtected, userDirectory, deps.UserUC, deps.ApplicationUC)
	NewCompanyHandler(companyPublic, companyProtected, companyDirectory, view, deps.CompanyUC, deps.ApplicationUC)
	NewJobHandler(jobPublic, companyProtected, deps.JobUC)

	return r
}
