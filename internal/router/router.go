package router

import (
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/config"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/gateway"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/handler"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/middleware"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/service"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Gateway ← DataServiceClient
func New(cfg *config.Config, ds *infra.DataServiceClient, rdb *redis.Client, cb *infra.CircuitBreaker) *gin.Engine {
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
	r.Use(middleware.RateLimiter(200, time.Minute))

	// ── Gateways ─────────────────────────────────────────────────────────────
	chequeGW := gateway.NewChequeGateway(ds)
	chequeLogGW := gateway.NewChequeLogGateway(ds)
	factorGW := gateway.NewFactorGateway(ds)
	factorChequeGW := gateway.NewFactorChequeGateway(ds)
	transactionGW := gateway.NewTransactionGateway(ds)
	relationGW := gateway.NewRelationGateway(ds)
	customerGW := gateway.NewCustomerGateway(ds)
	employeeGW := gateway.NewEmployeeGateway(ds)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)

	relationSvc := service.NewRelationService(relationGW)
	scopeSvc := service.NewScopeService(relationSvc, rdb)
	customerSvc := service.NewCustomerService(customerGW)
	chequeSvc := service.NewChequeService(chequeGW, chequeLogGW, customerGW, employeeGW, dispatcher)
	reconcileSvc := service.NewReconcileService(factorGW, factorChequeGW, chequeGW, transactionGW, chequeSvc)
	reportSvc := service.NewReportService(reconcileSvc, chequeSvc, customerGW, cfg.ReportStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	chequesH := handler.NewChequesHandler(chequeSvc, scopeSvc)
	factorsH := handler.NewFactorsHandler(reconcileSvc, reportSvc, scopeSvc)
	relationsH := handler.NewRelationsHandler(relationSvc)
	customersH := handler.NewCustomersHandler(customerSvc, scopeSvc)
	reportsH := handler.NewReportsHandler(reportSvc, scopeSvc)
	menuH := handler.NewMenuHandler(scopeSvc)
	calendarH := handler.NewCalendarHandler()

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(rdb, cb))

	// Every console role. The customer role never gets past JWTAuth.
	anyEmployee := middleware.RequireRole(
		model.RoleMarketer, model.RoleSaleManager, model.RoleFinanceManager,
		model.RoleManager, model.RoleDeveloper,
	)
	// Roles allowed to move money around.
	finance := middleware.RequireRole(
		model.RoleSaleManager, model.RoleFinanceManager,
		model.RoleManager, model.RoleDeveloper,
	)
	// Relation management changes who sees which customers.
	admin := middleware.RequireRole(model.RoleManager, model.RoleDeveloper)

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/menu", anyEmployee, menuH.Sections)
		v1.GET("/calendar/:year/:month", anyEmployee, calendarH.MonthGrid)

		cheques := v1.Group("/cheques")
		{
			cheques.GET("", anyEmployee, chequesH.List)
			cheques.GET("/:id", anyEmployee, chequesH.Get)
			cheques.GET("/:id/history", anyEmployee, chequesH.History)
			cheques.POST("", finance, chequesH.Create)
			cheques.PUT("/:id/status", finance, chequesH.UpdateStatus)
			cheques.PUT("/:id/sayyadi", finance, chequesH.ToggleSayyadi)
		}

		factors := v1.Group("/factors")
		{
			factors.GET("", anyEmployee, factorsH.List)
			factors.GET("/:id", anyEmployee, factorsH.Get)
			factors.GET("/:id/coverage", anyEmployee, factorsH.Coverage)
			factors.GET("/:id/statement.pdf", anyEmployee, factorsH.StatementPDF)
			factors.POST("/:id/cheques", finance, factorsH.AssignCheque)
			factors.POST("/:id/cheques/new", finance, factorsH.AssignNewCheque)
			factors.DELETE("/:id/cheques/:chequeId", finance, factorsH.UnassignCheque)
			factors.POST("/:id/transactions", finance, factorsH.RecordTransaction)
		}

		customers := v1.Group("/customers", anyEmployee)
		{
			customers.GET("", customersH.List)
			customers.GET("/typeahead", customersH.Typeahead)
			customers.GET("/:id", customersH.Get)
		}

		relations := v1.Group("/relations")
		{
			relations.GET("", anyEmployee, relationsH.List)
			relations.POST("", admin, relationsH.Create)
			relations.DELETE("", admin, relationsH.Delete)
			relations.POST("/bulk", admin, relationsH.BulkAssign)
		}

		v1.GET("/reports/cheques.xlsx", anyEmployee, reportsH.ChequeBookXLSX)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
