package router

import (
	"github.com/contasclaras/api/internal/application"
	"github.com/contasclaras/api/internal/container"
	pginfra "github.com/contasclaras/api/internal/infrastructure/postgres"
	handlers "github.com/contasclaras/api/internal/interface/http"
	"github.com/contasclaras/api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup to wire everything up.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	billRepo := pginfra.NewBillRepository(pool)
	catRepo := pginfra.NewCategoryRepository(pool)
	depRepo := pginfra.NewDepositorRepository(pool)
	exportRepo := pginfra.NewExportRepository(pool)

	userSvc := application.NewUserService(userRepo, jwt, container.GetRedis(), logger)
	billSvc := application.NewBillService(billRepo, depRepo, logger, container.GetES(), cfg.ESBillsIndex)
	catSvc := application.NewCategoryService(catRepo, billRepo, logger)
	depSvc := application.NewDepositorService(depRepo, logger)
	exportSvc := application.NewExportService(exportRepo, container.GetRabbitPub(), logger)

	userHandler := handlers.NewUserHandler(userSvc, jwt, logger, cfg.CookieDomain, cfg.CookieSecure)
	billHandler := handlers.NewBillHandler(billSvc, logger)
	catHandler := handlers.NewCategoryHandler(catSvc, logger)
	depHandler := handlers.NewDepositorHandler(depSvc, logger)
	cepHandler := handlers.NewCEPHandler(container.GetCEP(), logger)
	exportHandler := handlers.NewExportHandler(exportSvc, logger)

	r.Add(modules.NewAuth(userHandler, jwt))
	r.Add(modules.NewBills(billHandler, jwt))
	r.Add(modules.NewCategories(catHandler, jwt))
	r.Add(modules.NewDepositors(depHandler, jwt))
	r.Add(modules.NewLookup(cepHandler, jwt))
	r.Add(modules.NewExports(exportHandler, jwt))
}
