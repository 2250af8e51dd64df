package routes

import (
	"hospital-maintenance/internal/controllers"
	"hospital-maintenance/internal/repositories"
	"hospital-maintenance/internal/services"
	"hospital-maintenance/pkg/config"
	"hospital-maintenance/pkg/notifier"
	"hospital-maintenance/pkg/photostorage"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InitRouter builds the full dependency graph and mounts every route group
// under /api.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	photoStorage photostorage.PhotoStorageInterface,
	notifierService notifier.ServiceInterface,
	cfg *config.Config,
	logger *zap.Logger,
) {
	api := e.Group("/api")

	// repositories
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	locationRepo := repositories.NewLocationRepository(dbConn)
	categoryRepo := repositories.NewCategoryRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	issueRepo := repositories.NewIssueRepository(dbConn)
	maintenanceRepo := repositories.NewMaintenanceRepository(dbConn)
	activityRepo := repositories.NewActivityRepository(dbConn)

	// services
	activityService := services.NewActivityService(activityRepo, logger)
	locationService := services.NewLocationService(locationRepo, cacheRepo, cfg, logger)
	categoryService := services.NewCategoryService(categoryRepo, cacheRepo, cfg, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, issueRepo, activityService, logger)
	issueService := services.NewIssueService(issueRepo, equipmentRepo, activityService, photoStorage, logger)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, equipmentRepo, activityService, logger)
	issueReportService := services.NewIssueReportService(equipmentRepo, issueRepo, activityService, photoStorage, notifierService, logger)
	reportService := services.NewReportService(issueRepo, logger)

	// controllers
	locationCtrl := controllers.NewLocationController(locationService, logger)
	categoryCtrl := controllers.NewCategoryController(categoryService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	issueCtrl := controllers.NewIssueController(issueService, logger)
	maintenanceCtrl := controllers.NewMaintenanceController(maintenanceService, logger)
	activityCtrl := controllers.NewActivityController(activityService, logger)
	issueReportCtrl := controllers.NewIssueReportController(issueReportService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	runLocationRouter(api, locationCtrl, equipmentCtrl)
	runCategoryRouter(api, categoryCtrl)
	runEquipmentRouter(api, equipmentCtrl, maintenanceCtrl, issueCtrl, activityCtrl)
	runIssueRouter(api, issueCtrl, issueReportCtrl)
	runMaintenanceRouter(api, maintenanceCtrl)
	runActivityRouter(api, activityCtrl)
	runIssueReportRouter(api, issueReportCtrl)
	runReportRouter(api, reportCtrl)
}
