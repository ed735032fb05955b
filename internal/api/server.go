package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vietanh2810/resto-ops/docs"
	v1 "github.com/vietanh2810/resto-ops/internal/api/handler/v1"
	"github.com/vietanh2810/resto-ops/internal/api/middleware"
	"github.com/vietanh2810/resto-ops/internal/config"
	"github.com/vietanh2810/resto-ops/internal/repository"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
	"github.com/vietanh2810/resto-ops/internal/service"
	"github.com/vietanh2810/resto-ops/internal/store"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, st *store.Store) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	productHandler := s.initProductHandler(st)
	orderHandler := s.initOrderHandler(st)
	inventoryHandler := s.initInventoryHandler(st)
	reservationHandler := s.initReservationHandler(st)
	tableHandler := s.initTableHandler(st)
	settingHandler := s.initSettingHandler(st)
	s.MountHandlers(productHandler, orderHandler, inventoryHandler, reservationHandler, tableHandler, settingHandler)

	return s
}

func (s *Server) initProductHandler(st *store.Store) *v1.ProductHandler {
	productDAO := dao.NewProductDAO(st)
	repo := repository.NewProductRepository(productDAO)
	svc := service.NewCatalogService(repo, s.Config.Catalog)
	handler := v1.NewProductHandler(svc)

	return handler
}

func (s *Server) initOrderHandler(st *store.Store) *v1.OrderHandler {
	orderDAO := dao.NewOrderDAO(st)
	productRepo := repository.NewProductRepository(dao.NewProductDAO(st))
	repo := repository.NewOrderRepository(orderDAO, productRepo)
	svc := service.NewOrderService(repo, service.NewZapNotifier())

	stockRepo := repository.NewStockRepository(st, s.Config.Catalog.TVARate)
	stockSvc := service.NewStockService(stockRepo, productRepo, service.NewZapNotifier())

	handler := v1.NewOrderHandler(svc, stockSvc)

	return handler
}

func (s *Server) initInventoryHandler(st *store.Store) *v1.InventoryHandler {
	stockRepo := repository.NewStockRepository(st, s.Config.Catalog.TVARate)
	productRepo := repository.NewProductRepository(dao.NewProductDAO(st))
	svc := service.NewStockService(stockRepo, productRepo, service.NewZapNotifier())
	handler := v1.NewInventoryHandler(svc)

	return handler
}

func (s *Server) initReservationHandler(st *store.Store) *v1.ReservationHandler {
	repo := repository.NewReservationRepository(st)
	tableRepo := repository.NewTableRepository(dao.NewTableDAO(st))
	svc := service.NewReservationService(repo, tableRepo, service.NewZapNotifier(), s.Config.Catalog.ReservationDurationMinutes)
	handler := v1.NewReservationHandler(svc)

	return handler
}

func (s *Server) initTableHandler(st *store.Store) *v1.TableHandler {
	tableDAO := dao.NewTableDAO(st)
	repo := repository.NewTableRepository(tableDAO)
	svc := service.NewTableService(repo)
	handler := v1.NewTableHandler(svc)

	return handler
}

func (s *Server) initSettingHandler(st *store.Store) *v1.SettingHandler {
	settingDAO := dao.NewSettingDAO(st)
	repo := repository.NewSettingRepository(settingDAO)
	svc := service.NewSettingService(repo)
	handler := v1.NewSettingHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	productHandler *v1.ProductHandler,
	orderHandler *v1.OrderHandler,
	inventoryHandler *v1.InventoryHandler,
	reservationHandler *v1.ReservationHandler,
	tableHandler *v1.TableHandler,
	settingHandler *v1.SettingHandler,
) {
	const basePath = "/api/v1"

	products := s.Router.Group(basePath)
	{
		products.GET("/products", productHandler.HandleGetProducts)
		products.POST("/products", productHandler.HandleCreateProduct)
		products.GET("/products/:productID", productHandler.HandleGetProduct)
		products.PUT("/products/:productID", productHandler.HandleUpdateProduct)
		products.DELETE("/products/:productID", productHandler.HandleDeactivateProduct)
		products.GET("/products/:productID/log", inventoryHandler.HandleGetProductLog)
	}

	orders := s.Router.Group(basePath)
	{
		orders.GET("/orders", orderHandler.HandleGetOrders)
		orders.POST("/orders", orderHandler.HandleCreateOrder)
		orders.GET("/orders/:orderID", orderHandler.HandleGetOrder)
		orders.DELETE("/orders/:orderID", orderHandler.HandleDeleteOrder)
		orders.PATCH("/orders/:orderID/status", orderHandler.HandleUpdateOrderStatus)
		orders.POST("/orders/:orderID/items", orderHandler.HandleAddOrderItem)
		orders.PATCH("/orders/:orderID/items/:itemID", orderHandler.HandleUpdateOrderItem)
		orders.DELETE("/orders/:orderID/items/:itemID", orderHandler.HandleRemoveOrderItem)
	}

	inventory := s.Router.Group(basePath)
	{
		inventory.GET("/inventory/log", inventoryHandler.HandleGetLog)
		inventory.POST("/inventory/adjustments", inventoryHandler.HandleAdjustStock)
	}

	reservations := s.Router.Group(basePath)
	{
		reservations.GET("/reservations", reservationHandler.HandleGetReservations)
		reservations.POST("/reservations", reservationHandler.HandleCreateReservation)
		reservations.GET("/reservations/availability", reservationHandler.HandleCheckAvailability)
		reservations.GET("/reservations/available-tables", reservationHandler.HandleFindAvailableTables)
		reservations.GET("/reservations/:reservationID", reservationHandler.HandleGetReservation)
		reservations.PUT("/reservations/:reservationID", reservationHandler.HandleUpdateReservation)
		reservations.PATCH("/reservations/:reservationID/status", reservationHandler.HandleUpdateReservationStatus)
	}

	tables := s.Router.Group(basePath)
	{
		tables.GET("/tables", tableHandler.HandleGetTables)
		tables.POST("/tables", tableHandler.HandleCreateTable)
		tables.GET("/tables/:tableID", tableHandler.HandleGetTable)
		tables.PATCH("/tables/:tableID/status", tableHandler.HandleSetTableStatus)
	}

	settings := s.Router.Group(basePath)
	{
		settings.GET("/settings", settingHandler.HandleGetSettings)
		settings.PUT("/settings", settingHandler.HandlePutSetting)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Resto Ops API"
	docs.SwaggerInfo.Description = "Back office API for single-site restaurant operations."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
