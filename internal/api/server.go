package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/snapdraw/raffle-api/docs"
	v1 "github.com/snapdraw/raffle-api/internal/api/handler/v1"
	"github.com/snapdraw/raffle-api/internal/api/middleware"
	"github.com/snapdraw/raffle-api/internal/config"
	"github.com/snapdraw/raffle-api/internal/gateway/razorpay"
	"github.com/snapdraw/raffle-api/internal/repository"
	"github.com/snapdraw/raffle-api/internal/repository/dao"
	"github.com/snapdraw/raffle-api/internal/revocation"
	"github.com/snapdraw/raffle-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	authService *service.AuthService
}

func NewServer(conf *config.AppConfig, db *gorm.DB, revoker revocation.Revoker) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	gateway := razorpay.NewClient(conf.Razorpay.KeyID, conf.Razorpay.KeySecret, conf.Razorpay.BaseURL)
	s.authService = service.NewAuthService(
		repository.NewAdminRepository(dao.NewAdminDAO(db)),
		revoker,
		[]byte(conf.API.JWTSigningKey),
	)

	raffleHandler := s.initRaffleHandler(db, gateway)
	adminHandler := s.initAdminHandler(db, gateway)
	s.MountHandlers(raffleHandler, adminHandler)

	return s
}

func (s *Server) initRaffleHandler(db *gorm.DB, gateway *razorpay.Client) *v1.RaffleHandler {
	entryRepo := repository.NewEntryRepository(dao.NewEntryDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	settingsRepo := repository.NewRaffleSettingsRepository(dao.NewRaffleSettingsDAO(db))
	logRepo := repository.NewPaymentLogRepository(dao.NewPaymentLogDAO(db))
	winnerRepo := repository.NewWinnerRepository(dao.NewWinnerDAO(db))

	// Demo mode confirms entries directly instead of creating gateway
	// orders. The choice is fixed at boot.
	var initiator service.PaymentInitiator
	if s.Config.Razorpay.IsConfigured() {
		initiator = service.NewGatewayInitiator(gateway, entryRepo, logRepo)
	} else {
		initiator = service.NewDirectConfirmInitiator(entryRepo, logRepo)
	}

	checkout := service.NewCheckoutService(userRepo, entryRepo, settingsRepo, initiator)
	verification := service.NewVerificationService(gateway, entryRepo, logRepo)
	winners := service.NewWinnerService(winnerRepo, entryRepo)

	return v1.NewRaffleHandler(checkout, verification, winners, s.Config.Razorpay.KeyID)
}

func (s *Server) initAdminHandler(db *gorm.DB, gateway *razorpay.Client) *v1.AdminHandler {
	entryRepo := repository.NewEntryRepository(dao.NewEntryDAO(db))
	logRepo := repository.NewPaymentLogRepository(dao.NewPaymentLogDAO(db))
	winnerRepo := repository.NewWinnerRepository(dao.NewWinnerDAO(db))

	dashboard := service.NewDashboardService(entryRepo, winnerRepo)
	winners := service.NewWinnerService(winnerRepo, entryRepo)
	reconcile := service.NewReconcileService(entryRepo, logRepo)

	return v1.NewAdminHandler(s.authService, dashboard, winners, reconcile)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(raffleHandler *v1.RaffleHandler, adminHandler *v1.AdminHandler) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/raffle/create-order", raffleHandler.HandleCreateOrder)
		public.POST("/raffle/verify-payment", raffleHandler.HandleVerifyPayment)
		public.GET("/winner", raffleHandler.HandleGetWinner)
	}

	login := s.Router.Group(basePath, middleware.NewLoginRateLimiter().Limit())
	{
		login.POST("/admin/login", adminHandler.HandleLogin)
	}

	admin := s.Router.Group(basePath, middleware.NewAuthenticator(s.authService).VerifyJWT())
	{
		admin.POST("/admin/logout", adminHandler.HandleLogout)
		admin.GET("/admin/dashboard", adminHandler.HandleDashboard)
		admin.POST("/admin/select-winner", adminHandler.HandleSelectWinner)
		admin.DELETE("/admin/clear-winner", adminHandler.HandleClearWinner)
		admin.POST("/admin/reconcile-payments", adminHandler.HandleReconcilePayments)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Raffle API"
	docs.SwaggerInfo.Description = "Online raffle with payment-backed entries and a single-winner draw."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
