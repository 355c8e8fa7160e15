package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/techforum/engagement-api/docs"
	v1 "github.com/techforum/engagement-api/internal/api/handler/v1"
	"github.com/techforum/engagement-api/internal/api/middleware"
	"github.com/techforum/engagement-api/internal/config"
	"github.com/techforum/engagement-api/internal/identity"
	"github.com/techforum/engagement-api/internal/pkg/sealed"
	"github.com/techforum/engagement-api/internal/pkg/token"
	"github.com/techforum/engagement-api/internal/repository"
	"github.com/techforum/engagement-api/internal/repository/dao"
	"github.com/techforum/engagement-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	codec := sealed.NewCodec(conf.API.EncryptionKey)
	tokens := token.NewIssuer(conf.API.JWTSigningKey)

	userDAO := dao.NewUserDAO(db)
	participationDAO := dao.NewParticipationDAO(db)
	lotteryDAO := dao.NewLotteryDAO(db)
	prizeDAO := dao.NewPrizeDAO(db)
	surveyDAO := dao.NewSurveyDAO(db)

	userRepo := repository.NewUserRepository(userDAO)
	participationRepo := repository.NewParticipationRepository(participationDAO)
	lotteryRepo := repository.NewLotteryRepository(lotteryDAO)
	prizeRepo := repository.NewPrizeRepository(prizeDAO)
	surveyRepo := repository.NewSurveyRepository(surveyDAO)

	authSvc := service.NewAuthService(userRepo, identity.NewClient(conf.Identity), tokens)
	participationSvc := service.NewParticipationService(participationRepo)
	lotterySvc := service.NewLotteryService(lotteryRepo, codec)
	drawSvc := service.NewDrawService(lotteryRepo)
	surveySvc := service.NewSurveyService(surveyRepo)
	adminSvc := service.NewAdminService(userRepo, participationRepo, lotteryRepo, surveyRepo)

	liveHandler := v1.NewLiveHandler()
	go liveHandler.Run()

	prizeSvc := service.NewPrizeService(prizeRepo, userRepo, participationRepo, codec, liveHandler)

	authHandler := v1.NewAuthHandler(authSvc)
	boothHandler := v1.NewBoothHandler(participationSvc, prizeSvc, codec, conf.API.BaseURL)
	lotteryHandler := v1.NewLotteryHandler(lotterySvc)
	prizeHandler := v1.NewPrizeHandler(drawSvc, prizeSvc)
	dataHandler := v1.NewDataHandler(lotterySvc)
	surveyHandler := v1.NewSurveyHandler(surveySvc, conf.API.BaseURL)
	adminHandler := v1.NewAdminHandler(adminSvc, participationSvc, prizeSvc)

	userAuth := middleware.NewAuthenticator(authSvc)
	adminAuth := middleware.NewAdminAuthenticator(authSvc)

	s.MountHandlers(userAuth, adminAuth, authHandler, boothHandler, lotteryHandler, prizeHandler, dataHandler, surveyHandler, adminHandler, liveHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userAuth *middleware.Authenticator,
	adminAuth *middleware.AdminAuthenticator,
	authHandler *v1.AuthHandler,
	boothHandler *v1.BoothHandler,
	lotteryHandler *v1.LotteryHandler,
	prizeHandler *v1.PrizeHandler,
	dataHandler *v1.DataHandler,
	surveyHandler *v1.SurveyHandler,
	adminHandler *v1.AdminHandler,
	liveHandler *v1.LiveHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)
		public.POST("/admin/login", authHandler.HandleAdminLogin)
		public.POST("/survey/submit", surveyHandler.HandleSubmit)
	}

	users := s.Router.Group(basePath, userAuth.VerifyToken())
	{
		users.GET("/auth/verify", authHandler.HandleVerify)
		users.GET("/data/user", dataHandler.HandleGetUser)
		users.GET("/data/lottery-number", dataHandler.HandleGetLotteryNumber)
		users.POST("/booth/scan", boothHandler.HandleScan)
		users.GET("/booth/participation", boothHandler.HandleParticipations)
		users.POST("/booth/generate-prize-qr", boothHandler.HandleGeneratePrizeQR)
		users.POST("/lottery/issue", lotteryHandler.HandleIssue)
		users.GET("/live", liveHandler.HandleWebSocket)
	}

	admins := s.Router.Group(basePath, adminAuth.VerifyToken())
	{
		admins.GET("/admin/verify", authHandler.HandleAdminVerify)
		admins.GET("/admin/dashboard", adminHandler.HandleDashboard)
		admins.GET("/admin/users", adminHandler.HandleListUsers)
		admins.GET("/admin/participations", adminHandler.HandleListParticipations)
		admins.GET("/admin/eligible-users", adminHandler.HandleListEligibleUsers)
		admins.GET("/admin/prize-claims", adminHandler.HandleListPrizeClaims)
		admins.GET("/admin/surveys", surveyHandler.HandleList)
		admins.GET("/admin/survey-stats", surveyHandler.HandleStats)
		admins.POST("/admin/prize-claim", prizeHandler.HandleClaim)
		admins.DELETE("/admin/participations/:participationID", adminHandler.HandleDeleteParticipation)
		admins.DELETE("/admin/users/:userID/participations", adminHandler.HandleDeleteUserParticipations)
		admins.POST("/booth/generate-qr", boothHandler.HandleGenerateQR)
		admins.POST("/lottery/generate-qr", lotteryHandler.HandleGenerateQR)
		admins.POST("/survey/generate-qr", surveyHandler.HandleGenerateQR)
		admins.GET("/prize/lottery-digits", prizeHandler.HandleDigitRanges)
		admins.POST("/prize/check-winner", prizeHandler.HandleCheckWinner)
		admins.POST("/prize/draw-bulk", prizeHandler.HandleDrawBulk)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Event Engagement API"
	docs.SwaggerInfo.Description = "Participation ledger, lottery and prize claims for the tech forum event."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
