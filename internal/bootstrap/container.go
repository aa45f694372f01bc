package bootstrap

import (
	"context"
	"log"

	"exam-prep-be/internal/config"
	"exam-prep-be/internal/controller"
	"exam-prep-be/internal/events"
	"exam-prep-be/internal/pkg/logger"
	"exam-prep-be/internal/pkg/mailer"
	"exam-prep-be/internal/repository/memory"
	"exam-prep-be/internal/repository/unitofwork"
	"exam-prep-be/internal/service"
	"exam-prep-be/internal/websocket"
	pkgEvents "exam-prep-be/pkg/events"
	pktNats "exam-prep-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	UserController     controller.IUserController
	SubjectController  controller.ISubjectController
	TaskController     controller.ITaskController
	SessionController  controller.ISessionController
	OverviewController controller.IOverviewController
	FocusController    controller.IFocusController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	ActivityService *service.ActivityService

	WebSocketHub *websocket.Hub
	Logger       logger.ILogger

	closers []func()
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	clock := service.SystemClock(cfg.Study.Location)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
		sysLogger,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// NATS
	var busPublisher pkgEvents.Publisher = pkgEvents.NopPublisher{}
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		busPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		c.closers = append(c.closers, natsSub.Close)
	}
	eventPublisher := events.NewBusPublisher(busPublisher, sysLogger)

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Running single instance", err)
		_ = rdb.Close()
		rdb = nil
	} else {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run(ctx)

	// 4. Services
	focusRunners := memory.NewFocusRepository(cfg.Study.FocusIdleExpiry)
	publisherService := service.NewPublisherService(service.FocusCompletedTopic, pubSub)

	userService := service.NewUserService(uowFactory)
	authService := service.NewAuthService(uowFactory, eventPublisher, cfg.App.JwtSecret, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, eventPublisher, cfg.OAuth, cfg.App.JwtSecret, sysLogger)
	subjectService := service.NewSubjectService(uowFactory, eventPublisher)
	taskService := service.NewTaskService(uowFactory, eventPublisher, clock)
	sessionService := service.NewSessionService(uowFactory, eventPublisher, clock)
	overviewService := service.NewOverviewService(uowFactory, emailService, clock, cfg.Study.ExamTargetDate)
	focusService := service.NewFocusService(focusRunners, uowFactory, publisherService, wsHub, clock, sysLogger)

	c.ConsumerService = service.NewConsumerService(
		pubSub,
		service.FocusCompletedTopic,
		sessionService,
		wsHub,
		sysLogger,
	)
	if natsSub != nil {
		c.ActivityService = service.NewActivityService(natsSub, wsHub, wsLogger)
	}

	// 5. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.OAuthController = controller.NewOAuthController(oauthService, cfg.App.ClientURL, sysLogger)
	c.UserController = controller.NewUserController(userService)
	c.SubjectController = controller.NewSubjectController(subjectService)
	c.TaskController = controller.NewTaskController(taskService)
	c.SessionController = controller.NewSessionController(sessionService)
	c.OverviewController = controller.NewOverviewController(overviewService)
	c.FocusController = controller.NewFocusController(focusService, wsHub, cfg.App.JwtSecret, wsLogger)
	c.WebSocketHub = wsHub

	return c
}

// Close releases bus and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
