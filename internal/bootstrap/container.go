package bootstrap

import (
	"context"
	"log"

	"clinic-intake-be/internal/config"
	"clinic-intake-be/internal/controller"
	"clinic-intake-be/internal/pkg/logger"
	"clinic-intake-be/internal/pkg/mailer"
	"clinic-intake-be/internal/repository/contract"
	"clinic-intake-be/internal/repository/implementation"
	"clinic-intake-be/internal/repository/memory"
	"clinic-intake-be/internal/repository/redisstore"
	"clinic-intake-be/internal/service"
	"clinic-intake-be/pkg/dialog"
	pktNats "clinic-intake-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController
	CatalogController controller.ICatalogController
	AuthController    controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	// Session storage: Redis when reachable, otherwise in-process memory so
	// the service still answers in development setups without Redis.
	var sessionStore contract.SessionStore
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory sessions", err)
		sessionStore = memory.NewSessionStore(cfg.Intake.SessionTTL)
	} else {
		sessionStore = redisstore.NewSessionStore(rdb, cfg.Intake.SessionTTL)
	}

	// 3. Repositories
	bodySiteRepo := implementation.NewBodySiteRepository(db)
	symptomRepo := implementation.NewSymptomRepository(db)
	recordRepo := implementation.NewIntakeRecordRepository(db)

	// 4. Dialog Engine
	machine := dialog.NewMachine(
		service.NewBodySiteTreeSource(bodySiteRepo),
		service.NewSymptomItemSource(symptomRepo),
		cfg.Intake.PageSize,
		dialog.Commands{
			Restart: cfg.Intake.RestartWord,
			End:     cfg.Intake.EndWord,
			Back:    cfg.Intake.BackWord,
		},
	)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Intake.CompletedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Intake.CompletedTopic,
		recordRepo,
		natsPub,
		emailService,
		cfg.SMTP.ClinicInbox,
		sysLogger,
	)

	intakeService := service.NewIntakeService(
		sessionStore,
		machine,
		publisherService,
		sysLogger,
		cfg.Intake.TurnTimeout,
	)
	catalogService := service.NewCatalogService(bodySiteRepo, symptomRepo, recordRepo)
	authService := service.NewAuthService(cfg.Admin)

	// 6. Controllers
	return &Container{
		WebhookController: controller.NewWebhookController(intakeService),
		CatalogController: controller.NewCatalogController(catalogService),
		AuthController:    controller.NewAuthController(authService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
