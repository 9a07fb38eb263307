package bootstrap

import (
	"context"
	"log"

	"quicknotes-be/internal/config"
	"quicknotes-be/internal/controller"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/internal/scheduler"
	"quicknotes-be/internal/service"
	"quicknotes-be/internal/websocket"
	"quicknotes-be/pkg/mirror"

	pktNats "quicknotes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController   controller.INoteController
	WidgetController controller.IWidgetController

	// Background Services (Exposed for main.go to run)
	MirrorConsumerService service.IMirrorConsumerService
	EventRecorderService  service.IEventRecorderService
	Scheduler             *scheduler.Scheduler

	// WebSockets
	WebSocketHub *websocket.Hub

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

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
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Widget mirror falls back to in-memory store", err)
		redisUp = false
	}

	// Widget Mirror Store
	var mirrorStore mirror.Store
	var mirrorChannel string
	if redisUp {
		redisStore := mirror.NewRedisStore(rdb, cfg.Mirror.Namespace)
		mirrorStore = redisStore
		mirrorChannel = redisStore.Channel()
	} else {
		mirrorStore = mirror.NewMemoryStore()
	}

	// WebSocket Hub (relays mirror change events)
	var wsHub *websocket.Hub
	if redisUp {
		wsLogger := logger.NewIsolatedLogger("logs/widget-relay.log")
		wsHub = websocket.NewHub(rdb, mirrorChannel, wsLogger)
		go wsHub.Run()
	}

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Mirror.Topic, pubSub)
	mirrorSyncService := service.NewMirrorSyncService(uowFactory, publisherService, sysLogger)
	mirrorConsumerService := service.NewMirrorConsumerService(pubSub, cfg.Mirror.Topic, mirrorStore, sysLogger)

	noteService := service.NewNoteService(
		uowFactory,
		mirrorSyncService,
		natsPub,
		sysLogger,
		cfg.Retention.TrashDays,
	)

	var eventRecorderService service.IEventRecorderService
	if natsSub != nil {
		eventRecorderService = service.NewEventRecorderService(natsSub, uowFactory, sysLogger)
	}

	purgeScheduler := scheduler.NewScheduler(noteService, cfg.Retention.PurgeCron, sysLogger)

	// 4. Controllers
	return &Container{
		NoteController:   controller.NewNoteController(noteService),
		WidgetController: controller.NewWidgetController(mirrorStore),

		MirrorConsumerService: mirrorConsumerService,
		EventRecorderService:  eventRecorderService,
		Scheduler:             purgeScheduler,

		WebSocketHub: wsHub,
		Logger:       sysLogger,
	}
}
