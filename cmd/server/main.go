package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/adapter"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/config"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/handler"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/notify"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/repository/memory"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/repository/mongodb"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/repository/redisstore"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/service"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/jwt"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/middleware"
)

const (
	forgotPasswordLimit  = 3
	forgotPasswordWindow = 15 * time.Minute
	shutdownTimeout      = 10 * time.Second
)

func main() {
	conf := config.LoadAppConfig()
	log := logger.New(conf.LogLevel, conf.Environment)
	defer func() { _ = log.Sync() }()

	if err := conf.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	store, err := openStore(conf)
	if err != nil {
		log.Fatal("failed to open store", zap.String("driver", conf.StoreDriver), zap.Error(err))
	}
	log.Info("store ready", zap.String("driver", conf.StoreDriver))

	var (
		typing   domain.TypingRepository = store
		throttle domain.Throttle         = memory.NewThrottle(forgotPasswordLimit, forgotPasswordWindow)
		rdb      *redis.Client
	)
	if conf.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: conf.RedisAddr, Password: conf.RedisPassword, DB: conf.RedisDB})
		throttle = redisstore.NewThrottle(rdb, "forgot-password", forgotPasswordLimit, forgotPasswordWindow)
		if conf.TypingBackend == config.TypingBackendRedis {
			typing = redisstore.NewTypingRepository(rdb, redisstore.DefaultTypingTTL)
		}
	}

	var mailer notify.Mailer = notify.NewLogMailer(log)
	if conf.SMTPConfigured() {
		mailer = notify.NewSMTPMailer(conf.SMTPHost, conf.SMTPPort, conf.SMTPUser, conf.SMTPPass, conf.EmailFrom)
	} else {
		log.Warn("SMTP not configured, outbound email is logged only")
	}
	sender := notify.NewSender(mailer, conf.EmailFrom, conf.AdminEmail, conf.SiteURL)
	queue := notify.NewQueue(sender, conf.EmailQueueSize, conf.EmailWorkers, log)

	authSvc := service.NewAuthService(store, store, queue, adapter.NewRecaptchaAdapter(conf.RecaptchaSecretKey), throttle, log)
	forumSvc := service.NewForumService(store, queue, log)
	messageSvc := service.NewMessageService(store, store, typing, log)
	userSvc := service.NewUserService(store, log)
	gallerySvc := service.NewGalleryService(store, jwt.NewTokenManager(conf.AlbumTokenSecret), log)

	if conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log.WithComponent("http")),
		middleware.Metrics(),
		middleware.CorsMiddleware(conf.CORSAllowedOrigins),
		middleware.RateLimitMiddleware(conf.RateLimitRPS),
	)
	handler.RegisterRoutes(r, handler.Handlers{
		Auth:    handler.NewAuthHandler(authSvc, log),
		Forum:   handler.NewForumHandler(forumSvc, log),
		Message: handler.NewMessageHandler(messageSvc, log),
		User:    handler.NewUserHandler(userSvc, log),
		Gallery: handler.NewGalleryHandler(gallerySvc, log),
		Admin:   handler.NewAdminHandler(userSvc, sender, store, log),
	}, authSvc, log)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		service.RunSessionJanitor(janitorCtx, userSvc, conf.SessionCleanupInterval, log)
	}()

	srv := &http.Server{
		Addr:              ":" + conf.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	stopJanitor()
	<-janitorDone
	if err := queue.Close(ctx); err != nil {
		log.Warn("email queue not fully drained", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Warn("redis close", zap.Error(err))
		}
	}
	if err := store.Close(ctx); err != nil {
		log.Error("store close", zap.Error(err))
	}
}

func openStore(conf *config.AppConfig) (domain.Store, error) {
	if conf.StoreDriver == config.StoreDriverMemory {
		return memory.New(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), conf.MongoOpTimeout*2)
	defer cancel()
	return mongodb.NewStore(ctx, conf.MongoURI, conf.MongoDatabase, conf.MongoOpTimeout)
}
