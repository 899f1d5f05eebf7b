package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"booklog-backend/internal/config"
	infraCache "booklog-backend/internal/infrastructure/cache"
	"booklog-backend/internal/infrastructure/database"
	"booklog-backend/pkg/cache"
	"booklog-backend/pkg/jwt"

	authorRepo "booklog-backend/internal/domains/author/repository"
	authorService "booklog-backend/internal/domains/author/service"
	bookHandler "booklog-backend/internal/domains/book/handler"
	bookRepo "booklog-backend/internal/domains/book/repository"
	bookService "booklog-backend/internal/domains/book/service"
	completionistHandler "booklog-backend/internal/domains/completionist/handler"
	completionistRepo "booklog-backend/internal/domains/completionist/repository"
	completionistService "booklog-backend/internal/domains/completionist/service"
	readHandler "booklog-backend/internal/domains/read/handler"
	readRepo "booklog-backend/internal/domains/read/repository"
	readService "booklog-backend/internal/domains/read/service"
	semesterHandler "booklog-backend/internal/domains/semester/handler"
	semesterRepo "booklog-backend/internal/domains/semester/repository"
	semesterService "booklog-backend/internal/domains/semester/service"
	statisticsHandler "booklog-backend/internal/domains/statistics/handler"
	statisticsRepo "booklog-backend/internal/domains/statistics/repository"
	statisticsService "booklog-backend/internal/domains/statistics/service"
	userHandler "booklog-backend/internal/domains/user/handler"
	userRepo "booklog-backend/internal/domains/user/repository"
	userService "booklog-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
// It is the root of the dependency graph; everything in it is a
// singleton living for the process lifetime.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	redisClient *infraCache.RedisClient

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	UserRepo          userRepo.UserRepository
	BookRepo          bookRepo.BookRepository
	ReadRepo          readRepo.ReadRepository
	AuthorRepo        authorRepo.AuthorRepository
	SemesterRepo      semesterRepo.SemesterRepository
	StatisticsRepo    statisticsRepo.StatisticsRepository
	CompletionistRepo completionistRepo.CompletionistRepository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	UserService          userService.ServiceInterface
	BookService          bookService.ServiceInterface
	ReadService          readService.ServiceInterface
	AuthorService        authorService.ServiceInterface
	SemesterService      semesterService.ServiceInterface
	StatisticsService    statisticsService.ServiceInterface
	CompletionistService completionistService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	UserHandler          *userHandler.Handler
	BookHandler          *bookHandler.Handler
	ReadHandler          *readHandler.Handler
	SemesterHandler      *semesterHandler.Handler
	StatisticsHandler    *statisticsHandler.Handler
	CompletionistHandler *completionistHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds and initializes the whole dependency graph.
//
// Initialization order matters:
// 1. Config (depends on nothing)
// 2. Infrastructure (DB, Cache, queue client) - depends on Config
// 3. Repositories - depend on Infrastructure
// 4. Services - depend on Repositories
// 5. Handlers - depend on Services
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(context.Background()); err != nil {
		// Redis failure is not critical, cached reads fall through to
		// the database
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.redisClient = redisClient
	c.Cache = infraCache.NewRedisCache(redisClient)

	// ========================================
	// STEP 4: INITIALIZE JWT + QUEUE CLIENT
	// ========================================
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	log.Println("✅ Task queue client initialized")

	// ========================================
	// STEP 5: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 6: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")
	c.initServices()
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 7: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.BookRepo = bookRepo.NewPostgresBookRepository(pool)
	c.ReadRepo = readRepo.NewPostgresReadRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresAuthorRepository(pool)
	c.SemesterRepo = semesterRepo.NewPostgresSemesterRepository(pool)
	c.StatisticsRepo = statisticsRepo.NewPostgresStatisticsRepository(pool)
	c.CompletionistRepo = completionistRepo.NewPostgresCompletionistRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.SemesterService = semesterService.NewSemesterService(
		c.SemesterRepo,
		c.ReadRepo,
		c.StatisticsRepo,
	)

	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.ReadRepo,
		c.AsynqClient,
	)

	c.ReadService = readService.NewReadService(
		c.ReadRepo,
		c.BookRepo,
		readService.NewPointCalculator(),
		c.AsynqClient,
	)

	c.StatisticsService = statisticsService.NewStatisticsService(
		c.StatisticsRepo,
		c.ReadRepo,
		c.Cache,
	)

	c.CompletionistService = completionistService.NewCompletionistService(
		c.CompletionistRepo,
		c.AuthorService,
		c.BookRepo,
		c.ReadRepo,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewHandler(c.UserService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.ReadHandler = readHandler.NewHandler(c.ReadService)
	c.SemesterHandler = semesterHandler.NewHandler(c.SemesterService)
	c.StatisticsHandler = statisticsHandler.NewHandler(c.StatisticsService)
	c.CompletionistHandler = completionistHandler.NewHandler(c.CompletionistService, c.AsynqClient)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases container resources, called during graceful shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close task queue client: %v", err)
		} else {
			log.Println("✅ Task queue client closed")
		}
	}

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}

	log.Println("✅ Container cleanup completed")
}
