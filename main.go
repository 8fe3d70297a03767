package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/encoder/pb"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	mazeRepo       *repo.MazeRepo
	mazeCache      *cache.RedisMazeCache
	mazeEncoder    i.MazeEncoder
	mazeService    i.MazeService
	mazeController api_i.Controller
	jwtTokenizer   i.Tokenizer
	router         *api.Router
	appLogger      i.Logger
)

func newLogger(prefix, color string) *logger.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	if err := l.SetLevel(config.Envs.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Setting %s log level: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initMazeRepo(ctx context.Context) {
	mazeRepo = repo.NewMazeRepo(mongoClient, config.Envs.DBName, "mazes", newLogger("MAZE-REPO", config.ColorBlue))
	if err := mazeRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMazeCache() {
	var err error
	mazeEncoder = &pb.Protobuf{}
	mazeCache, err = cache.NewRedisMazeCache(redisClient, mazeEncoder, config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze cache initialized")
}

func initMazeService() {
	var err error
	mazeService, err = service.NewMazeService(
		mazeRepo,
		mazeCache,
		mazeCache,
		newLogger("MAZE-SERVICE", config.ColorMagenta),
		service.WithMaxDimension(config.Envs.MazeMaxDimension),
	)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewController(mazeService, mazeEncoder, newLogger("MAZE-API", config.ColorCyan))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	config.Init()
	appLogger = newLogger("APP", config.ColorGreen)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initMazeRepo(ctx)
	initMazeCache()
	initMazeService()
	initMazeController()
	initJWTTokenizer()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
