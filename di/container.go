package di

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"

	"buildings-server/api"
	"buildings-server/api/osdata"
	"buildings-server/config"
	"buildings-server/dao"
	"buildings-server/dao/postgres"
	"buildings-server/dao/redis"
	"buildings-server/db"
	"buildings-server/server"
	"buildings-server/server/handlers"
	services "buildings-server/service"
	"buildings-server/util/scene"
)

// Container holds all application dependencies.
type Container struct {
	Config              *config.Config
	RedisClient         db.RedisClient
	PostgresDB          *sqlx.DB
	Stash               dao.Stash
	OSDataAPI           osdata.OSDataAPI
	ArtifactCache       *services.ArtifactCache
	BuildingsService    *services.BuildingsService
	BuildingsHandler    *handlers.BuildingsHandler
	MuxRouter           *mux.Router
	Router              *server.Router
	BuildingsHttpServer *server.BuildingsHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Printf("[Container] initializing container - env: %s, stash: %s, live generation: %v",
		cfg.Env, cfg.StashBackend, cfg.LiveGenerationEnabled)
	ctx := context.Background()
	c := &Container{Config: cfg}

	// Initialize the stash backend
	switch cfg.StashBackend {
	case config.STASH_BACKEND_REDIS:
		redisClient, err := db.NewGoRedisClient(ctx, goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}))
		if err != nil {
			return nil, err
		}
		c.RedisClient = redisClient
		c.Stash = redis.NewRedisStashDAO(redisClient)
	case config.STASH_BACKEND_POSTGRES:
		conn, err := db.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		c.PostgresDB = conn
		c.Stash = postgres.NewPostgresStashDAO(conn)
	default:
		return nil, fmt.Errorf("unknown stash backend %q", cfg.StashBackend)
	}

	// Initialize OS data API - fixtures outside prod
	if cfg.Env != "prod" {
		c.OSDataAPI = osdata.NewOSDataApiClientMock(cfg.ResourcesDir)
		log.Printf("[Container] Using mock os data api from %s", cfg.ResourcesDir)
	} else {
		log.Printf("[Container] Using prod os data api at %s", cfg.OSAPIBase)
		httpClient := api.NewHTTPClient(cfg.OSAPIBase, config.OS_API_TIMEOUT_SECONDS*time.Second)
		c.OSDataAPI = osdata.NewOSDataApiClient(httpClient)
		c.OSDataAPI.SetCredentials(cfg.OSAPIKey)
	}

	// Initialize service layer
	c.ArtifactCache = services.NewArtifactCache(c.Stash, cfg.StashAccount, cfg.StashProject)
	c.BuildingsService = services.NewBuildingsService(
		services.NewPaginatedFetcher(c.OSDataAPI),
		services.NewGeometrySynthesizer(c.OSDataAPI),
		c.ArtifactCache,
		scene.Assemble,
		cfg.APIPrefix,
		cfg.LiveGenerationEnabled,
	)

	// Initialize handler, router and server
	c.BuildingsHandler = handlers.NewBuildingsHandler(c.BuildingsService, cfg.APIPrefix)
	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.BuildingsHandler, c.MuxRouter, cfg.APIPrefix)
	c.BuildingsHttpServer = server.NewBuildingsHttpServer(
		c.Router,
		c.MuxRouter,
		cfg.HTTPAddr,
		config.SHUTDOWN_TIMEOUT_SECONDS*time.Second,
		c.BuildingsService.Wait,
	)

	return c, nil
}

// Close releases the stash connections.
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			log.Printf("[Container] failed to close redis: %v", err)
		}
	}
	if c.PostgresDB != nil {
		if err := c.PostgresDB.Close(); err != nil {
			log.Printf("[Container] failed to close postgres: %v", err)
		}
	}
}
