package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Stash defaults: generated building grids are stashed under a fixed account/project.
const DEFAULT_STASH_ACCOUNT = "ordnancesurvey"
const DEFAULT_STASH_PROJECT = "properties_dimensions"
const STASH_KIND_GLTF = "gltf"

// OS API defaults
const DEFAULT_OS_API_BASE = "https://api.ordnancesurvey.co.uk"
const OS_API_TIMEOUT_SECONDS = 30

// HTTP defaults
const DEFAULT_HTTP_ADDR = ":8080"
const DEFAULT_API_PREFIX = "/api/os"
const SHUTDOWN_TIMEOUT_SECONDS = 5

// Redis defaults
const DEFAULT_REDIS_ADDR = "redis:6379"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const PLACES_RESPONSE_RESOURCE = "places_response.json"
const DIMENSIONS_RESPONSE_RESOURCE = "dimensions_response.json"

const (
	STASH_BACKEND_REDIS    = "redis"
	STASH_BACKEND_POSTGRES = "postgres"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Env       string
	HTTPAddr  string
	APIPrefix string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StashBackend string
	PostgresDSN  string
	StashAccount string
	StashProject string

	OSAPIBase string
	OSAPIKey  string

	// LiveGenerationEnabled lets a stash miss fall through to the OS APIs.
	// Off by default so a miss never causes upstream load.
	LiveGenerationEnabled bool

	ResourcesDir string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] failed to read .env: %v", err)
	}

	return &Config{
		Env:                   getEnv("ENV", "prod"),
		HTTPAddr:              getEnv("HTTP_ADDR", DEFAULT_HTTP_ADDR),
		APIPrefix:             getEnv("API_PREFIX", DEFAULT_API_PREFIX),
		RedisAddr:             getEnv("REDIS_ADDR", DEFAULT_REDIS_ADDR),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		StashBackend:          getEnv("STASH_BACKEND", STASH_BACKEND_REDIS),
		PostgresDSN:           os.Getenv("POSTGRES_DSN"),
		StashAccount:          getEnv("STASH_ACCOUNT", DEFAULT_STASH_ACCOUNT),
		StashProject:          getEnv("STASH_PROJECT", DEFAULT_STASH_PROJECT),
		OSAPIBase:             getEnv("OS_API_BASE", DEFAULT_OS_API_BASE),
		OSAPIKey:              os.Getenv("OS_API_KEY"),
		LiveGenerationEnabled: getEnvBool("LIVE_GENERATION_ENABLED", false),
		ResourcesDir:          getEnv("RESOURCES_DIR", filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX)),
	}
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
