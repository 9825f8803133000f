package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Env holds the process configuration read from the environment.
type Env struct {
	HiscoreFile  string // Path of the high-score YAML file
	StartLevel   int    // First level of a new game, 0 keeps the game.yaml value
	SkipIntro    bool
	Immortal     bool
	Demo         bool
	Seed         int64 // Random seed, 0 picks one from the clock
	LogLevel     string
	SpectateAddr string // Listen address of the spectator feed, empty disables it
}

// Load reads .env when present and the MAZECHASE_* variables.
func Load(log *logrus.Entry, files ...string) Env {
	if err := godotenv.Load(files...); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}

	return Env{
		HiscoreFile:  getEnv("MAZECHASE_HISCORE_FILE", "hiscore.yaml"),
		StartLevel:   getEnvAsInt(log, "MAZECHASE_START_LEVEL", 0),
		SkipIntro:    getEnvAsBool(log, "MAZECHASE_SKIP_INTRO", false),
		Immortal:     getEnvAsBool(log, "MAZECHASE_IMMORTAL", false),
		Demo:         getEnvAsBool(log, "MAZECHASE_DEMO", false),
		Seed:         int64(getEnvAsInt(log, "MAZECHASE_SEED", 0)),
		LogLevel:     getEnv("MAZECHASE_LOG_LEVEL", "info"),
		SpectateAddr: getEnv("MAZECHASE_SPECTATE_ADDR", ""),
	}
}

// NewLogger builds the process logger at the configured level.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithError(err).Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(log *logrus.Entry, key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.WithError(err).Warnf("%s must be an integer, using %d", key, fallback)
		return fallback
	}
	return n
}

func getEnvAsBool(log *logrus.Entry, key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.WithError(err).Warnf("%s must be a boolean, using %v", key, fallback)
		return fallback
	}
	return b
}
