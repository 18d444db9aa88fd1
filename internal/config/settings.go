package config

import (
	"os"
	"time"

	"go.uber.org/zap"
)

// Timezone is the zone scheduled_time values are interpreted in. Requests
// carry no zone of their own.
var Timezone *time.Location

// MediaRoot is where uploaded images live as flat files.
var MediaRoot string

func InitSettings() {
	Timezone = time.UTC
	if name := os.Getenv("TIME_ZONE"); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			Logger.Fatal("Invalid TIME_ZONE:", zap.String("TIME_ZONE", name), zap.Error(err))
		}
		Timezone = loc
	}

	MediaRoot = os.Getenv("MEDIA_ROOT")
	if MediaRoot == "" {
		MediaRoot = "./media"
	}
	if err := os.MkdirAll(MediaRoot, 0o755); err != nil {
		Logger.Fatal("Could not create media root:", zap.String("path", MediaRoot), zap.Error(err))
	}

	Logger.Info("✅ Settings loaded",
		zap.String("timezone", Timezone.String()),
		zap.String("mediaRoot", MediaRoot),
	)
}

// SchedulerPollInterval controls how often the worker checks the delayed
// queue for due posts.
func SchedulerPollInterval() time.Duration {
	if raw := os.Getenv("SCHEDULER_POLL_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
		Logger.Warn("Invalid SCHEDULER_POLL_INTERVAL, using default", zap.String("value", raw))
	}
	return time.Second
}
