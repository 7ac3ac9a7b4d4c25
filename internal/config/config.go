// Package config loads drillbot settings from the environment and an optional
// .env file.
package config

import (
	"time"

	"github.com/example/drillbot/internal/drill"
)

// Config is the root application configuration.
type Config struct {
	Telegram TelegramConfig
	Database DatabaseConfig
	Drill    DrillConfig
	Log      LogConfig
}

// TelegramConfig holds Bot API settings.
type TelegramConfig struct {
	Token         string `env:"TELEGRAM_BOT_TOKEN"      env-required:"true" validate:"required"`
	Debug         bool   `env:"TELEGRAM_DEBUG"          env-default:"false"`
	UpdateTimeout int    `env:"TELEGRAM_UPDATE_TIMEOUT" env-default:"60"    validate:"gt=0"`
	AdminIDsRaw   string `env:"ADMIN_USER_IDS"`

	// AdminIDs is parsed from AdminIDsRaw during validation.
	AdminIDs []int64 `env:"-"`
}

// DatabaseConfig selects the list catalog backend.
type DatabaseConfig struct {
	Driver string `env:"DATABASE_DRIVER" env-default:"sqlite3"           validate:"oneof=sqlite3 postgres"`
	DSN    string `env:"DATABASE_DSN"    env-default:"data/drillbot.db" validate:"required"`
}

// DrillConfig holds study session settings.
type DrillConfig struct {
	PolicyName    string        `env:"DRILL_POLICY"         env-default:"continuous" validate:"oneof=continuous rounds"`
	MasteryTarget int           `env:"DRILL_MASTERY_TARGET" env-default:"0"          validate:"gte=0"`
	LoadingDelay  time.Duration `env:"DRILL_LOADING_DELAY"  env-default:"600ms"      validate:"gte=0"`
	// Seed makes every session reproducible when non-zero.
	Seed        int64  `env:"DRILL_SEED"         env-default:"0"`
	ImportPath  string `env:"DRILL_IMPORT_PATH"`
	ImportSheet string `env:"DRILL_IMPORT_SHEET" env-default:"Sheet1"`

	// Policy is parsed from PolicyName during validation.
	Policy drill.Policy `env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" env-default:"json" validate:"oneof=json text"`
}

// IsAdmin reports whether the Telegram user may run admin commands.
func (c TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
