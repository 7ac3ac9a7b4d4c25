package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/example/drillbot/internal/drill"
)

// Load reads the .env file named by DRILL_ENV_FILE (fallback "./.env") if it
// exists, then the environment. Variables already set in the environment win
// over the file.
func Load() (*Config, error) {
	path := os.Getenv("DRILL_ENV_FILE")
	explicitPath := path != ""
	if !explicitPath {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if explicitPath || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// Validate checks field constraints and fills the parsed fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ids, err := parseIDs(c.Telegram.AdminIDsRaw)
	if err != nil {
		return fmt.Errorf("validation failed: ADMIN_USER_IDS: %w", err)
	}
	c.Telegram.AdminIDs = ids

	policy, err := drill.ParsePolicy(c.Drill.PolicyName)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	c.Drill.Policy = policy

	return nil
}

func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
