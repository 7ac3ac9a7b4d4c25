package bot

import (
	"time"

	"github.com/example/drillbot/internal/config"
	"github.com/example/drillbot/internal/drill"
)

// Options represents the configuration for the bot
type Options struct {
	// Card selection after the first pass over a list
	Policy drill.Policy
	// Correct answers per card that end a session; 0 studies forever
	MasteryTarget int
	// Time between choosing a list and the first prompt
	LoadingDelay time.Duration
	// Non-zero makes every session use the same random sequence
	Seed int64
	// Sheet read by /import for Excel files
	ImportSheet string
	// Telegram users allowed to run /import
	AdminIDs []int64
}

// DefaultOptions returns the default bot configuration
func DefaultOptions() Options {
	return Options{
		Policy:       drill.Continuous,
		LoadingDelay: 600 * time.Millisecond,
		ImportSheet:  "Sheet1",
	}
}

// OptionsFromConfig maps the application config onto bot options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Policy:        cfg.Drill.Policy,
		MasteryTarget: cfg.Drill.MasteryTarget,
		LoadingDelay:  cfg.Drill.LoadingDelay,
		Seed:          cfg.Drill.Seed,
		ImportSheet:   cfg.Drill.ImportSheet,
		AdminIDs:      cfg.Telegram.AdminIDs,
	}
}

func (o Options) isAdmin(userID int64) bool {
	for _, id := range o.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
