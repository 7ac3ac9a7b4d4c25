package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/drillbot/pkg/models"
)

// BuiltinListName is the list available on a fresh catalog.
const BuiltinListName = "The Word Within the Word List #17"

var builtinEntries = [][2]string{
	{"thanatos", "death"},
	{"opia", "sight"},
	{"vac", "empty"},
	{"luc", "light"},
	{"ize", "make"},
	{"sed", "sit"},
	{"fug", "flee"},
	{"pusill", "small"},
	{"nepo", "nephew"},
	{"viv", "life"},
	{"spir", "breathe"},
	{"syn", "together"},
	{"man", "hand"},
	{"ex", "out"},
	{"ism", "system"},
	{"sub", "under"},
	{"ine", "nature of"},
	{"anim", "mind"},
	{"bon", "good"},
	{"ous", "full of"},
	{"thanatopsis", "view of death"},
	{"vacuous", "stupidly empty of ideas"},
	{"lucubration", "late studying"},
	{"ex cathedra", "from the throne"},
	{"legerdemain", "sleight of hand"},
	{"suspiration", "deep sigh"},
	{"nepotism", "favoritism to relatives"},
	{"synoptic", "general in view"},
	{"lionize", "treat as a celebrity"},
	{"assiduous", "persevering"},
	{"subterfuge", "evasive dodge"},
	{"bon vivant", "indulger in luxury"},
	{"saturnine", "gloomy and remote"},
	{"sedentary", "sitting"},
	{"pusillanimous", "small-minded"},
}

// SeedBuiltin stores the built-in list unless a list with that name exists.
// It reports whether the list was created.
func SeedBuiltin(ctx context.Context, repo *ListRepository) (bool, error) {
	_, err := repo.ByName(ctx, BuiltinListName)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	id, err := repo.Create(ctx, BuiltinListName)
	if err != nil {
		return false, err
	}

	entries := make([]models.Entry, len(builtinEntries))
	for i, e := range builtinEntries {
		entries[i] = models.Entry{Term: e[0], Definition: e[1]}
	}
	if err := repo.ReplaceEntries(ctx, id, entries); err != nil {
		return false, fmt.Errorf("seed %q: %w", BuiltinListName, err)
	}
	return true, nil
}
