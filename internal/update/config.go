package update

import (
	"os"
	"strconv"
	"strings"

	"github.com/sandeepkv93/lazyd/internal/model"
	"github.com/sandeepkv93/lazyd/internal/session"
)

type RuntimeConfig struct {
	Category    model.Category
	Level       int
	WeeklyGoal  int
	DBPath      string
	CatalogFile string
	SessionID   string
	LogFile     string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Category:   session.DefaultCategory,
		Level:      session.DefaultLevel,
		WeeklyGoal: session.DefaultWeeklyGoal,
	}
}

// RuntimeConfigFromEnv applies LAZYD_* overrides. Invalid values are ignored.
func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if raw := strings.TrimSpace(os.Getenv("LAZYD_CATEGORY")); raw != "" {
		if c, err := model.ParseCategory(raw); err == nil {
			cfg.Category = c
		}
	}
	if v, ok := getEnvInt("LAZYD_LEVEL"); ok && model.ValidateLevel(v) == nil {
		cfg.Level = v
	}
	if v, ok := getEnvInt("LAZYD_WEEKLY_GOAL"); ok && v > 0 {
		cfg.WeeklyGoal = v
	}
	if v, ok := getEnvString("LAZYD_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("LAZYD_CATALOG_FILE"); ok {
		cfg.CatalogFile = v
	}
	if v, ok := getEnvString("LAZYD_SESSION_ID"); ok {
		cfg.SessionID = v
	}
	if v, ok := getEnvString("LAZYD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if !c.Category.IsValid() {
		return model.ErrInvalidCategory
	}
	if err := model.ValidateLevel(c.Level); err != nil {
		return err
	}
	return model.ValidateGoal(c.WeeklyGoal)
}

// NewSession starts an in-memory session with the configured ID and
// settings. Invalid settings are an error, never replaced by defaults.
func (c RuntimeConfig) NewSession() (session.State, error) {
	state := session.New()
	if c.SessionID != "" {
		state.ID = c.SessionID
	}
	if err := state.Configure(c.Category, c.Level); err != nil {
		return session.State{}, err
	}
	if err := state.SetWeeklyGoal(c.WeeklyGoal); err != nil {
		return session.State{}, err
	}
	return state, nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
