package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/timesync/pkg/errors"
)

// Config holds the run configuration loaded from flags, environment
// variables and .env files.
type Config struct {
	// Credentials
	HarvestToken     string
	HarvestAccountID string
	FloatToken       string
	CredentialsFile  string

	// Spreadsheet layout
	SpreadsheetID string
	EntriesSheet  string
	ProjectsSheet string
	WeeklySheet   string
	RolesSheet    string
	LogsSheet     string

	// Behavior
	LookbackDays   int
	DryRun         bool
	DetectChanges  bool
	InPlaceUpdates bool
	SameWeekDates  bool
	FullScan       bool

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration in order of precedence: flags (bound by
// cobra), environment variables, .env file, defaults.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("entries_sheet", "Entries")
	viper.SetDefault("projects_sheet", "Projects")
	viper.SetDefault("weekly_tasks_sheet", "Weekly Tasks")
	viper.SetDefault("roles_sheet", "Roles")
	viper.SetDefault("logs_sheet", "Logs")
	viper.SetDefault("past_entries_lookup", 15)

	cfg := &Config{
		HarvestToken:     viper.GetString("harvest_token"),
		HarvestAccountID: viper.GetString("harvest_account_id"),
		FloatToken:       viper.GetString("float_token"),
		CredentialsFile:  viper.GetString("credentials_file"),

		SpreadsheetID: viper.GetString("spreadsheet_id"),
		EntriesSheet:  viper.GetString("entries_sheet"),
		ProjectsSheet: viper.GetString("projects_sheet"),
		WeeklySheet:   viper.GetString("weekly_tasks_sheet"),
		RolesSheet:    viper.GetString("roles_sheet"),
		LogsSheet:     viper.GetString("logs_sheet"),

		LookbackDays: viper.GetInt("past_entries_lookup"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
	}
	return cfg, nil
}

// Validate checks the fields every command needs; commands check their
// own extras.
func (c *Config) Validate() error {
	if c.HarvestToken == "" || c.HarvestAccountID == "" {
		return errors.NewConfigError("harvest", "HARVEST_TOKEN and HARVEST_ACCOUNT_ID are required",
			errors.ErrTokenRequired)
	}
	if c.SpreadsheetID == "" {
		return errors.NewConfigError("sheets", "SPREADSHEET_ID is required", nil)
	}
	if c.CredentialsFile == "" {
		return errors.NewConfigError("sheets", "CREDENTIALS_FILE is required", nil)
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
