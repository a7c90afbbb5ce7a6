// config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"naver-booking-notifier/models"
)

// Config carries everything read from the environment. Load never fails;
// Validate reports the keys that must be present before any signed call.
type Config struct {
	Port string

	JWTSecret         string
	AdminPasswordHash string // bcrypt hash of the operator password

	BizID            string
	ChromeProfileDir string
	RunLogDir        string

	SolapiAPIKey             string
	SolapiAPISecret          string
	SolapiSender             string
	SolapiPfID               string
	SolapiTemplateID         string
	SolapiReminderTemplateID string
	SolapiBaseURL            string

	ReminderLead      time.Duration
	MinScheduleMargin time.Duration

	AutoDispatchCron string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		BizID:            getEnv("BIZ_ID", "1575275"),
		ChromeProfileDir: getEnv("CHROME_PROFILE_DIR", "./chrome-profile"),
		RunLogDir:        getEnv("RUN_LOG_DIR", "./run-logs"),

		SolapiAPIKey:             os.Getenv("SOLAPI_API_KEY"),
		SolapiAPISecret:          os.Getenv("SOLAPI_API_SECRET"),
		SolapiSender:             os.Getenv("SOLAPI_SENDER"),
		SolapiPfID:               os.Getenv("SOLAPI_PF_ID"),
		SolapiTemplateID:         os.Getenv("SOLAPI_TEMPLATE_ID"),
		SolapiReminderTemplateID: os.Getenv("SOLAPI_REMINDER_TEMPLATE_ID"),
		SolapiBaseURL:            getEnv("SOLAPI_BASE_URL", "https://api.solapi.com"),

		ReminderLead:      time.Duration(getEnvInt("REMINDER_LEAD_MINUTES", 60)) * time.Minute,
		MinScheduleMargin: time.Duration(getEnvInt("MIN_SCHEDULE_MARGIN_SECONDS", 120)) * time.Second,

		AutoDispatchCron: os.Getenv("AUTO_DISPATCH_CRON"),
	}
}

// Validate checks the credentials the dispatch paths cannot run without.
// Missing keys abort startup so no half-configured batch ever runs.
func (c *Config) Validate() error {
	var missing []string
	required := []struct {
		key   string
		value string
	}{
		{"JWT_SECRET", c.JWTSecret},
		{"ADMIN_PASSWORD_HASH", c.AdminPasswordHash},
		{"SOLAPI_API_KEY", c.SolapiAPIKey},
		{"SOLAPI_API_SECRET", c.SolapiAPISecret},
		{"SOLAPI_SENDER", c.SolapiSender},
		{"SOLAPI_PF_ID", c.SolapiPfID},
		{"SOLAPI_TEMPLATE_ID", c.SolapiTemplateID},
		{"SOLAPI_REMINDER_TEMPLATE_ID", c.SolapiReminderTemplateID},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return &models.ConfigError{Missing: missing}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
