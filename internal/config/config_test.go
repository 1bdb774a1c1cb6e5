package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_PORT", "SEED_SAMPLE_DATA", "TRENDS_CASE_INSENSITIVE", "TRENDS_LIMIT", "SUMMARY_TIMEOUT",
	"AI_PROVIDER", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
	"LAB_COMPANY_NAME", "ANALYSIS_LANGUAGE", "REPORT_CRON_SCHEDULE", "TIMEZONE",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_BASE_URL", "WHATSAPP_API_VERSION", "WHATSAPP_QC_MANAGER_ID",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_EXPORT_ID", "GOOGLE_SHEET_EXPORT_RANGE",
	"MONGODB_URI", "MONGODB_DB_NAME", "LOG_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Store.SeedSampleData)
	assert.False(t, cfg.Trends.CaseInsensitive)
	assert.Equal(t, 10, cfg.Trends.Limit)
	assert.Equal(t, 30*time.Second, cfg.AI.SummaryTimeout)
	assert.Equal(t, "", cfg.AI.Provider)
	assert.Equal(t, "Asia/Tehran", cfg.Reporting.Timezone)
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.MongoDB.Enabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_PORT=9090\nSEED_SAMPLE_DATA=false\nTRENDS_LIMIT=5\nSUMMARY_TIMEOUT=5s\nANTHROPIC_API_KEY=ant\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv does not override variables that already exist, even empty ones.
	for _, key := range []string{"APP_PORT", "SEED_SAMPLE_DATA", "TRENDS_LIMIT", "SUMMARY_TIMEOUT", "ANTHROPIC_API_KEY"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.Store.SeedSampleData)
	assert.Equal(t, 5, cfg.Trends.Limit)
	assert.Equal(t, 5*time.Second, cfg.AI.SummaryTimeout)
	assert.Equal(t, ProviderAnthropic, cfg.AI.Provider)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestProviderSelection(t *testing.T) {
	t.Run("gemini preferred when both keys set", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "g")
		t.Setenv("ANTHROPIC_API_KEY", "a")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	})

	t.Run("API_KEY is accepted for gemini", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "legacy")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "legacy", cfg.AI.GeminiKey)
		assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	})

	t.Run("explicit provider requires its key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AI_PROVIDER", "anthropic")

		_, err := Load("")
		assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")
	})

	t.Run("unknown provider", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AI_PROVIDER", "openai")

		_, err := Load("")
		assert.ErrorContains(t, err, "not supported")
	})
}

func TestValidateOptionalIntegrations(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"whatsapp without phone id", map[string]string{"WHATSAPP_TOKEN": "t", "WHATSAPP_QC_MANAGER_ID": "98912"}, "WHATSAPP_PHONE_NUMBER_ID"},
		{"whatsapp without manager", map[string]string{"WHATSAPP_TOKEN": "t", "WHATSAPP_PHONE_NUMBER_ID": "1"}, "WHATSAPP_QC_MANAGER_ID"},
		{"sheets without credentials", map[string]string{"GOOGLE_SHEET_EXPORT_ID": "sheet"}, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{"bad bool", map[string]string{"SEED_SAMPLE_DATA": "maybe"}, "SEED_SAMPLE_DATA"},
		{"bad limit", map[string]string{"TRENDS_LIMIT": "0"}, "TRENDS_LIMIT"},
		{"bad timeout", map[string]string{"SUMMARY_TIMEOUT": "soon"}, "SUMMARY_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidateNil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
