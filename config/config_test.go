package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp 切到空目录，避免读到仓库里的 config.yaml / .env
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, int64(100), cfg.Engagement.PromoteThreshold)
	assert.Equal(t, 5, cfg.Engagement.CommentWindow)
	assert.Equal(t, 30, cfg.Engagement.PreviewLength)
	assert.Equal(t, 5*time.Minute, cfg.Telegram.CommentTimeout)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENGAGE_ENGAGEMENT_PROMOTE_THRESHOLD", "3")
	t.Setenv("ENGAGE_TELEGRAM_CHANNEL_ID", "-1001234")
	t.Setenv("ENGAGE_DATABASE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(3), cfg.Engagement.PromoteThreshold)
	assert.Equal(t, int64(-1001234), cfg.Telegram.ChannelID)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestValidate(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Error(t, cfg.Validate())

	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.ChannelID = -100
	cfg.Telegram.BotUsername = "engage_bot"
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())
}
