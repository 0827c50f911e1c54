package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/groupie/internal/config"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := config.Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *cfg, config.DefaultConfig())

	_, err = os.Stat(path)
	assert.NilError(t, err, "config file should be written")
}

func TestLoad_FillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{"player":"mplayer","previewDelayMs":500}`), 0644))

	cfg, err := config.Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Player, "mplayer")
	assert.Equal(t, cfg.PreviewDelay(), 500*time.Millisecond)
	assert.Equal(t, cfg.TrackerURL, "https://groupietrackers.herokuapp.com/api")
	assert.Equal(t, cfg.SearchURL, "https://itunes.apple.com/search")
	assert.Equal(t, cfg.SearchLimit, 20)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := config.DefaultConfig()
	want.Locale = "fr"
	want.LogFile = "/tmp/groupie.log"

	assert.NilError(t, config.Save(path, &want))
	got, err := config.Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *got, want)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvTrackerURL:     "http://localhost:8080/api",
		config.EnvPlayer:         "/usr/local/bin/mpv",
		config.EnvPreviewDelayMs: "750",
		config.EnvCards:          "cards.html",
	}
	cfg := config.DefaultConfig()

	assert.NilError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, cfg.TrackerURL, "http://localhost:8080/api")
	assert.Equal(t, cfg.Player, "/usr/local/bin/mpv")
	assert.Equal(t, cfg.PreviewDelay(), 750*time.Millisecond)
	assert.Equal(t, cfg.CardsFile, "cards.html")
	assert.Equal(t, cfg.Locale, "en", "unset variables keep the file value")
}

func TestApplyEnv_InvalidDelay(t *testing.T) {
	for _, v := range []string{"soon", "-5", "0"} {
		cfg := config.DefaultConfig()
		err := cfg.ApplyEnv(func(k string) string {
			if k == config.EnvPreviewDelayMs {
				return v
			}
			return ""
		})
		assert.ErrorContains(t, err, config.EnvPreviewDelayMs, v)
	}
}
