package podcast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestResolveConfiguration_Defaults(t *testing.T) {
	cfg := ResolveConfigurationFrom(envMap(nil), nil)
	assert.Equal(t, DefaultConfiguration(), cfg)
	assert.Equal(t, "gemini-2.5-flash-preview-tts", cfg.TTSModel)
	assert.Equal(t, 24000, cfg.TTSRate)
	assert.Equal(t, "generated_podcasts", cfg.OutputDir)
}

func TestResolveConfiguration_Precedence(t *testing.T) {
	env := envMap(map[string]string{
		"HOST_NAME":          "Jordan",
		"SCRIPT_TEMPERATURE": "0.9",
		"EXPERT_NAME":        "",
		"TTS_RATE":           "fast",
	})
	overrides := map[string]any{
		"host_name":               "Ignored",
		"expert_name":             "Riley",
		"tts_rate":                int64(16000),
		"target_duration_minutes": 10,
		"conversation_style":      "",
		"unknown_key":             "whatever",
	}

	cfg := ResolveConfigurationFrom(env, overrides)

	assert.Equal(t, "Jordan", cfg.HostName, "env wins over override")
	assert.InDelta(t, 0.9, cfg.ScriptTemperature, 1e-9)
	assert.Equal(t, "Riley", cfg.ExpertName, "empty env falls through to override")
	assert.Equal(t, 16000, cfg.TTSRate, "unparsable env falls through to override")
	assert.Equal(t, 10, cfg.TargetDurationMinutes)
	assert.Equal(t, "professional", cfg.ConversationStyle, "empty override falls back to default")
}

func TestResolveConfiguration_RejectsNonPositiveCounts(t *testing.T) {
	cfg := ResolveConfigurationFrom(envMap(nil), map[string]any{
		"tts_channels":     0,
		"tts_sample_width": -2,
		"search_model":     42,
	})
	assert.Equal(t, 1, cfg.TTSChannels)
	assert.Equal(t, 2, cfg.TTSSampleWidth)
	assert.Equal(t, "42", cfg.SearchModel)
}

func TestResolveConfiguration_ProcessEnv(t *testing.T) {
	t.Setenv("TTS_MODEL", "custom-tts")
	cfg := ResolveConfiguration(nil)
	assert.Equal(t, "custom-tts", cfg.TTSModel)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "podcast.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
host_name = "Jamie"
target_duration_minutes = 3
metadata_temperature = 0.5
output_dir = "out"
`), 0o644))

	overrides, err := LoadOverrides(path)
	require.NoError(t, err)

	cfg := ResolveConfigurationFrom(envMap(nil), overrides)
	assert.Equal(t, "Jamie", cfg.HostName)
	assert.Equal(t, 3, cfg.TargetDurationMinutes)
	assert.InDelta(t, 0.5, cfg.MetadataTemperature, 1e-9)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadOverrides_Errors(t *testing.T) {
	_, err := LoadOverrides(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("host_name = "), 0o644))
	_, err = LoadOverrides(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestConfiguration_TOML(t *testing.T) {
	out, err := DefaultConfiguration().TOML()
	require.NoError(t, err)
	assert.Contains(t, out, "host_voice = 'Kore'")
	assert.Contains(t, out, "tts_rate = 24000")

	for _, key := range ConfigurationKeys() {
		assert.Contains(t, out, key+" = ")
	}
}
