package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug", zerolog.InfoLevel))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN ", zerolog.InfoLevel))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off", zerolog.InfoLevel))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("nonsense", zerolog.ErrorLevel))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RIDGELINE_LOG_LEVEL", "trace")
	t.Setenv("RIDGELINE_LOG_FORMAT", "json")

	cfg := ApplyEnv(DefaultConfig())
	assert.Equal(t, zerolog.TraceLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}

func TestApplyEnv_IgnoresUnknownFormat(t *testing.T) {
	t.Setenv("RIDGELINE_LOG_FORMAT", "xml")
	cfg := ApplyEnv(DefaultConfig())
	assert.Equal(t, "console", cfg.Format)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: zerolog.InfoLevel, Format: "json"}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("k", "v").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: zerolog.InfoLevel, Format: "json"}, &buf)

	ctx := WithComponent(WithContext(context.Background(), log), "sampler")
	FromContext(ctx).Info().Msg("pass")

	assert.Contains(t, buf.String(), `"component":"sampler"`)
}
