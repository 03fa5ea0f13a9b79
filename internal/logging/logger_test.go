package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New("trivia-api", "production", "debug").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("trivia-api", "production", "verbose").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("trivia-api", "development", "").GetLevel())
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("request_id", "r-1").Logger()

	ctx := IntoContext(context.Background(), logger)
	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"request_id":"r-1"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestFromContext_Fallbacks(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, FromContext(context.Background()).GetLevel())

	var buf bytes.Buffer
	fallback := zerolog.New(&buf)
	got := FromContextOr(context.Background(), fallback)
	got.Info().Msg("fallback")
	assert.Contains(t, buf.String(), "fallback")
}
