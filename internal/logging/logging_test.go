package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/rshade/tablekit/internal/logging"
)

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.ComponentLogger(zerolog.New(&buf), "scroll")

	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"scroll"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestFromContext(t *testing.T) {
	t.Run("stored logger", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.WithLogger(context.Background(), zerolog.New(&buf))

		logging.FromContext(ctx).Info().Msg("from ctx")

		assert.Contains(t, buf.String(), "from ctx")
	})

	t.Run("empty context", func(t *testing.T) {
		logger := logging.FromContext(context.Background())
		assert.NotNil(t, logger)
		assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	})
}
