package generate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillside/proposia/ai/mock"
	"github.com/quillside/proposia/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDetectCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidAnswer", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "Shopify", nil
		}

		assert.Equal(t, "Shopify", DetectCategory(ctx, generator, "an online store", testLogger()))
	})

	t.Run("NormalizesCase", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "  wordpress\n", nil
		}

		assert.Equal(t, "WordPress", DetectCategory(ctx, generator, "a company blog", testLogger()))
	})

	t.Run("UnknownLabelFallsBack", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "Django", nil
		}

		assert.Equal(t, DefaultCategory, DetectCategory(ctx, generator, "a web app", testLogger()))
	})

	t.Run("ProviderFailureFallsBack", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "", errors.New("connection refused")
		}

		assert.Equal(t, DefaultCategory, DetectCategory(ctx, generator, "a web app", testLogger()))
	})
}

func TestDetectComplexity(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidAnswer", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "Complex", nil
		}

		assert.Equal(t, core.ComplexityComplex, DetectComplexity(ctx, generator, "a marketplace", testLogger()))
	})

	t.Run("UnknownLabelFallsBack", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "gigantic", nil
		}

		assert.Equal(t, core.ComplexityMedium, DetectComplexity(ctx, generator, "a site", testLogger()))
	})

	t.Run("ProviderFailureFallsBack", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "", errors.New("timeout")
		}

		assert.Equal(t, core.ComplexityMedium, DetectComplexity(ctx, generator, "a site", testLogger()))
	})
}
