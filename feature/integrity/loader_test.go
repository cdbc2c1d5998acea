package integrity

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestLoader(t *testing.T) {
	_, svc := newTestService(t, nil, nil)
	feature := NewFeature(svc)

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
