package loader

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	if f.err != nil {
		return f.err
	}
	f.loaded = true
	app.Get("/"+f.name, func(c *fiber.Ctx) error { return c.SendString(f.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &fakeFeature{name: "sitemaps", enabled: true}
	disabled := &fakeFeature{name: "history", enabled: false}

	mgr := NewManager(nil)
	mgr.Register(enabled)
	mgr.Register(disabled)
	assert.Len(t, mgr.Features(), 2)

	app := fiber.New()
	require.NoError(t, mgr.LoadAll(app))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)

	resp, err := app.Test(httptest.NewRequest("GET", "/sitemaps", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/history", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestManager_LoadAllError(t *testing.T) {
	boom := errors.New("boom")
	after := &fakeFeature{name: "after", enabled: true}

	mgr := NewManager(nil)
	mgr.Register(&fakeFeature{name: "broken", enabled: true, err: boom})
	mgr.Register(after)

	err := mgr.LoadAll(fiber.New())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
	assert.False(t, after.loaded)
}
