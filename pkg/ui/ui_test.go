package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBannerContainsVersion(t *testing.T) {
	SetSilent(false)
	banner := Banner()
	assert.Contains(t, banner, Version)
	assert.Contains(t, banner, "residual file scanner")
}

func TestBannerSilent(t *testing.T) {
	SetSilent(true)
	defer SetSilent(false)
	assert.Empty(t, Banner())
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	assert.True(t, strings.HasPrefix(ua, "leftovers/"))
	assert.Contains(t, ua, Version)
}

func TestSilentState(t *testing.T) {
	SetSilent(true)
	assert.True(t, IsSilent())
	SetSilent(false)
	assert.False(t, IsSilent())
}

func TestNoColorState(t *testing.T) {
	SetNoColor(true)
	assert.True(t, IsNoColor())
	assert.Equal(t, "[+]", Icon("✓", "[+]"), "no-color mode falls back to ascii")
	SetNoColor(false)
	assert.False(t, IsNoColor())
}

func TestStatusCodeStyleDoesNotPanic(t *testing.T) {
	for _, code := range []int{0, 200, 206, 301, 403, 404, 500, 999} {
		_ = StatusCodeStyle(code).Render("x")
	}
}
