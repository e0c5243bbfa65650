package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/leftovers/leftovers/pkg/defaults"
)

// Version information - overridable at build time via ldflags:
// go build -ldflags "-X github.com/leftovers/leftovers/pkg/ui.Version=1.0.0"
var (
	Version   = defaults.Version
	BuildDate = "dev"
	Commit    = "dev"
)

// UserAgent returns the tool's own User-Agent string, used when the
// realistic browser pool is disabled.
func UserAgent() string {
	return fmt.Sprintf("leftovers/%s", Version)
}

// Global UI state
var (
	silentMode  bool
	noColorMode bool
	uiMu        sync.RWMutex
)

// SetSilent suppresses the banner and progress output.
func SetSilent(silent bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	silentMode = silent
}

// IsSilent reports whether silent mode is enabled.
func IsSilent() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return silentMode
}

// SetNoColor disables colored output.
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsNoColor reports whether color is disabled.
func IsNoColor() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return noColorMode
}

const bannerArt = `
    __          ______  ____
   / /   ___   / __/ /_/ __ \_   _____  __________
  / /   / _ \ / /_/ __/ / / / | / / _ \/ ___/ ___/
 / /___/  __// __/ /_/ /_/ /| |/ /  __/ /  (__  )
/_____/\___//_/  \__/\____/ |___/\___/_/  /____/
`

// Banner renders the startup banner, or nothing in silent mode.
func Banner() string {
	if IsSilent() {
		return ""
	}
	var b strings.Builder
	b.WriteString(BannerStyle.Render(strings.Trim(bannerArt, "\n")))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("residual file scanner"))
	b.WriteString("  ")
	b.WriteString(VersionStyle.Render("v" + Version))
	b.WriteString("\n")
	return b.String()
}

// PrintBanner writes the banner to stderr so piped stdout stays clean.
func PrintBanner() {
	if banner := Banner(); banner != "" {
		fmt.Fprintln(os.Stderr, banner)
	}
}
