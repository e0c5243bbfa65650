package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want Context
	}{
		{"https://backup.example.com", Context{LikelyBackupSite: true}},
		{"https://dev.example.com", Context{LikelyBackupSite: true, LikelyDevelopment: true}},
		{"https://beta.example.com", Context{LikelyDevelopment: true}},
		{"https://example.com/admin/panel", Context{LikelyAdmin: true}},
		{"https://api.example.com/v1", Context{LikelyAPI: true}},
		{"https://example.com", Context{}},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeContext(tt.url))
		})
	}
}

func TestOptimize_DefaultOrdering(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	exts := []string{"php.bak", "txt", "zip", "weird", "sql"}

	got := p.Optimize(exts, "https://example.com")

	// high (zip, sql) -> medium (txt) -> unknown (weird) -> low (php.bak)
	assert.Equal(t, []string{"zip", "sql", "txt", "weird", "php.bak"}, got)
}

func TestOptimize_BackupSitePrioritizesArchives(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	exts := []string{"tar", "sql", "zip", "txt"}

	got := p.Optimize(exts, "https://backup.example.com")

	// sql(10) > zip(9) > tar(7), then medium
	assert.Equal(t, []string{"sql", "zip", "tar", "txt"}, got)
}

func TestOptimize_DevSitePrioritizesConfig(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	exts := []string{"zip", "log", "txt"}

	got := p.Optimize(exts, "https://beta.example.com")

	assert.Equal(t, []string{"log", "txt", "zip"}, got)
}

func TestOptimize_Empty(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	assert.Empty(t, p.Optimize(nil, "https://example.com"))
}

func TestOptimize_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	exts := []string{"txt", "zip"}
	p.Optimize(exts, "https://example.com")

	assert.Equal(t, []string{"txt", "zip"}, exts)
}

func TestAddContextual_APIHost(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	got := p.AddContextual([]string{"bak"}, "https://api.example.com")

	assert.Contains(t, got, "swagger.json")
	assert.Contains(t, got, "openapi.yaml")
	assert.Contains(t, got, "bak")
}

func TestAddContextual_AdminHost(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	got := p.AddContextual([]string{"bak"}, "https://example.com/admin")

	assert.Contains(t, got, "users.sql")
	assert.Contains(t, got, "passwords.txt")
}

func TestAddContextual_NoDuplicates(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	got := p.AddContextual([]string{"swagger.json", "bak"}, "https://api.example.com")

	count := 0
	for _, e := range got {
		if e == "swagger.json" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddContextual_Deterministic(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	first := p.AddContextual([]string{"bak"}, "https://api.dev.example.com/admin")
	for range 20 {
		assert.Equal(t, first, p.AddContextual([]string{"bak"}, "https://api.dev.example.com/admin"))
	}
}

func TestAddContextual_PlainHostAddsNothing(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer()
	got := p.AddContextual([]string{"bak", "zip"}, "https://example.com")

	assert.ElementsMatch(t, []string{"bak", "zip"}, got)
}
