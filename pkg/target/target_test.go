package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	t.Parallel()

	tgt, err := Parse("https://www.example.com/app/v2")
	require.NoError(t, err)

	assert.Equal(t, "https", tgt.Scheme)
	assert.Equal(t, "www.example.com", tgt.Host)
	assert.Equal(t, "www", tgt.Subdomain)
	assert.Equal(t, "example", tgt.Domain)
	assert.Equal(t, "com", tgt.Suffix)
	assert.Equal(t, "app/v2", tgt.Path)
	assert.Equal(t, []string{"app", "v2"}, tgt.PathSegments)
	assert.False(t, tgt.IsIP)
	assert.Equal(t, "example.com", tgt.RegisteredDomain())
	assert.Equal(t, "https://www.example.com", tgt.BaseURL())
}

func TestParse_CompoundSuffix(t *testing.T) {
	t.Parallel()

	tgt, err := Parse("http://portal.banco.com.br")
	require.NoError(t, err)

	assert.Equal(t, "portal", tgt.Subdomain)
	assert.Equal(t, "banco", tgt.Domain)
	assert.Equal(t, "com.br", tgt.Suffix)
	assert.Equal(t, "banco.com.br", tgt.RegisteredDomain())
	assert.False(t, tgt.HasPath())
}

func TestParse_MultiLevelSubdomain(t *testing.T) {
	t.Parallel()

	tgt, err := Parse("https://www.stage.example.co.uk/x")
	require.NoError(t, err)

	assert.Equal(t, "www.stage", tgt.Subdomain)
	assert.Equal(t, "example", tgt.Domain)
	assert.Equal(t, "co.uk", tgt.Suffix)
}

func TestParse_NoSubdomain(t *testing.T) {
	t.Parallel()

	tgt, err := Parse("https://example.com")
	require.NoError(t, err)

	assert.Empty(t, tgt.Subdomain)
	assert.Equal(t, "example", tgt.Domain)
	assert.Equal(t, "com", tgt.Suffix)
}

func TestParse_SchemeDefaulted(t *testing.T) {
	t.Parallel()

	tgt, err := Parse("example.com/admin")
	require.NoError(t, err)

	assert.Equal(t, "http", tgt.Scheme)
	assert.Equal(t, []string{"admin"}, tgt.PathSegments)
}

func TestParse_IPLiteral(t *testing.T) {
	t.Parallel()

	tgt, err := Parse("http://192.0.2.10:8080/app")
	require.NoError(t, err)

	assert.True(t, tgt.IsIP)
	assert.Equal(t, "192.0.2.10:8080", tgt.Host)
	assert.Equal(t, "192.0.2.10", tgt.Hostname)
	assert.Empty(t, tgt.Subdomain)
	assert.Empty(t, tgt.Domain)
	assert.Empty(t, tgt.Suffix)
	assert.Empty(t, tgt.RegisteredDomain())
	assert.Equal(t, []string{"app"}, tgt.PathSegments)
}

func TestParse_HostWithPort(t *testing.T) {
	t.Parallel()

	tgt, err := Parse("https://dev.example.com:8443/a/b")
	require.NoError(t, err)

	assert.Equal(t, "dev.example.com:8443", tgt.Host)
	assert.Equal(t, "dev.example.com", tgt.Hostname)
	assert.Equal(t, "dev", tgt.Subdomain)
	assert.Equal(t, "https://dev.example.com:8443", tgt.BaseURL())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"",
		"   ",
		"ftp://example.com",
		"http://",
		"http://bad host/",
	} {
		_, err := Parse(raw)
		assert.Error(t, err, "Parse(%q) should fail", raw)
	}
}

func TestPathLevels(t *testing.T) {
	t.Parallel()

	tgt, err := Parse("https://example.com/a/b/c")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a/b", "a/b/c"}, tgt.PathLevels())

	root, err := Parse("https://example.com")
	require.NoError(t, err)
	assert.Empty(t, root.PathLevels())
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateURL("https://example.com/path"))
	assert.Error(t, ValidateURL(""))
	assert.Error(t, ValidateURL("x"))

	long := "https://example.com/"
	for len(long) <= 2048 {
		long += "aaaaaaaaaa"
	}
	assert.Error(t, ValidateURL(long))
}
