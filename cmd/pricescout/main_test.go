package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, out *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1, "stdout must carry exactly one JSON line")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	return got
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options
	}{
		{"url only", []string{"https://www.amazon.es/dp/X"}, options{url: "https://www.amazon.es/dp/X"}},
		{"flag before url", []string{"--no-headless", "https://a"}, options{url: "https://a", noHeadless: true}},
		{"flag after url", []string{"https://a", "--no-headless"}, options{url: "https://a", noHeadless: true}},
		{"single dash", []string{"-no-headless", "https://a"}, options{url: "https://a", noHeadless: true}},
		{"values both sides", []string{"--config", "c.yaml", "https://a", "--html", "p.html"},
			options{url: "https://a", configPath: "c.yaml", htmlPath: "p.html"}},
		{"empty", nil, options{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	_, err := parseArgs([]string{"https://a", "https://b"})
	assert.Error(t, err)

	_, err = parseArgs([]string{"--bogus", "https://a"})
	assert.Error(t, err)
}

func TestRun_MissingURL(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	got := decode(t, &stdout)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "URL not provided", got["error"])
	for _, key := range []string{"title", "price", "original_price", "discount", "image"} {
		v, ok := got[key]
		assert.True(t, ok, key)
		assert.Nil(t, v, key)
	}
	assert.Contains(t, stderr.String(), "usage:")
}

func TestRun_UnsupportedSite(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"https://www.example.com/item/1"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	got := decode(t, &stdout)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "store not supported: unknown", got["error"])
	assert.Equal(t, "unknown", got["store"])
	assert.NotContains(t, stdout.String(), "level=")
}

func TestRun_MissingConfigFile(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"https://www.amazon.es/dp/X", "--config", filepath.Join(t.TempDir(), "nope.yaml")}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	got := decode(t, &stdout)
	assert.Equal(t, false, got["success"])
	assert.Contains(t, got["error"], "failed to load configuration")
	assert.Equal(t, "amazon", got["store"])
}

func TestRun_HTMLReplay(t *testing.T) {
	page := `<html><head><title>x</title></head><body>
<span id="productTitle">Robot aspirador &amp; fregasuelos</span>
<span class="a-price"><span class="a-offscreen">199,99 €</span></span>
<img id="landingImage" src="https://m.media-amazon.com/images/I/robot.jpg?a=1&b=2">
</body></html>`
	path := filepath.Join(t.TempDir(), "saved.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"https://www.amazon.es/dp/B0ROBOT", "--html", path}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	got := decode(t, &stdout)
	assert.Equal(t, true, got["success"])
	assert.Nil(t, got["error"])
	assert.Equal(t, "Robot aspirador & fregasuelos", got["title"])
	assert.Equal(t, 199.99, got["price"])
	assert.Nil(t, got["original_price"])
	assert.Nil(t, got["discount"])
	assert.Equal(t, "amazon", got["store"])
	// HTML escaping is disabled.
	assert.Contains(t, stdout.String(), "a=1&b=2")
}
