package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/pricescout/extractor"
)

const doc = `<html><head><title>Demo</title></head><body>
<h1 class="first">  First heading </h1>
<div data-name="product-price">1.099,00 €</div>
<img id="main" src="/images/p.jpg">
<a class="abs" href="https://cdn.example.com/x.png">x</a>
</body></html>`

func TestFind(t *testing.T) {
	p, err := Parse(doc, "https://shop.example.com/item/1")
	require.NoError(t, err)

	el, ok := p.Find("h1.first")
	require.True(t, ok)
	assert.Equal(t, "  First heading ", el.Text())

	el, ok = p.Find("[data-name='product-price']")
	require.True(t, ok)
	assert.Equal(t, "1.099,00 €", el.TextContent())

	_, ok = p.Find("#missing")
	assert.False(t, ok)
}

func TestFind_GroupSelectorUsesDocumentOrder(t *testing.T) {
	p, err := Parse(doc, "")
	require.NoError(t, err)

	el, ok := p.Find("#main, h1")
	require.True(t, ok)
	assert.Equal(t, "  First heading ", el.Text())
}

func TestFind_InvalidSelector(t *testing.T) {
	p, err := Parse(doc, "")
	require.NoError(t, err)

	_, ok := p.Find("div[")
	assert.False(t, ok)
}

func TestAttr_ResolvesAgainstPageURL(t *testing.T) {
	p, err := Parse(doc, "https://shop.example.com/item/1")
	require.NoError(t, err)

	el, ok := p.Find("#main")
	require.True(t, ok)
	assert.Equal(t, "https://shop.example.com/images/p.jpg", el.Attr("src"))

	el, ok = p.Find("a.abs")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/x.png", el.Attr("href"))
	assert.Equal(t, "abs", el.Attr("class"))
	assert.Equal(t, "", el.Attr("alt"))
}

func TestWaitFor(t *testing.T) {
	p, err := Parse(doc, "")
	require.NoError(t, err)

	_, err = p.WaitFor(context.Background(), "h1", time.Minute)
	assert.NoError(t, err)

	_, err = p.WaitFor(context.Background(), "#missing", time.Minute)
	assert.True(t, errors.Is(err, extractor.ErrNotFound))
}

func TestSleep_SkipsDelay(t *testing.T) {
	p, err := Parse(doc, "")
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, p.Sleep(context.Background(), time.Hour))
	assert.Less(t, time.Since(start), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Sleep(ctx, time.Second), context.Canceled)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	p, err := Load(path, "https://shop.example.com/")
	require.NoError(t, err)

	raw, err := p.HTML()
	require.NoError(t, err)
	assert.Equal(t, doc, raw)
	assert.Equal(t, "https://shop.example.com/", p.URL())

	_, err = Load(filepath.Join(t.TempDir(), "none.html"), "")
	assert.Error(t, err)
}
