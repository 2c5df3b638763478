package component

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestErrorBox_Escapes(t *testing.T) {
	html := render(t, ErrorBox(`"box"`, `<script>alert(1)</script>`))

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, `id=""box""`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `role="alert"`)
}

func TestJoin(t *testing.T) {
	html := render(t, Join(Spinner("one"), nil, ErrorBox("err", "two")))

	assert.Equal(t, `<p aria-busy="true">one</p><article id="err" role="alert"><p>two</p></article>`, html)
}

func TestJoin_StopsOnError(t *testing.T) {
	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return errors.New("render failed")
	})

	var buf bytes.Buffer
	err := Join(Spinner("one"), failing, Spinner("two")).Render(context.Background(), &buf)

	assert.EqualError(t, err, "render failed")
	assert.NotContains(t, buf.String(), "two")
}

func TestFullPage(t *testing.T) {
	html := render(t, FullPage("Invoices & Co", Spinner("Loading")))

	assert.Contains(t, html, "<title>Invoices &amp; Co</title>")
	assert.Contains(t, html, `x-on:set-err-message.window=`)
	assert.Contains(t, html, `x-on:set-info-message.window=`)
	assert.Contains(t, html, `<p aria-busy="true">Loading</p>`)
	assert.Contains(t, html, "https://unpkg.com/htmx.org@1.9.10")
	assert.Contains(t, html, "useTemplateFragments")
}
