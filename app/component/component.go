// Package component holds the page shell shared by every route.
package component

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const htmxConfig = `{"useTemplateFragments":true}`

// Join renders components one after another, skipping nil ones.
func Join(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
