package adapters

import (
	"errors"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"

	"github.com/toyz/taglib/pkg/taglib"
	"github.com/toyz/taglib/pkg/taglib/render"
)

// FiberScopes returns request scope backed by the fiber locals and app as application scope
func FiberScopes(c *fiber.Ctx, app *taglib.Application) taglib.Scopes {
	return scopes(contextStore{
		get: func(key string) any {
			return c.Locals(key)
		},
		set: func(key string, value any) {
			c.Locals(key, value)
		},
	}, app)
}

// FiberPageContext creates a page context writing to the fiber response body
func FiberPageContext(c *fiber.Ctx, app *taglib.Application) *taglib.ScopedPageContext {
	return taglib.NewPageContext(c.UserContext(), c, FiberScopes(c, app))
}

// FiberHandler serves page as HTML
func FiberHandler(app *taglib.Application, page templ.Component) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

		err := render.Page(FiberPageContext(c, app), page)
		if errors.Is(err, render.ErrSkipPage) {
			return nil
		}
		return err
	}
}
