package adapters

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/toyz/taglib/pkg/taglib"
	"github.com/toyz/taglib/pkg/taglib/render"
)

// EchoScopes returns request scope backed by the echo context store and app as application scope
func EchoScopes(c echo.Context, app *taglib.Application) taglib.Scopes {
	return scopes(contextStore{get: c.Get, set: c.Set}, app)
}

// EchoPageContext creates a page context writing to the echo response
func EchoPageContext(c echo.Context, app *taglib.Application) *taglib.ScopedPageContext {
	return taglib.NewPageContext(c.Request().Context(), c.Response(), EchoScopes(c, app))
}

// EchoHandler serves page as HTML
func EchoHandler(app *taglib.Application, page templ.Component) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)

		err := render.Page(EchoPageContext(c, app), page)
		if errors.Is(err, render.ErrSkipPage) {
			return nil
		}
		return err
	}
}
