package adapters

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/toyz/taglib/pkg/taglib"
	"github.com/toyz/taglib/pkg/taglib/render"
)

// GinScopes returns request scope backed by the gin context keys and app as application scope
func GinScopes(c *gin.Context, app *taglib.Application) taglib.Scopes {
	return scopes(contextStore{
		get: func(key string) any {
			v, _ := c.Get(key)
			return v
		},
		set: func(key string, value any) {
			c.Set(key, value)
		},
	}, app)
}

// GinPageContext creates a page context writing to the gin response
func GinPageContext(c *gin.Context, app *taglib.Application) *taglib.ScopedPageContext {
	return taglib.NewPageContext(c.Request.Context(), c.Writer, GinScopes(c, app))
}

// GinHandler serves page as HTML
func GinHandler(app *taglib.Application, page templ.Component) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)

		err := render.Page(GinPageContext(c, app), page)
		if err != nil && !errors.Is(err, render.ErrSkipPage) {
			_ = c.AbortWithError(http.StatusInternalServerError, err)
		}
	}
}
