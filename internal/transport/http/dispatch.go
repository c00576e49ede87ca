package http

import (
	"path"

	"github.com/astro-web3/dashboard-authgate/internal/domain/route"
	"github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/gin-gonic/gin"
)

// Interceptor inspects or decorates a request before its handler runs. It
// returns false when it has written a terminal response itself.
type Interceptor func(c *gin.Context, sess session.Context) bool

// Binding attaches an interceptor to the routes it applies to.
type Binding struct {
	Name      string
	Routes    route.Set
	Intercept Interceptor
}

// Dispatch runs, in order, every binding whose routes match the request path.
// The session is resolved at most once and only when some binding applies.
func Dispatch(bindings []Binding, resolver session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := matchPath(c.Request.URL.Path)

		var sess session.Context
		for _, b := range bindings {
			if !b.Routes.Match(p) {
				continue
			}
			if sess == nil {
				sess = resolver.Resolve(c.Request)
			}
			if !b.Intercept(c, sess) {
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// matchPath cleans dot segments so /api/../servers cannot slip past the gate.
func matchPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}
