package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vyrodovalexey/parcelgw/internal/config"
)

// corsContext holds pre-computed values for CORS middleware.
type corsContext struct {
	config           config.CORSConfig
	allowAllOrigins  bool
	allowMethodsStr  string
	allowHeadersStr  string
	exposeHeadersStr string
	maxAgeStr        string
}

func newCORSContext(cfg config.CORSConfig) *corsContext {
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"}
	}

	ctx := &corsContext{
		config:           cfg,
		allowAllOrigins:  slices.Contains(cfg.AllowOrigins, "*"),
		allowMethodsStr:  strings.Join(cfg.AllowMethods, ","),
		allowHeadersStr:  strings.Join(cfg.AllowHeaders, ","),
		exposeHeadersStr: strings.Join(cfg.ExposeHeaders, ","),
	}
	if cfg.MaxAge > 0 {
		ctx.maxAgeStr = strconv.Itoa(cfg.MaxAge)
	}
	return ctx
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when the origin is not allowed.
func (ctx *corsContext) allowOrigin(origin string) string {
	if ctx.allowAllOrigins && !ctx.config.AllowCredentials {
		return "*"
	}
	if origin == "" {
		return ""
	}
	if ctx.allowAllOrigins || slices.Contains(ctx.config.AllowOrigins, origin) {
		return origin
	}
	return ""
}

func (ctx *corsContext) setCommonHeaders(c *gin.Context, allowed string) {
	c.Header("Access-Control-Allow-Origin", allowed)
	if allowed != "*" {
		c.Writer.Header().Add(HeaderVary, HeaderOrigin)
	}
	if ctx.config.AllowCredentials {
		c.Header("Access-Control-Allow-Credentials", "true")
	}
}

// setPreflightHeaders answers a preflight. With no configured allow list
// the requested headers are reflected.
func (ctx *corsContext) setPreflightHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Methods", ctx.allowMethodsStr)

	if ctx.allowHeadersStr != "" {
		c.Header("Access-Control-Allow-Headers", ctx.allowHeadersStr)
	} else if requested := c.GetHeader(HeaderAccessControlRequestHeader); requested != "" {
		c.Header("Access-Control-Allow-Headers", requested)
		c.Writer.Header().Add(HeaderVary, HeaderAccessControlRequestHeader)
	}

	if ctx.maxAgeStr != "" {
		c.Header("Access-Control-Max-Age", ctx.maxAgeStr)
	}
}

// CORS returns a CORS middleware built from configuration. Preflight
// requests are answered with 204 and never reach the handlers.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	ctx := newCORSContext(cfg)

	return func(c *gin.Context) {
		allowed := ctx.allowOrigin(c.GetHeader(HeaderOrigin))
		if allowed == "" {
			c.Next()
			return
		}

		ctx.setCommonHeaders(c, allowed)

		if c.Request.Method == http.MethodOptions {
			ctx.setPreflightHeaders(c)
			c.Header("Content-Length", "0")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if ctx.exposeHeadersStr != "" {
			c.Header("Access-Control-Expose-Headers", ctx.exposeHeadersStr)
		}

		c.Next()
	}
}
