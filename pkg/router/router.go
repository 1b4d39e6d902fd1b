package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/escrowpool/backend/config"
	"github.com/escrowpool/backend/pkg/logger"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HandlerFunc is the signature every endpoint handler follows. The request is
// bound from the query string on GET and from the JSON body on POST.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may derive a new context, which
// is passed down the chain, or return an error to abort the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type Router struct {
	Inner gin.IRouter

	engine      *gin.Engine
	middlewares []MiddlewareFunc
}

// New builds a router whose requests carry the configs, logger, database
// handle, and sequence-id generator in their context, together with the raw
// bearer token when the client sent one.
func New(
	cfg config.Configs,
	db *gorm.DB,
	log logger.Logger,
	node *snowflake.Node,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(func(c *gin.Context) {
		ctx := c.Request.Context()
		ctx = xcontext.WithConfigs(ctx, cfg)
		ctx = xcontext.WithLogger(ctx, log)
		ctx = xcontext.WithDB(ctx, db)
		ctx = xcontext.WithSnowflake(ctx, node)

		if auth := c.GetHeader("Authorization"); auth != "" {
			ctx = xcontext.WithAuthToken(ctx, strings.TrimPrefix(auth, "Bearer "))
		}

		c.Request = c.Request.WithContext(ctx)
	})

	return &Router{Inner: engine, engine: engine}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Use(middleware MiddlewareFunc) {
	r.middlewares = append(r.middlewares, middleware)
}

func (r *Router) Group(pattern string) *Router {
	return &Router{
		Inner:       r.Inner.Group(pattern),
		engine:      r.engine,
		middlewares: append([]MiddlewareFunc{}, r.middlewares...),
	}
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
