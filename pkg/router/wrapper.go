package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/escrowpool/backend/pkg/errorx"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = c.ShouldBindQuery(&req)
		default:
			err = c.ShouldBindJSON(&req)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest,
				newErrorResponse(errorx.New(errorx.BadRequest, "Cannot bind the request")))
			return
		}

		ctx := c.Request.Context()
		for _, middleware := range router.middlewares {
			ctx, err = middleware(ctx)
			if err != nil {
				c.JSON(http.StatusOK, newErrorResponse(err))
				return
			}
		}

		resp, err := handler(ctx, &req)
		logRequest(ctx, c, err)
		if err != nil {
			c.JSON(http.StatusOK, newErrorResponse(err))
			return
		}

		c.JSON(http.StatusOK, newResponse(resp))
	}
}

func logRequest(ctx context.Context, c *gin.Context, err error) {
	info := fmt.Sprintf("%s | %s", c.Request.Method, c.Request.URL.Path)
	if err != nil {
		var errx errorx.Error
		if errors.As(err, &errx) {
			xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
		} else {
			xcontext.Logger(ctx).Errorf("%s | %v", info, err)
		}
		return
	}

	xcontext.Logger(ctx).Infof(info)
}
