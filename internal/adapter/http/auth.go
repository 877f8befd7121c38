package http

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// AuthHeader is the request header carrying the shared secret token.
const AuthHeader = "X-AUTH-TOKEN"

// NewAuthMiddleware returns a Huma operation middleware that rejects any
// request whose token header is missing or does not match the configured
// secret. Rejection short-circuits before the handler runs, so a bad token
// can never cause a store side effect. The 401 response names the expected
// header via the Authenticate response header.
func NewAuthMiddleware(token string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if ctx.Header(AuthHeader) != token {
			ctx.SetHeader("Authenticate", AuthHeader)
			ctx.SetHeader("Content-Type", "application/json")
			ctx.SetStatus(http.StatusUnauthorized)
			_, _ = ctx.BodyWriter().Write([]byte(`{"message":"restricted"}`))
			return
		}
		next(ctx)
	}
}
