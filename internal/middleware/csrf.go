package middleware

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Nothile-Moyo-Git/storefront/internal/common"
	inErrors "github.com/Nothile-Moyo-Git/storefront/internal/errors"
	inHttp "github.com/Nothile-Moyo-Git/storefront/internal/http"
	"github.com/Nothile-Moyo-Git/storefront/internal/log"
)

var mutatingMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// Csrf rejects mutating requests whose supplied token does not match the
// session-held token. Read requests pass through untouched. Runs after Auth so
// the jwt subject is available on the context.
func Csrf(cache *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := mutatingMethods[r.Method]; !ok {
				next.ServeHTTP(w, r)
				return
			}

			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Csrf").
				Logger()
			c := logger.WithContext(r.Context())

			userId, err := common.UserIdFromJwtToken(c)
			if err != nil {
				err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			supplied := r.Header.Get(inHttp.HeaderCsrfToken)
			err = common.VerifyCsrfToken(c, cache, userId, supplied)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusForbidden,
					"message":    inErrors.ErrCsrfTokenInvalid.Error(),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
