package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/Nothile-Moyo-Git/storefront/internal/errors"
	"github.com/Nothile-Moyo-Git/storefront/internal/log"
	"github.com/Nothile-Moyo-Git/storefront/internal/otel"
)

const (
	keyCsrfToken = "csrf:%s"
	csrfTokenTtl = 24 * time.Hour
)

// MatchCsrfToken reports whether the token supplied with a request matches the
// session-held token. A single trailing slash on the supplied value is ignored
// because form posts may append one to the hidden field value.
func MatchCsrfToken(held string, supplied string) bool {
	supplied = strings.TrimSuffix(supplied, "/")
	return held != "" && held == supplied
}

func IssueCsrfToken(c context.Context, cache *redis.Client, userId uuid.UUID) (string, error) {
	c, span := otel.Tracer.Start(c, "IssueCsrfToken")
	defer span.End()

	cacheKey := fmt.Sprintf(keyCsrfToken, userId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "IssueCsrfToken").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting csrf token to cache").Logger()
	logger.Info().Msg("inserting csrf token to cache")
	token := uuid.NewString()
	err := cache.Set(c, cacheKey, token, csrfTokenTtl).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting csrf token to cache with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("inserted csrf token to cache")

	return token, nil
}

func VerifyCsrfToken(
	c context.Context,
	cache *redis.Client,
	userId uuid.UUID,
	supplied string,
) error {
	c, span := otel.Tracer.Start(c, "VerifyCsrfToken")
	defer span.End()

	cacheKey := fmt.Sprintf(keyCsrfToken, userId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyCsrfToken").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding csrf token in cache").Logger()
	logger.Trace().Msg("finding csrf token in cache")
	held, err := cache.Get(c, cacheKey).Result()
	if err != nil {
		err = fmt.Errorf("failed finding csrf token in cache with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return inErrors.ErrCsrfTokenInvalid
	}
	logger.Trace().Msg("found csrf token in cache")

	if !MatchCsrfToken(held, supplied) {
		err = inErrors.ErrCsrfTokenInvalid
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	return nil
}
