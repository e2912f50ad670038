package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/Nothile-Moyo-Git/storefront/internal/errors"
	"github.com/Nothile-Moyo-Git/storefront/internal/log"
	inOtel "github.com/Nothile-Moyo-Git/storefront/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/internal/repository"
	"github.com/Nothile-Moyo-Git/storefront/product/internal/cache"
	"github.com/Nothile-Moyo-Git/storefront/product/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/product/pkg/request"
	"github.com/Nothile-Moyo-Git/storefront/product/pkg/response"
)

var ErrProductExists = errors.New("product already exists")

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) ProductService {
	return ProductService{pool: pool, queries: queries, cache: cache}
}

func (svc ProductService) InsertProduct(
	c context.Context,
	param request.Product,
	ownerID uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Info().Msg("finding product in database")
	existing, err := svc.queries.FindProductByName(c, param.Name)
	if err == nil {
		err = fmt.Errorf("product with name=%s with error=%w", param.Name, ErrProductExists)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return existing.Response(), err
	}
	logger.Info().Msg("product does not exist in database")

	logger = logger.With().Str(log.KeyProcess, "inserting product to database").Logger()
	logger.Info().Msg("inserting product to database")
	product, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		Name:        param.Name,
		Description: param.Description,
		ImageUrl:    param.ImageUrl,
		OwnerID:     ownerID,
		Price:       repository.NumericFromDecimal(param.Price),
		Quantity:    param.Quantity,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("inserted product to database")

	cacheKey := fmt.Sprintf(cache.KEY_PRODUCTS, product.ID.String())
	logger = logger.With().
		Str(log.KeyProcess, "inserting product to cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("inserting product to cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return product.Response(), nil
	}
	logger.Info().Msg("inserted product to cache")

	return product.Response(), nil
}

func (svc ProductService) FindProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyProcess, "finding products in database").
		Logger()

	logger.Info().Msg("finding products in database")
	products, err := svc.queries.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products in database", len(products))

	responses := make([]response.Product, 0, len(products))
	for _, product := range products {
		responses = append(responses, product.Response())
	}
	return responses, nil
}

func (svc ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_PRODUCTS, id.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Info().Msg("finding product in cache")
	jsonCache, err := svc.cache.JSONGet(c, cacheKey, "$").Result()
	if err != nil || jsonCache == "" {
		logger.Info().Msg("product is not in cache")

		logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
		logger.Info().Msg("finding product in database")
		product, err := svc.queries.FindProductById(c, id)
		if err != nil {
			err = fmt.Errorf("failed finding product by id=%s with error=%w", id.String(), err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Product{}, err
		}
		logger.Info().Msg("found product in database")

		logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
		logger.Info().Msg("inserting product to cache")
		err = svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err()
		if err != nil {
			err = fmt.Errorf("failed inserting product to cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return product.Response(), nil
		}
		logger.Info().Msg("inserted product to cache")

		return product.Response(), nil
	}
	logger = logger.With().Str(log.KeyJsonCache, jsonCache).Logger()
	logger.Info().Msg("found product in cache")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling product from cache").Logger()
	products := []response.Product{}
	err = json.Unmarshal([]byte(jsonCache), &products)
	if err != nil || len(products) == 0 {
		err = fmt.Errorf("failed unmarshaling product from cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("unmarshaled product from cache")

	return products[0], nil
}

func (svc ProductService) UpdateProduct(
	c context.Context,
	id uuid.UUID,
	param request.Product,
	requesterID uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_PRODUCTS, id.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "verifying product owner").Logger()
	logger.Info().Msg("verifying product owner")
	existing, err := svc.queries.FindProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product by id=%s with error=%w", id.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if existing.OwnerID != requesterID {
		err = fmt.Errorf(
			"requester=%s is not the owner of product=%s with error=%w",
			requesterID.String(), id.String(), inErrors.ErrNotOwner,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("verified product owner")

	logger = logger.With().Str(log.KeyProcess, "updating product in database").Logger()
	logger.Info().Msg("updating product in database")
	product, err := svc.queries.UpdateProduct(c, repository.UpdateProductParams{
		Name:        param.Name,
		Description: param.Description,
		ImageUrl:    param.ImageUrl,
		Price:       repository.NumericFromDecimal(param.Price),
		Quantity:    param.Quantity,
		ID:          id,
	})
	if err != nil {
		err = fmt.Errorf("failed updating product in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("updated product in database")

	logger = logger.With().Str(log.KeyProcess, "updating product in cache").Logger()
	logger.Info().Msg("updating product in cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err()
	if err != nil {
		err = fmt.Errorf("failed updating product in cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("updated product in cache")

	return product.Response(), nil
}

func (svc ProductService) RemoveProduct(
	c context.Context,
	id uuid.UUID,
	requesterID uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService RemoveProduct")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_PRODUCTS, id.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService RemoveProduct").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "verifying product owner").Logger()
	logger.Info().Msg("verifying product owner")
	existing, err := svc.queries.FindProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product by id=%s with error=%w", id.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if existing.OwnerID != requesterID {
		err = fmt.Errorf(
			"requester=%s is not the owner of product=%s with error=%w",
			requesterID.String(), id.String(), inErrors.ErrNotOwner,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("verified product owner")

	logger = logger.With().Str(log.KeyProcess, "removing product from cache").Logger()
	logger.Info().Msg("removing product from cache")
	err = svc.cache.JSONDel(c, cacheKey, "$").Err()
	if err != nil {
		err = fmt.Errorf("failed removing product from cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("removed product from cache")

	logger = logger.With().Str(log.KeyProcess, "removing product from database").Logger()
	logger.Info().Msg("removing product from database")
	product, err := svc.queries.DeleteProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed removing product from database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("removed product from database")

	return product.Response(), nil
}
