package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/Nothile-Moyo-Git/storefront/internal/errors"
	"github.com/Nothile-Moyo-Git/storefront/internal/log"
	inOtel "github.com/Nothile-Moyo-Git/storefront/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/internal/repository"
	"github.com/Nothile-Moyo-Git/storefront/order/internal/cache"
	"github.com/Nothile-Moyo-Git/storefront/order/internal/factory"
	"github.com/Nothile-Moyo-Git/storefront/order/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/order/pkg/request"
	"github.com/Nothile-Moyo-Git/storefront/order/pkg/response"
)

type OrderService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) OrderService {
	return OrderService{pool: pool, queries: queries, cache: cache}
}

func (s OrderService) CreateOrder(
	c context.Context,
	param request.CreateOrder,
	userID uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CreateOrder").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartID, param.CartID.String()).
		Int(log.KeyOrderItems, len(param.OrderItems)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user by id").Logger()
	logger.Info().Msg("finding user by id")
	user, err := s.queries.FindUserById(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding user by id=%s with error=%w",
			userID.String(), errors.Join(err, inErrors.ErrUserNotFound))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found user by id")

	logger = logger.With().Str(log.KeyProcess, "building order").Logger()
	logger.Info().Msg("building order")
	owner := factory.Owner{ID: user.ID, Name: user.Username}
	order := factory.CreateOrder(param, owner, time.Now())
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("built order")

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()
	logger.Info().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "inserting order to database").Logger()
	logger.Info().Msg("inserting order to database")
	queries := s.queries.WithTx(tx)
	orderRow, err := queries.InsertOrder(c, repository.InsertOrderParams{
		ID:         order.ID,
		UserID:     order.UserID,
		UserName:   order.UserName,
		TotalPrice: repository.NumericFromDecimal(order.TotalPrice),
		CreatedAt:  pgtype.Timestamptz{Time: order.CreatedAt, Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("inserted order to database")

	logger = logger.With().Str(log.KeyProcess, "inserting order items to database").Logger()
	logger.Info().Msg("inserting order items to database")
	args := make([]repository.InsertOrderItemParams, len(order.OrderItems))
	for i, item := range order.OrderItems {
		args[i] = repository.InsertOrderItemParams{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     repository.NumericFromDecimal(item.Price),
			Quantity:  item.Quantity,
			Position:  int32(i),
		}
	}
	insertedCount, err := queries.InsertOrderItems(c, args)
	if err != nil {
		err = fmt.Errorf("failed inserting order items to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("inserted %d order items to database", insertedCount)

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	items, err := queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	orderResponse := orderRow.Response(items)

	cacheKey := fmt.Sprintf(cache.KEY_ORDERS, order.ID.String())
	logger = logger.With().
		Str(log.KeyProcess, "inserting order to cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("inserting order to cache")
	err = s.cache.JSONSet(c, cacheKey, "$", orderResponse).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting order to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse, nil
	}
	logger.Info().Msg("inserted order to cache")

	return orderResponse, nil
}

func (s OrderService) FindOrderById(
	c context.Context,
	param request.FindOrderById,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_ORDERS, param.OrderID.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyOrderID, param.OrderID.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order in cache").Logger()
	logger.Info().Msg("finding order in cache")
	jsonCache, err := s.cache.JSONGet(c, cacheKey, "$").Result()
	if err == nil && jsonCache != "" {
		orders := []response.Order{}
		if err := json.Unmarshal([]byte(jsonCache), &orders); err == nil && len(orders) > 0 {
			if orders[0].UserID != param.UserID {
				err = fmt.Errorf(
					"order=%s does not belong to user=%s with error=%w",
					param.OrderID.String(), param.UserID.String(), inErrors.ErrNotOwner,
				)
				inOtel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Order{}, err
			}
			logger.Info().Msg("found order in cache")
			return orders[0], nil
		}
	}
	logger.Info().Msg("order is not in cache")

	logger = logger.With().Str(log.KeyProcess, "finding order in database").Logger()
	logger.Info().Msg("finding order in database")
	orderRow, err := s.queries.FindOrderById(c, repository.FindOrderByIdParams{
		ID:     param.OrderID,
		UserID: param.UserID,
	})
	if err != nil {
		err = fmt.Errorf(
			"failed finding order by id=%s with error=%w",
			param.OrderID.String(), err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	items, err := s.queries.FindOrderItemsByOrderId(c, param.OrderID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order in database")

	orderResponse := orderRow.Response(items)

	logger = logger.With().Str(log.KeyProcess, "inserting order to cache").Logger()
	logger.Info().Msg("inserting order to cache")
	err = s.cache.JSONSet(c, cacheKey, "$", orderResponse).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting order to cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse, nil
	}
	logger.Info().Msg("inserted order to cache")

	return orderResponse, nil
}

func (s OrderService) FindOrders(
	c context.Context,
	param request.FindOrders,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyUserID, param.UserID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders in database").Logger()
	logger.Info().Msg("finding orders in database")
	orderRows, err := s.queries.FindOrdersByUserId(c, param.UserID)
	if err != nil {
		err = fmt.Errorf("failed finding orders in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders in database", len(orderRows))

	orders := make([]response.Order, 0, len(orderRows))
	for _, orderRow := range orderRows {
		items, err := s.queries.FindOrderItemsByOrderId(c, orderRow.ID)
		if err != nil {
			err = fmt.Errorf(
				"failed finding items of order=%s with error=%w",
				orderRow.ID.String(), err,
			)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		orders = append(orders, orderRow.Response(items))
	}

	return orders, nil
}
