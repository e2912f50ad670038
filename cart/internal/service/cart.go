package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Nothile-Moyo-Git/storefront/cart/internal/cache"
	"github.com/Nothile-Moyo-Git/storefront/cart/internal/ledger"
	"github.com/Nothile-Moyo-Git/storefront/cart/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/cart/pkg/request"
	"github.com/Nothile-Moyo-Git/storefront/cart/pkg/response"
	inErrors "github.com/Nothile-Moyo-Git/storefront/internal/errors"
	inHttp "github.com/Nothile-Moyo-Git/storefront/internal/http"
	"github.com/Nothile-Moyo-Git/storefront/internal/log"
	inOtel "github.com/Nothile-Moyo-Git/storefront/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/internal/repository"
	orderResponse "github.com/Nothile-Moyo-Git/storefront/order/pkg/response"
	productResponse "github.com/Nothile-Moyo-Git/storefront/product/pkg/response"
)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) CartService {
	return CartService{pool: pool, queries: queries, cache: cache}
}

// InsertCart merges the requested items into the user's cart, creating the
// cart row first when none exists. A user holds at most one cart; the schema
// backs this with a unique index on carts.user_id.
func (s CartService) InsertCart(
	c context.Context,
	param request.Cart,
	userID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService InsertCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService InsertCart").
		Str(log.KeyUserID, userID.String()).
		Int(log.KeyCartItems, len(param.CartItems)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "merging cart items").Logger()
	logger.Info().Msg("merging cart items")
	merged, err := ledger.MergeItems(param.CartItems)
	if err != nil {
		err = fmt.Errorf("failed merging cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("merged %d cart items into %d lines", len(param.CartItems), len(merged))

	logger = logger.With().Str(log.KeyProcess, "finding product snapshots").Logger()
	logger.Info().Msg("finding product snapshots")
	products := make([]productResponse.Product, len(merged))
	for i, item := range merged {
		product, err := s.findProduct(c, item.ProductId)
		if err != nil {
			err = fmt.Errorf(
				"failed finding product by id=%s with error=%w",
				item.ProductId.String(), err,
			)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		products[i] = product
	}
	logger.Info().Msg("found product snapshots")

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()
	logger.Info().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "finding or inserting cart").Logger()
	logger.Info().Msg("finding or inserting cart")
	queries := s.queries.WithTx(tx)
	cartRow := repository.Cart{}
	if userID != uuid.Nil {
		cartRow, err = queries.FindCartByUserId(c, userID)
	} else {
		err = pgx.ErrNoRows
	}
	if errors.Is(err, pgx.ErrNoRows) {
		cartRow, err = queries.InsertCart(c, uuid.NullUUID{UUID: userID, Valid: userID != uuid.Nil})
	}
	if err != nil {
		err = fmt.Errorf("failed finding or inserting cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	existingItems, err := queries.FindCartItemsByCartId(c, cartRow.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cartRow.ID.String()).Logger()
	logger.Info().Msg("found or inserted cart")

	logger = logger.With().Str(log.KeyProcess, "applying cart items").Logger()
	logger.Info().Msg("applying cart items")
	cart := cartRow.Response(existingItems)
	for i, item := range merged {
		for q := int32(0); q < item.Quantity; q++ {
			cart, err = ledger.AddItem(cart, products[i])
			if err != nil {
				err = fmt.Errorf(
					"failed adding product=%s to cart with error=%w",
					item.ProductId.String(), err,
				)
				inOtel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Cart{}, err
			}
		}
	}
	logger.Info().Msg("applied cart items")

	logger = logger.With().Str(log.KeyProcess, "persisting cart").Logger()
	logger.Info().Msg("persisting cart")
	cart, err = s.persistCart(c, queries, cart)
	if err != nil {
		err = fmt.Errorf("failed persisting cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("persisted cart")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("committed transaction")

	s.cacheCart(c, cart)

	return cart, nil
}

func (s CartService) FindCartById(
	c context.Context,
	param request.FindCartById,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_CARTS, param.ID.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartById").
		Str(log.KeyCartID, param.ID.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart in cache").Logger()
	logger.Info().Msg("finding cart in cache")
	jsonCache, err := s.cache.JSONGet(c, cacheKey, "$").Result()
	if err == nil && jsonCache != "" {
		carts := []response.Cart{}
		if err := json.Unmarshal([]byte(jsonCache), &carts); err == nil && len(carts) > 0 {
			if carts[0].UserID != param.UserId {
				err = fmt.Errorf(
					"cart=%s does not belong to user=%s with error=%w",
					param.ID.String(), param.UserId.String(), inErrors.ErrNotOwner,
				)
				inOtel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Cart{}, err
			}
			logger.Info().Msg("found cart in cache")
			return carts[0], nil
		}
	}
	logger.Info().Msg("cart is not in cache")

	logger = logger.With().Str(log.KeyProcess, "finding cart in database").Logger()
	logger.Info().Msg("finding cart in database")
	cart, err := s.loadCart(c, s.queries, param.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if cart.UserID != param.UserId {
		err = fmt.Errorf(
			"cart=%s does not belong to user=%s with error=%w",
			param.ID.String(), param.UserId.String(), inErrors.ErrNotOwner,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart in database")

	s.cacheCart(c, cart)

	return cart, nil
}

func (s CartService) AddCartItem(
	c context.Context,
	param request.AddCartItem,
	cartID uuid.UUID,
	userID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddCartItem").
		Str(log.KeyCartID, cartID.String()).
		Str(log.KeyProductID, param.ProductId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product snapshot").Logger()
	logger.Info().Msg("finding product snapshot")
	product, err := s.findProduct(c, param.ProductId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding product by id=%s with error=%w",
			param.ProductId.String(), err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found product snapshot")

	c = logger.WithContext(c)
	return s.mutateCart(c, cartID, userID, func(cart response.Cart) (response.Cart, error) {
		return ledger.AddItem(cart, product)
	})
}

func (s CartService) RemoveCartItem(
	c context.Context,
	param request.RemoveCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyCartID, param.CartId.String()).
		Str(log.KeyProductID, param.ProductId.String()).
		Logger()
	c = logger.WithContext(c)

	return s.mutateCart(c, param.CartId, param.UserId, func(cart response.Cart) (response.Cart, error) {
		return ledger.RemoveItem(cart, param.ProductId), nil
	})
}

func (s CartService) EmptyCart(
	c context.Context,
	param request.EmptyCart,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService EmptyCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService EmptyCart").
		Str(log.KeyCartID, param.CartId.String()).
		Logger()
	c = logger.WithContext(c)

	return s.mutateCart(c, param.CartId, param.UserId, func(cart response.Cart) (response.Cart, error) {
		return ledger.EmptyCart(cart), nil
	})
}

func (s CartService) CheckoutCart(
	c context.Context,
	token *jwt.Token,
	csrfToken string,
	param request.CheckoutCart,
) (orderResponse.Order, error) {
	c, span := otel.Tracer.Start(c, "CartService CheckoutCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService CheckoutCart").
		Str(log.KeyCartID, param.CartId.String()).
		Str(log.KeyUserID, param.UserId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := s.FindCartById(c, request.FindCartById{ID: param.CartId, UserId: param.UserId})
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "sending checkout request").Logger()
	logger.Info().Msg("sending checkout request to order service")
	orderJson, err := json.Marshal(cart.Order())
	if err != nil {
		err = fmt.Errorf("failed marshaling checkout request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		inHttp.ORDER_BASE_URL+"/checkout",
		bytes.NewBuffer(orderJson),
	)
	if err != nil {
		err = fmt.Errorf("failed creating checkout request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	req.Header.Add(inHttp.HeaderContentType, inHttp.HeaderValueJson)
	req.Header.Add("Authorization", "Bearer "+token.Raw)
	req.Header.Add(inHttp.HeaderCsrfToken, csrfToken)
	req.Header.Add(inHttp.HeaderRequestID, log.RequestIDFromContext(c))
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending checkout request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	defer resp.Body.Close()
	logger.Info().Msg("sent checkout request to order service")

	logger = logger.With().Str(log.KeyProcess, "decoding checkout response").Logger()
	logger.Info().Msg("decoding checkout response")
	envelope := struct {
		Message string              `json:"message"`
		Data    orderResponse.Order `json:"data"`
	}{}
	err = json.NewDecoder(resp.Body).Decode(&envelope)
	if err != nil {
		err = fmt.Errorf("failed decoding checkout response with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf(
			"order service returned statusCode=%d with message=%s",
			resp.StatusCode, envelope.Message,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, envelope.Data.ID.String()).Logger()
	logger.Info().Msg("decoded checkout response")

	logger = logger.With().Str(log.KeyProcess, "emptying cart").Logger()
	logger.Info().Msg("emptying cart")
	c = logger.WithContext(c)
	_, err = s.EmptyCart(c, request.EmptyCart{CartId: param.CartId, UserId: param.UserId})
	if err != nil {
		err = fmt.Errorf("failed emptying cart after checkout with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	logger.Info().Msg("emptied cart")

	return envelope.Data, nil
}

// mutateCart loads the cart, applies a ledger transformation and writes the
// whole snapshot back in one transaction. The cache entry is refreshed after
// commit; a concurrent mutation on the same cart is last write wins.
func (s CartService) mutateCart(
	c context.Context,
	cartID uuid.UUID,
	userID uuid.UUID,
	transform func(response.Cart) (response.Cart, error),
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService mutateCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService mutateCart").
		Str(log.KeyCartID, cartID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()
	logger.Info().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "finding cart in database").Logger()
	logger.Info().Msg("finding cart in database")
	queries := s.queries.WithTx(tx)
	cart, err := s.loadCart(c, queries, cartID)
	if err != nil {
		err = fmt.Errorf("failed finding cart in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if cart.UserID != userID {
		err = fmt.Errorf(
			"cart=%s does not belong to user=%s with error=%w",
			cartID.String(), userID.String(), inErrors.ErrNotOwner,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart in database")

	logger = logger.With().Str(log.KeyProcess, "transforming cart").Logger()
	logger.Info().Msg("transforming cart")
	transformed, err := transform(cart)
	if err != nil {
		err = fmt.Errorf("failed transforming cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("transformed cart")

	logger = logger.With().Str(log.KeyProcess, "persisting cart").Logger()
	logger.Info().Msg("persisting cart")
	persisted, err := s.persistCart(c, queries, transformed)
	if err != nil {
		err = fmt.Errorf("failed persisting cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("persisted cart")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("committed transaction")

	s.cacheCart(c, persisted)

	return persisted, nil
}

// loadCart reads the cart row and its items through the given queries, which
// may be transaction bound.
func (s CartService) loadCart(
	c context.Context,
	queries *repository.Queries,
	cartID uuid.UUID,
) (response.Cart, error) {
	cartRow, err := queries.FindCartById(c, cartID)
	if err != nil {
		return response.Cart{}, err
	}
	items, err := queries.FindCartItemsByCartId(c, cartID)
	if err != nil {
		return response.Cart{}, err
	}
	return cartRow.Response(items), nil
}

// persistCart replaces the stored line items with the snapshot's and updates
// the running total, then reads the rows back so ids and timestamps are the
// database's. Each line's position records its slice index so a re-read
// returns the items in insertion order.
func (s CartService) persistCart(
	c context.Context,
	queries *repository.Queries,
	cart response.Cart,
) (response.Cart, error) {
	_, err := queries.DeleteCartItemsByCartId(c, cart.ID)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed deleting cart items with error=%w", err)
	}

	args := make([]repository.InsertCartItemParams, len(cart.CartItems))
	for i, item := range cart.CartItems {
		args[i] = repository.InsertCartItemParams{
			CartID:    cart.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     repository.NumericFromDecimal(item.Price),
			Quantity:  item.Quantity,
			Position:  int32(i),
		}
	}
	_, err = queries.InsertCartItems(c, args)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed inserting cart items with error=%w", err)
	}

	cartRow, err := queries.UpdateCartTotalPrice(c, repository.UpdateCartTotalPriceParams{
		TotalPrice: repository.NumericFromDecimal(cart.TotalPrice),
		ID:         cart.ID,
	})
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed updating cart total price with error=%w", err)
	}

	items, err := queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed finding cart items with error=%w", err)
	}
	return cartRow.Response(items), nil
}

// cacheCart refreshes the cart's cache entry. A cache failure is logged and
// swallowed; the database already holds the truth.
func (s CartService) cacheCart(c context.Context, cart response.Cart) {
	cacheKey := fmt.Sprintf(cache.KEY_CARTS, cart.ID.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService cacheCart").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	err := s.cache.JSONSet(c, cacheKey, "$", cart).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting cart to cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("inserted cart to cache")
}

func (s CartService) findProduct(
	c context.Context,
	productID uuid.UUID,
) (productResponse.Product, error) {
	c, span := otel.Tracer.Start(c, "CartService findProduct")
	defer span.End()

	req, err := http.NewRequestWithContext(
		c,
		http.MethodGet,
		inHttp.PRODUCT_BASE_URL+"/"+productID.String(),
		nil,
	)
	if err != nil {
		inOtel.RecordError(err, span)
		return productResponse.Product{}, err
	}
	req.Header.Add(inHttp.HeaderRequestID, log.RequestIDFromContext(c))
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		inOtel.RecordError(err, span)
		return productResponse.Product{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("product service returned statusCode=%d", resp.StatusCode)
		inOtel.RecordError(err, span)
		return productResponse.Product{}, err
	}

	envelope := struct {
		Data productResponse.Product `json:"data"`
	}{}
	err = json.NewDecoder(resp.Body).Decode(&envelope)
	if err != nil {
		inOtel.RecordError(err, span)
		return productResponse.Product{}, err
	}
	return envelope.Data, nil
}
