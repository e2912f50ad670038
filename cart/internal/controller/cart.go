package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/Nothile-Moyo-Git/storefront/cart/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/cart/internal/service"
	"github.com/Nothile-Moyo-Git/storefront/cart/pkg/request"
	"github.com/Nothile-Moyo-Git/storefront/internal/common"
	inErrors "github.com/Nothile-Moyo-Git/storefront/internal/errors"
	inHttp "github.com/Nothile-Moyo-Git/storefront/internal/http"
	"github.com/Nothile-Moyo-Git/storefront/internal/log"
	inOtel "github.com/Nothile-Moyo-Git/storefront/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/internal/validation"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(
	root *mux.Router,
	service *service.CartService,
	guarded ...mux.MiddlewareFunc,
) {
	router := root.PathPrefix("/carts").Subrouter()
	router.Use(guarded...)

	controller := CartController{service: service}
	router.HandleFunc("", controller.InsertCart).Methods(http.MethodPost)
	router.HandleFunc("/{cartId}", controller.FindCartById).Methods(http.MethodGet)
	router.HandleFunc("/{cartId}/items", controller.AddCartItem).Methods(http.MethodPost)
	router.HandleFunc("/{cartId}/items/{productId}", controller.RemoveCartItem).
		Methods(http.MethodDelete)
	router.HandleFunc("/{cartId}/items", controller.EmptyCart).Methods(http.MethodDelete)
	router.HandleFunc("/{cartId}/checkout", controller.CheckoutCart).Methods(http.MethodPost)
}

func (ct CartController) InsertCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController InsertCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController InsertCart").
		Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("decoding request body")
	reqBody := request.Cart{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "validating requestbody").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()
	c = logger.WithContext(c)
	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("decoded request body")

	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("validating request body")
	validate := validation.New()
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "validating requestbody").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("validated request body")

	userID, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "getting userId").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger.Info().
		Str(log.KeyProcess, "inserting cart").
		Msg("inserting cart")
	cart, err := ct.service.InsertCart(c, reqBody, userID)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "inserting cart").
			Msgf("failed inserting cart with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "inserting cart").
		Msg("inserted cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    fmt.Sprintf("cart with id=%s is created", cart.ID.String()),
		"data":       cart,
	})
}

func (ct CartController) FindCartById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCartById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCartById").
		Logger()
	c = logger.WithContext(c)

	cartID, userID, ok := ct.cartAndUserId(c, w, r, span)
	if !ok {
		return
	}
	logger = logger.With().Str(log.KeyCartID, cartID.String()).Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "finding cart").
		Msg("finding cart by id")
	cart, err := ct.service.FindCartById(c, request.FindCartById{ID: cartID, UserId: userID})
	if err != nil {
		statusCode := http.StatusNotFound
		if errors.Is(err, inErrors.ErrNotOwner) {
			statusCode = http.StatusForbidden
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "finding cart").
			Msgf("failed finding cart by id with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "finding cart").
		Msg("found cart by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found cart",
		"data":       cart,
	})
}

func (ct CartController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddCartItem").
		Logger()
	c = logger.WithContext(c)

	cartID, userID, ok := ct.cartAndUserId(c, w, r, span)
	if !ok {
		return
	}
	logger = logger.With().Str(log.KeyCartID, cartID.String()).Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("decoding request body")
	reqBody := request.AddCartItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "validating requestbody").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()
	c = logger.WithContext(c)
	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("decoded request body")

	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("validating request body")
	validate := validation.New()
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "validating requestbody").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("validated request body")

	logger.Info().
		Str(log.KeyProcess, "adding cart item").
		Msg("adding cart item")
	cart, err := ct.service.AddCartItem(c, reqBody, cartID, userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrNotOwner) {
			statusCode = http.StatusForbidden
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "adding cart item").
			Msgf("failed adding cart item with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "adding cart item").
		Msg("added cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("added product=%s to cart", reqBody.ProductId.String()),
		"data":       cart,
	})
}

func (ct CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCartItem").
		Logger()
	c = logger.WithContext(c)

	cartID, userID, ok := ct.cartAndUserId(c, w, r, span)
	if !ok {
		return
	}

	pathValues := mux.Vars(r)
	productID, err := uuid.Parse(pathValues["productId"])
	if err != nil {
		err = fmt.Errorf("failed parsing productId=%s with error=%w", pathValues["productId"], err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "parsing productId").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().
		Str(log.KeyCartID, cartID.String()).
		Str(log.KeyProductID, productID.String()).
		Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "removing cart item").
		Msg("removing cart item")
	cart, err := ct.service.RemoveCartItem(c, request.RemoveCartItem{
		CartId:    cartID,
		ProductId: productID,
		UserId:    userID,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrNotOwner) {
			statusCode = http.StatusForbidden
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "removing cart item").
			Msgf("failed removing cart item with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "removing cart item").
		Msg("removed cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("removed product=%s from cart", productID.String()),
		"data":       cart,
	})
}

func (ct CartController) EmptyCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController EmptyCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController EmptyCart").
		Logger()
	c = logger.WithContext(c)

	cartID, userID, ok := ct.cartAndUserId(c, w, r, span)
	if !ok {
		return
	}
	logger = logger.With().Str(log.KeyCartID, cartID.String()).Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "emptying cart").
		Msg("emptying cart")
	cart, err := ct.service.EmptyCart(c, request.EmptyCart{CartId: cartID, UserId: userID})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrNotOwner) {
			statusCode = http.StatusForbidden
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "emptying cart").
			Msgf("failed emptying cart with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "emptying cart").
		Msg("emptied cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("cart with id=%s is emptied", cartID.String()),
		"data":       cart,
	})
}

func (ct CartController) CheckoutCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController CheckoutCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController CheckoutCart").
		Logger()
	c = logger.WithContext(c)

	cartID, userID, ok := ct.cartAndUserId(c, w, r, span)
	if !ok {
		return
	}
	logger = logger.With().Str(log.KeyCartID, cartID.String()).Logger()
	c = logger.WithContext(c)

	token := common.JwtTokenFromContext(c)
	if token == nil {
		err := fmt.Errorf("failed getting token from context with error=%w", inErrors.ErrEmptyAuth)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "getting token").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger.Info().
		Str(log.KeyProcess, "checking out cart").
		Msg("checking out cart")
	csrfToken := r.Header.Get(inHttp.HeaderCsrfToken)
	order, err := ct.service.CheckoutCart(c, token, csrfToken, request.CheckoutCart{
		CartId: cartID,
		UserId: userID,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrNotOwner) {
			statusCode = http.StatusForbidden
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "checking out cart").
			Msgf("failed checking out cart with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "checking out cart").
		Str(log.KeyOrderID, order.ID.String()).
		Msg("checked out cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("cart with id=%s is checked out", cartID.String()),
		"data":       order,
	})
}

// cartAndUserId resolves the cartId path value and the requester from the
// token, writing the failure response itself when either is missing.
func (ct CartController) cartAndUserId(
	c context.Context,
	w http.ResponseWriter,
	r *http.Request,
	span trace.Span,
) (uuid.UUID, uuid.UUID, bool) {
	logger := zerolog.Ctx(c)

	pathValues := mux.Vars(r)
	cartID, err := uuid.Parse(pathValues["cartId"])
	if err != nil {
		err = fmt.Errorf("failed parsing cartId=%s with error=%w", pathValues["cartId"], err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "parsing cartId").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return uuid.Nil, uuid.Nil, false
	}

	userID, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "getting userId").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return uuid.Nil, uuid.Nil, false
	}

	return cartID, userID, true
}
