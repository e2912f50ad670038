package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Nothile-Moyo-Git/storefront/internal/common"
	inErrors "github.com/Nothile-Moyo-Git/storefront/internal/errors"
	inHttp "github.com/Nothile-Moyo-Git/storefront/internal/http"
	"github.com/Nothile-Moyo-Git/storefront/internal/log"
	inOtel "github.com/Nothile-Moyo-Git/storefront/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/internal/validation"
	"github.com/Nothile-Moyo-Git/storefront/order/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/order/internal/service"
	"github.com/Nothile-Moyo-Git/storefront/order/pkg/request"
)

type OrderController struct {
	service *service.OrderService
}

func AttachOrderController(
	root *mux.Router,
	service *service.OrderService,
	guarded ...mux.MiddlewareFunc,
) {
	router := root.PathPrefix("/orders").Subrouter()
	router.Use(guarded...)

	controller := OrderController{service: service}
	router.HandleFunc("/checkout", controller.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("", controller.FindOrders).Methods(http.MethodGet)
	router.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
}

func (o OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController CreateOrder").
		Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("decoding request body")
	reqBody := request.CreateOrder{}
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
		Str(log.KeyProcess, "creating order").
		Msg("creating order")
	order, err := o.service.CreateOrder(c, reqBody, userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrUserNotFound) {
			statusCode = http.StatusBadRequest
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "creating order").
			Msgf("failed creating order with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "creating order").
		Str(log.KeyOrderID, order.ID.String()).
		Msg("created order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    fmt.Sprintf("order with id=%s is created", order.ID.String()),
		"data":       order,
	})
}

func (o OrderController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrders").
		Logger()
	c = logger.WithContext(c)

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
	logger = logger.With().Str(log.KeyUserID, userID.String()).Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "finding orders").
		Msg("finding orders")
	orders, err := o.service.FindOrders(c, request.FindOrders{UserID: userID})
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "finding orders").
			Msgf("failed finding orders with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "finding orders").
		Msgf("found %d orders", len(orders))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found orders",
		"data":       orders,
	})
}

func (o OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Logger()
	c = logger.WithContext(c)

	pathValues := mux.Vars(r)
	orderID, err := uuid.Parse(pathValues["orderId"])
	if err != nil {
		err = fmt.Errorf("failed parsing orderId=%s with error=%w", pathValues["orderId"], err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "parsing orderId").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyOrderID, orderID.String()).Logger()
	c = logger.WithContext(c)

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
		Str(log.KeyProcess, "finding order").
		Msg("finding order by id")
	order, err := o.service.FindOrderById(c, request.FindOrderById{
		OrderID: orderID,
		UserID:  userID,
	})
	if err != nil {
		statusCode := http.StatusNotFound
		if errors.Is(err, inErrors.ErrNotOwner) {
			statusCode = http.StatusForbidden
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "finding order").
			Msgf("failed finding order by id with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "finding order").
		Msg("found order by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found order",
		"data":       order,
	})
}
