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
	"github.com/Nothile-Moyo-Git/storefront/product/internal/otel"
	"github.com/Nothile-Moyo-Git/storefront/product/internal/service"
	"github.com/Nothile-Moyo-Git/storefront/product/pkg/request"
)

type ProductController struct {
	service *service.ProductService
}

// AttachProductController registers catalog reads on a public subrouter and
// product mutations on a subrouter guarded by the given middlewares.
func AttachProductController(
	root *mux.Router,
	service *service.ProductService,
	guarded ...mux.MiddlewareFunc,
) {
	controller := ProductController{service: service}

	router := root.PathPrefix("/products").Subrouter()
	router.HandleFunc("", controller.FindProducts).Methods(http.MethodGet)
	router.HandleFunc("/{productId}", controller.FindProductById).Methods(http.MethodGet)

	admin := root.PathPrefix("/products").Subrouter()
	admin.Use(guarded...)
	admin.HandleFunc("", controller.InsertProduct).Methods(http.MethodPost)
	admin.HandleFunc("/{productId}", controller.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/{productId}", controller.RemoveProduct).Methods(http.MethodDelete)
}

func (p ProductController) InsertProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController InsertProduct").
		Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("decoding request body")
	reqBody := request.Product{}
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
		Str(log.KeyProcess, "getting requester id").
		Msg("getting requester id from token")
	ownerID, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting requester id from token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "getting requester id").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "getting requester id").
		Msg("got requester id from token")

	logger.Info().
		Str(log.KeyProcess, "inserting product").
		Msg("inserting product")
	product, err := p.service.InsertProduct(c, reqBody, ownerID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, service.ErrProductExists) {
			statusCode = http.StatusConflict
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "inserting product").
			Msgf("failed inserting product with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "inserting product").
		Msg("inserted product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    fmt.Sprintf("product with name=%s is created", product.Name),
		"data":       product,
	})
}

func (p ProductController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProducts").
		Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "finding products").
		Msg("finding products")
	products, err := p.service.FindProducts(c)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "finding products").
			Msgf("failed finding products with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "finding products").
		Msgf("found %d products", len(products))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found products",
		"data":       products,
	})
}

func (p ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductById").
		Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "parsing productId").
		Msg("parsing productId from path")
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
	logger = logger.With().Str(log.KeyProductID, productID.String()).Logger()
	c = logger.WithContext(c)
	logger.Info().
		Str(log.KeyProcess, "parsing productId").
		Msg("parsed productId from path")

	logger.Info().
		Str(log.KeyProcess, "finding product").
		Msg("finding product by id")
	product, err := p.service.FindProductById(c, productID)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "finding product").
			Msgf("failed finding product by id with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "finding product").
		Msg("found product by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found product",
		"data":       product,
	})
}

func (p ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateProduct").
		Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "parsing productId").
		Msg("parsing productId from path")
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
	logger = logger.With().Str(log.KeyProductID, productID.String()).Logger()
	c = logger.WithContext(c)
	logger.Info().
		Str(log.KeyProcess, "parsing productId").
		Msg("parsed productId from path")

	logger.Info().
		Str(log.KeyProcess, "validating requestbody").
		Msg("decoding request body")
	reqBody := request.Product{}
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
		Str(log.KeyProcess, "getting requester id").
		Msg("getting requester id from token")
	requesterID, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting requester id from token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "getting requester id").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "getting requester id").
		Msg("got requester id from token")

	logger.Info().
		Str(log.KeyProcess, "updating product").
		Msg("updating product")
	product, err := p.service.UpdateProduct(c, productID, reqBody, requesterID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrNotOwner) {
			statusCode = http.StatusForbidden
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "updating product").
			Msgf("failed updating product with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "updating product").
		Msg("updated product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product with id=%s is updated", product.ID.String()),
		"data":       product,
	})
}

func (p ProductController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController RemoveProduct").
		Logger()
	c = logger.WithContext(c)

	logger.Info().
		Str(log.KeyProcess, "parsing productId").
		Msg("parsing productId from path")
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
	logger = logger.With().Str(log.KeyProductID, productID.String()).Logger()
	c = logger.WithContext(c)
	logger.Info().
		Str(log.KeyProcess, "parsing productId").
		Msg("parsed productId from path")

	logger.Info().
		Str(log.KeyProcess, "getting requester id").
		Msg("getting requester id from token")
	requesterID, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting requester id from token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "getting requester id").
			Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "getting requester id").
		Msg("got requester id from token")

	logger.Info().
		Str(log.KeyProcess, "removing product").
		Msg("removing product")
	product, err := p.service.RemoveProduct(c, productID, requesterID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrNotOwner) {
			statusCode = http.StatusForbidden
		}
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "removing product").
			Msgf("failed removing product with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Str(log.KeyProcess, "removing product").
		Msg("removed product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product with id=%s is removed", product.ID.String()),
		"data":       product,
	})
}
