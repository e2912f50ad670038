package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Nothile-Moyo-Git/storefront/internal/constants"
)

var Tracer = otel.Tracer(constants.APP_CART_SERVICE)
