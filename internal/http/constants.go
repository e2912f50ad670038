package http

const (
	HeaderContentType = "Content-Type"
	HeaderValueJson   = "application/json"
	HeaderRequestID   = "X-Request-Id"
	HeaderCsrfToken   = "X-Csrf-Token"
)

const (
	USER_BASE_URL    = "http://user-service:8080/users"
	PRODUCT_BASE_URL = "http://product-service:8080/products"
	CART_BASE_URL    = "http://cart-service:8080/carts"
	ORDER_BASE_URL   = "http://order-service:8080/orders"
)
