package constants

const (
	APP_USER_SERVICE    = "user-service"
	APP_PRODUCT_SERVICE = "product-service"
	APP_ORDER_SERVICE   = "order-service"
	APP_CART_SERVICE    = "cart-service"
	APP_MAIN_STOREFRONT = "storefront"
	AUDIENCE_USER       = "audience-user"
)
