package cache

const (
	KEY_CARTS = "carts:%s"
)
