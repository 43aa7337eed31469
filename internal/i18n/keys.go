package i18n

// Error message keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyServiceUnavailable = "error.service_unavailable"
	// ErrKeyUnknownProducts takes the comma separated product IDs.
	ErrKeyUnknownProducts = "error.unknown_products"
	// ErrKeyTooManyItems takes the per-request item limit.
	ErrKeyTooManyItems = "error.too_many_items"

	ErrKeyValidationItems     = "error.validation.items"
	ErrKeyValidationCart      = "error.validation.cart"
	ErrKeyValidationContainer = "error.validation.container"
)

// Success message keys.
const (
	SuccessKeyPacked     = "success.packed"
	SuccessKeyFallback   = "success.fallback"
	SuccessKeyFits       = "success.fits"
	SuccessKeyDoesNotFit = "success.does_not_fit"
)
