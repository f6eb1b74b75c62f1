package response

// Business status codes.
const (
	CodeSuccess = 0
	CodeError   = 1

	// user module 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005

	// product module 200xx
	ErrProductNotFound = 20001

	// order module 300xx
	ErrOrderNotFound      = 30001
	ErrOrderInvalidState  = 30002
	ErrOrderEmptyCart     = 30003
	ErrOrderBadTransition = 30004

	// payment module 400xx
	ErrPaymentInvalidPhone  = 40001
	ErrPaymentInvalidAmount = 40002
	ErrPaymentInitFailed    = 40003
	ErrPaymentNotFound      = 40004

	// coupon module 450xx
	ErrCouponNotFound   = 45001
	ErrCouponOutOfStock = 45002
	ErrCouponClaimed    = 45003
	ErrCouponNotOwned   = 45004

	// system errors 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
