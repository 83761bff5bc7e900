package dto

// LoginReq represents the request body for the /login endpoint. The endpoint
// is dual-mode: exactly which of Password and OTP is present selects the
// branch, resolved once at the boundary by Variant.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

// LoginVariant is the explicit request variant of a dual-mode login body.
type LoginVariant int

const (
	// LoginInvalid marks a body carrying both a password and a code.
	LoginInvalid LoginVariant = iota

	// LoginPassword authenticates with the password branch.
	LoginPassword

	// LoginOTPRequest asks for a login code to be emailed.
	LoginOTPRequest

	// LoginOTP authenticates with a previously requested code.
	LoginOTP
)

// Variant resolves the request body into its explicit variant.
func (r *LoginReq) Variant() LoginVariant {
	switch {
	case r.Password != "" && r.OTP != "":
		return LoginInvalid
	case r.Password != "":
		return LoginPassword
	case r.OTP != "":
		return LoginOTP
	default:
		return LoginOTPRequest
	}
}
