package dto

// ForgotPasswordReq represents the request for /forgot-password.
type ForgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPReq represents the request for /verify-otp.
type VerifyOTPReq struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// ResetPasswordReq represents the request for /reset-password. AccessToken
// carries the reset token obtained from /verify-otp.
type ResetPasswordReq struct {
	AccessToken string `json:"access_token" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required"`
}
