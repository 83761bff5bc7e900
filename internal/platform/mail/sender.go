// Package mail delivers outbound account emails over SMTP.
package mail

// Sender abstracts out-of-band delivery of one-time codes.
type Sender interface {
	// SendOTP delivers a plaintext one-time code to the recipient.
	SendOTP(to, code string) error
}
