package service

import "fmt"

// Outbound email composition. Links point at the browser client, which owns
// the pages that finish each flow by calling back into the API.

const (
	verificationSubject = "Welcome to Tradeflix! Please Verify Your Email"
	resetSubject        = "Tradeflix Password Reset Request"

	linkStyle = "padding: 10px 20px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px;"
)

// verificationEmail renders the body of the account-verification email.
func verificationEmail(clientURL, name, token string) string {
	verificationURL := fmt.Sprintf("%s/email-verification?token=%s", clientURL, token)
	return fmt.Sprintf(`
      <h1>Welcome, %s!</h1>
      <p>Thanks for signing up for Tradeflix. Please verify your email address by clicking the link below:</p>
      <a href="%s" style="%s">Verify Email</a>
      <p>This link will expire in 1 day.</p>
      <p>If you did not sign up for this account, you can ignore this email.</p>
    `, name, verificationURL, linkStyle)
}

// passwordResetEmail renders the body of the password-reset email.
func passwordResetEmail(clientURL, name, token string) string {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", clientURL, token)
	return fmt.Sprintf(`
      <h1>Hi, %s</h1>
      <p>Someone (hopefully you) requested a password reset for your Tradeflix account.</p>
      <p>Click the link below to reset your password:</p>
      <a href="%s" style="%s">Reset Password</a>
      <p>This link will expire in 1 hour.</p>
      <p>If you did not request this, please ignore this email.</p>
    `, name, resetURL, linkStyle)
}
