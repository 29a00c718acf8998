package mail

import "fmt"

// ActivationMessage builds the subject and body for an account activation
// email pointing at the public activation route.
func ActivationMessage(baseURL string, userID int64) (subject, body string) {
	link := fmt.Sprintf("%s/api/activate/%d", baseURL, userID)
	return "Activate your account",
		fmt.Sprintf("Please click the following link to activate your account: %s", link)
}

// PasswordResetMessage builds the subject and body for a password reset
// email carrying the one-time reset token.
func PasswordResetMessage(baseURL, resetToken string) (subject, body string) {
	link := fmt.Sprintf("%s/reset-password/%s", baseURL, resetToken)
	return "Reset your password",
		fmt.Sprintf("Click the following link to reset your password: %s", link)
}

// InquiryResponseMessage notifies an inquirer that their inquiry about a
// property received a response.
func InquiryResponseMessage(propertyName, response string) (subject, body string) {
	return fmt.Sprintf("Response to your inquiry about %s", propertyName),
		fmt.Sprintf("The owner responded to your inquiry:\n\n%s", response)
}
