package model

// RecaptchaResponse is the body returned by the siteverify endpoint.
type RecaptchaResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// TestEmailRequest asks the admin endpoint to send sample emails.
type TestEmailRequest struct {
	Email string `json:"email"`
	Type  string `json:"type"` // one email kind, or "all"
}

// TestEmailResult reports the outcome for one email kind.
type TestEmailResult struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PasswordStrengthRequest is the body of the password strength check.
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}
