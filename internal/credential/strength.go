package credential

import (
	"unicode/utf8"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

type Strength struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
	Entropy  float64  `json:"entropy"`
}

// CheckPasswordStrength scores one point per met criterion and lists the unmet ones.
func CheckPasswordStrength(password string) Strength {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	s := Strength{Feedback: []string{}, Entropy: passwordvalidator.GetEntropy(password)}
	criteria := []struct {
		met      bool
		feedback string
	}{
		{utf8.RuneCountInString(password) >= 8, "At least 8 characters"},
		{lower, "Include lowercase letters"},
		{upper, "Include uppercase letters"},
		{digit, "Include numbers"},
		{special, "Include special characters"},
	}
	for _, c := range criteria {
		if c.met {
			s.Score++
		} else {
			s.Feedback = append(s.Feedback, c.feedback)
		}
	}
	return s
}
