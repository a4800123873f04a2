package auth

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// ErrInvalidGoogleToken is returned when a Google ID token fails
// verification against the configured audience.
var ErrInvalidGoogleToken = errors.New("invalid google token")

// GoogleVerifier verifies Google ID tokens and extracts the verified
// identity. Abstracted as an interface so the service can be tested
// without calling Google.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, tokenID string) (email, name string, err error)
}

// googleVerifier validates ID tokens against Google's public keys using
// the configured OAuth client ID as the audience.
type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a GoogleVerifier for the given client ID.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) VerifyIDToken(ctx context.Context, tokenID string) (string, string, error) {
	payload, err := idtoken.Validate(ctx, tokenID, v.clientID)
	if err != nil {
		return "", "", ErrInvalidGoogleToken
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return "", "", ErrInvalidGoogleToken
	}

	return email, name, nil
}
