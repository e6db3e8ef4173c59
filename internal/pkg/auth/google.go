package auth

import (
	"fmt"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"

	"github.com/eren/coursemap/internal/pkg/apperrors"
)

// GoogleIdentity is the subset of Google ID-token claims the planner needs.
// Sub is the stable account identifier; everything downstream treats it as an
// opaque authenticated user id.
type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

// GoogleVerifier verifies Google ID tokens. An interface so that services can
// be tested without real tokens.
type GoogleVerifier interface {
	Verify(idToken string) (*GoogleIdentity, error)
}

// GoogleTokenVerifier verifies ID tokens against Google's published keys for
// a configured OAuth client id.
type GoogleTokenVerifier struct {
	clientID string
	verifier googleAuthIDTokenVerifier.Verifier
}

// NewGoogleTokenVerifier creates a verifier bound to one OAuth client id.
func NewGoogleTokenVerifier(clientID string) *GoogleTokenVerifier {
	return &GoogleTokenVerifier{clientID: clientID}
}

// Verify checks signature, audience and expiry, then decodes the claims.
func (v *GoogleTokenVerifier) Verify(idToken string) (*GoogleIdentity, error) {
	if err := v.verifier.VerifyIDToken(idToken, []string{v.clientID}); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGoogleTokenInvalid, err)
	}

	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode claims: %v", apperrors.ErrGoogleTokenInvalid, err)
	}

	return &GoogleIdentity{
		Sub:   claims.Sub,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
