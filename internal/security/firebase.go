package security

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier validates Firebase Auth ID tokens for deployments that
// keep their user pool in Firebase instead of the local users table. Verified
// identities carry no role claim and are treated as operators.
type FirebaseVerifier struct {
	client *firebaseauth.Client
}

func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify checks the ID token and maps it onto the same claims shape the local
// token manager produces.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*UserClaims, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims := &UserClaims{
		UserID: token.UID,
		Type:   TokenTypeAccess,
	}
	if email, ok := token.Claims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := token.Claims["role"].(string); ok {
		claims.Role = role
	}
	return claims, nil
}
