package utility

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrFirebaseNotInitialized trả về khi chưa cấu hình Firebase
var ErrFirebaseNotInitialized = errors.New("firebase auth not initialized")

// SessionClaims là thông tin tối thiểu lấy ra từ một session đã xác thực
type SessionClaims struct {
	UID   string
	Email string
	Name  string
}

// FirebaseVerifier xác thực session cookie hoặc ID token bằng Firebase Admin SDK
type FirebaseVerifier struct {
	client *auth.Client
}

// InitFirebase khởi tạo Firebase Admin SDK và trả về verifier
func InitFirebase(ctx context.Context, projectID, credentialsPath string) (*FirebaseVerifier, error) {
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify thử session cookie trước, sau đó tới ID token (header Authorization: Bearer)
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*SessionClaims, error) {
	if v == nil || v.client == nil {
		return nil, ErrFirebaseNotInitialized
	}

	t, err := v.client.VerifySessionCookie(ctx, token)
	if err != nil {
		var idErr error
		t, idErr = v.client.VerifyIDToken(ctx, token)
		if idErr != nil {
			return nil, fmt.Errorf("failed to verify session: %w", err)
		}
	}

	claims := &SessionClaims{UID: t.UID}
	if email, ok := t.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := t.Claims["name"].(string); ok {
		claims.Name = name
	}
	return claims, nil
}
