package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"jobeditor/internal/domain"
)

// TokenClaims are the HS256 claims issued to employers. Sub is the employer id.
type TokenClaims struct {
	Sub      string `json:"sub"`
	Role     string `json:"role,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Exp      int64  `json:"exp"`
	Issuer   string `json:"iss,omitempty"`
	Audience string `json:"aud,omitempty"`
}

var (
	errMalformedToken = errors.New("invalid token")
	errBadSignature   = errors.New("invalid signature")
	errExpiredToken   = errors.New("token expired")
)

type authKey struct{}

type authInfo struct {
	claims TokenClaims
	token  string
}

func SignJWT(secret string, claims TokenClaims) (string, error) {
	headerJSON, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	data := base64.RawURLEncoding.EncodeToString(headerJSON) + "." + base64.RawURLEncoding.EncodeToString(payloadJSON)
	return data + "." + hmacSign(secret, data), nil
}

func hmacSign(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func VerifyJWT(secret, token string) (*TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errMalformedToken
	}
	expected := hmacSign(secret, parts[0]+"."+parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, errBadSignature
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errMalformedToken
	}
	var claims TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, errMalformedToken
	}
	if claims.Exp != 0 && time.Now().Unix() > claims.Exp {
		return nil, errExpiredToken
	}
	if strings.TrimSpace(claims.Sub) == "" {
		return nil, errMalformedToken
	}
	return &claims, nil
}

// AuthJWT rejects requests without a valid bearer token and stores the
// employer identity in the request context.
func AuthJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing authorization")
				return
			}
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid authorization")
				return
			}
			token = strings.TrimSpace(token)
			claims, err := VerifyJWT(secret, token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), authKey{}, authInfo{claims: *claims, token: token})
			if claims.Locale != "" {
				ctx = context.WithValue(ctx, LocaleKey, normalizeLocale(claims.Locale))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleAdmin may change process-wide settings.
const RoleAdmin = "admin"

// RequireRole refuses requests whose token does not carry role. It must run
// after AuthJWT.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, ok := r.Context().Value(authKey{}).(authInfo)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing authorization")
				return
			}
			if v.claims.Role != role {
				writeError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EmployerIDFromContext returns the authenticated employer, or "".
func EmployerIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(authKey{}).(authInfo); ok {
		return v.claims.Sub
	}
	return ""
}

// ContextWithCredential attaches a credential as AuthJWT would.
func ContextWithCredential(ctx context.Context, cred domain.Credential) context.Context {
	if strings.TrimSpace(cred.EmployerID) == "" {
		return ctx
	}
	return context.WithValue(ctx, authKey{}, authInfo{claims: TokenClaims{Sub: cred.EmployerID}, token: cred.Token})
}

// RequestCredentials implements domain.SessionSource from the request context.
// Expiry is checked again so a token that lapsed mid-session is refused.
type RequestCredentials struct{}

func (RequestCredentials) Credential(ctx context.Context) (domain.Credential, error) {
	v, ok := ctx.Value(authKey{}).(authInfo)
	if !ok || v.claims.Sub == "" {
		return domain.Credential{}, domain.ErrUnauthorized
	}
	if v.claims.Exp != 0 && time.Now().Unix() > v.claims.Exp {
		return domain.Credential{}, domain.ErrUnauthorized
	}
	return domain.Credential{Token: v.token, EmployerID: v.claims.Sub}, nil
}

var _ domain.SessionSource = RequestCredentials{}
