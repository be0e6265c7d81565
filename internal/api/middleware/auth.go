package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
)

// Роли персонала ресторана из claim "role"
const (
	RoleStaff   = "staff"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
	msgForbidden    = "доступ запрещен"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
	requestIDKey
)

// Claims токен выпускает внешний сервис идентификации (HS256)
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth проверяет Bearer токен и кладёт в контекст ID пользователя и роль
func JWTAuth(secret string, log Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				log.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := parseToken(strings.TrimPrefix(header, "Bearer "), key)
			if err != nil {
				log.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || userID <= 0 {
				log.Warn("%s %s - Invalid subject %q", r.Method, r.URL.Path, claims.Subject)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только перечисленные роли. Ставится после JWTAuth
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := GetRole(r.Context())
			if _, ok := allowed[role]; !ok {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID ID сотрудника из токена
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetRole роль сотрудника из токена
func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

func parseToken(raw string, key []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}
