package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gerenciador-tarefas/auth"
	"gerenciador-tarefas/utilities"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware verifica a credencial Bearer e coloca a identidade do
// usuário no contexto da requisição. Sem token: 401; token inválido ou
// expirado: 401.
func (a *App) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utilities.LogError(auth.ErrMissingToken, "Autenticação falhou")
			respondMessage(w, http.StatusUnauthorized, "Acesso negado. Token requerido")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := a.Tokens.Verify(tokenString)
		if err != nil {
			utilities.LogError(err, "Token inválido")
			respondMessage(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// identityFrom recupera a identidade colocada no contexto pelo AuthMiddleware.
func identityFrom(r *http.Request) (*auth.Claims, error) {
	claims, ok := r.Context().Value(identityKey).(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("identidade não encontrada no contexto")
	}
	return claims, nil
}

// LoggingMiddleware registra informações sobre cada requisição HTTP
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		utilities.LogRequest(r.Method, r.URL.Path, r.RemoteAddr, rw.statusCode, duration)
	})
}

// responseWriter é um wrapper para http.ResponseWriter que captura o status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
