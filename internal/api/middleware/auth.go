// Package middleware общие HTTP middleware: аутентификация тенанта и метрики.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
)

const msgMissingTenantID = "отсутствует или некорректен заголовок X-Tenant-ID"

// HeaderTenantID заголовок с ID тенанта для защищённых маршрутов
const HeaderTenantID = "X-Tenant-ID"

type contextKey string

const tenantIDKey contextKey = "tenantID"

// Auth извлекает X-Tenant-ID из заголовка и кладет его в контекст.
// Запросы без корректного заголовка отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantIDStr := r.Header.Get(HeaderTenantID)
		if tenantIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID достает ID тенанта из контекста запроса
func GetTenantID(ctx context.Context) (int64, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(int64)
	return tenantID, ok
}
