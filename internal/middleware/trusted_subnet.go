// Package middleware содержит HTTP middleware: аутентификацию, логирование,
// сжатие ответов и проверку доверенной подсети для служебных маршрутов.
package middleware

import (
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/apierror"
	"github.com/tempizhere/linkvault/internal/response"
)

// TrustedSubnetMiddleware пропускает только запросы, у которых X-Real-IP входит
// в подсеть trustedSubnet (CIDR). Пустая или некорректная подсеть закрывает доступ.
func TrustedSubnetMiddleware(trustedSubnet string, rw *response.Writer, logger *zap.Logger) func(http.Handler) http.Handler {
	var network *net.IPNet
	if trustedSubnet != "" {
		_, parsed, err := net.ParseCIDR(trustedSubnet)
		if err != nil {
			logger.Error("Invalid trusted subnet CIDR",
				zap.String("trusted_subnet", trustedSubnet),
				zap.Error(err))
		} else {
			network = parsed
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deny := func(reason string, fields ...zap.Field) {
				fields = append(fields,
					zap.String("method", r.Method),
					zap.String("uri", r.RequestURI),
					zap.String("remote_addr", r.RemoteAddr))
				logger.Warn("Access denied: "+reason, fields...)
				rw.Error(w, apierror.AccessDenied("Access denied"))
			}

			if network == nil {
				deny("trusted subnet is not configured")
				return
			}

			clientIP := r.Header.Get("X-Real-IP")
			if clientIP == "" {
				deny("X-Real-IP header is missing")
				return
			}

			ip := net.ParseIP(clientIP)
			if ip == nil {
				deny("invalid IP address in X-Real-IP header", zap.String("client_ip", clientIP))
				return
			}

			if !network.Contains(ip) {
				deny("IP not in trusted subnet",
					zap.String("client_ip", clientIP),
					zap.String("trusted_subnet", trustedSubnet))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
