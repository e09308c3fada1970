package logx

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// anonymizeIP keeps the network part of a client address: the first three IPv4 octets
// or the first 64 bits of an IPv6 address.
func anonymizeIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	ip := net.ParseIP(addr)
	switch {
	case ip == nil:
		return "unknown_ip"
	case ip.IsLoopback():
		return "127.0.0.1"
	case ip.To4() != nil:
		v4 := ip.To4()
		return net.IPv4(v4[0], v4[1], v4[2], 0).String()
	}

	prefix := make(net.IP, net.IPv6len)
	copy(prefix, ip.To16()[:8])
	return prefix.String()
}

// RequestLogger puts a request-scoped logger in the request context and writes one
// access line per request, at Warn for 4xx and Error for 5xx responses.
// It must run after middleware.RequestID.
func RequestLogger() func(next http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, latency time.Duration) {
		logger := hlog.FromRequest(r)

		e := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			e = logger.Error()
		case status >= http.StatusBadRequest:
			e = logger.Warn()
		}

		e.Int("status", status).
			Int("bytes", size).
			Dur("latency", latency).
			Msg("Request completed")
	})

	return func(next http.Handler) http.Handler {
		return hlog.NewHandler(Component("http"))(requestFields(access(next)))
	}
}

func requestFields(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("remote_ip", anonymizeIP(r.RemoteAddr)).
				Str("request_method", r.Method).
				Str("request_uri", r.RequestURI).
				Str("user", r.Header.Get("User"))
		})
		next.ServeHTTP(w, r)
	})
}
