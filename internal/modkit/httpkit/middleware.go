package httpkit

import (
	"net/http"
	"time"

	"artisantrend/internal/platform/config"
	"artisantrend/internal/platform/net/middleware"
)

// CommonStack is the API-wide middleware slice, tuned by CORE_API_*
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	stack := middleware.Stack(
		cfg.MayDuration("TIMEOUT", 30*time.Second),
		cfg.MayDuration("SLOW", 750*time.Millisecond),
	)
	return append(stack, middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
		MaxAge:         cfg.MayInt("CORS_MAX_AGE", 300),
	}))
}
