package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerConfig defines the config for the request logger middleware.
type LoggerConfig struct {
	Skipper         echomiddleware.Skipper
	Level           zerolog.Level
	LogRequestBody  bool
	LogResponseBody bool
}

// DefaultLoggerConfig is the default request logger middleware config.
var DefaultLoggerConfig = LoggerConfig{
	Skipper: echomiddleware.DefaultSkipper,
	Level:   zerolog.DebugLevel,
}

// Logger returns a middleware that logs requests and responses and injects a
// request-scoped zerolog instance into the request context.
func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(DefaultLoggerConfig)
}

// LoggerWithConfig returns a request logger middleware with config.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultLoggerConfig.Skipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			l := log.With().
				Str("id", id).
				Str("remote_ip", c.RealIP()).
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Logger()

			le := l.WithLevel(config.Level).
				Str("host", req.Host).
				Str("user_agent", req.UserAgent()).
				Int64("bytes_in", req.ContentLength)

			if config.LogRequestBody && req.Body != nil {
				body, err := io.ReadAll(req.Body)
				if err != nil {
					return err
				}
				req.Body = io.NopCloser(bytes.NewReader(body))
				le = le.Bytes("req_body", body)
			}

			le.Msg("Request received")

			// attach the request-scoped logger for downstream handlers
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			var resBody *bytes.Buffer
			if config.LogResponseBody {
				resBody = new(bytes.Buffer)
				mw := io.MultiWriter(res.Writer, resBody)
				res.Writer = &bodyDumpResponseWriter{Writer: mw, ResponseWriter: res.Writer}
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			stop := time.Now()

			lr := l.WithLevel(config.Level).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("latency", stop.Sub(start))

			if config.LogResponseBody {
				lr = lr.Bytes("res_body", resBody.Bytes())
			}

			lr.Msg("Response sent")

			return err
		}
	}
}

type bodyDumpResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
