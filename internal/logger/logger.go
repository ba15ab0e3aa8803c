// Package logger provides structured logging using zerolog.
package logger

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const roundIDKey contextKey = "round_id"

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init initializes the global logger with proper configuration based on environment.
func Init() {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	const callerWidth = 30
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: milliTimeFormat,
		NoColor:    !isDevelopmentMode(),
	}

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		f, ferr := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr == nil {
			output = io.MultiWriter(output, f)
		}
	}

	log.Logger = log.Output(output).With().Caller().Logger()

	log.Info().
		Str("level", level.String()).
		Bool("dev", isDevelopmentMode()).
		Msg("logger initialized")
}

func isDevelopmentMode() bool {
	return os.Getenv("DEV") == "true" ||
		os.Getenv("DEV_MODE") == "true" ||
		os.Getenv("DEVELOPMENT") == "true"
}

// Get returns the global logger instance.
func Get() zerolog.Logger {
	return log.Logger
}

// NewRoundID generates a cryptographically secure random 8-character
// alphanumeric identifier for a round, used to correlate every bid, trick,
// and scoring log line belonging to the same deal.
func NewRoundID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return fmt.Sprintf("rnd%05d", time.Now().UnixNano()%100000)
	}

	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b)
}

// WithRoundID returns a new context carrying the given round ID.
func WithRoundID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, roundIDKey, id)
}

// RoundIDFromContext extracts the round ID from context, or empty string.
func RoundIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(roundIDKey).(string)
	return id
}

// ForRound returns a logger enriched with the round ID from context.
func ForRound(ctx context.Context) zerolog.Logger {
	id := RoundIDFromContext(ctx)
	if id == "" {
		return log.Logger
	}
	return log.Logger.With().Str("roundId", id).Logger()
}

// LogBid logs a submitted bid at debug level, the engine-side equivalent of
// the request/response body logging.
func LogBid(logger zerolog.Logger, seat fmt.Stringer, action fmt.Stringer) {
	logger.Debug().Str("seat", seat.String()).Str("action", action.String()).Msg("bid submitted")
}

// LogScore logs a round's final result at info level.
func LogScore(logger zerolog.Logger, winner fmt.Stringer, usGP, themGP int, reason string) {
	logger.Info().Str("winner", winner.String()).Int("usGP", usGP).Int("themGP", themGP).Str("reason", reason).Msg("round scored")
}
