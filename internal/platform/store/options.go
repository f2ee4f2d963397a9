package store

import "artisantrend/internal/platform/logger"

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger handed to backend clients
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) error {
		if log != nil {
			s.Log = log
		}
		return nil
	}
}
