package store

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a file store.
type Option func(*config)

type config struct {
	log logrus.FieldLogger
}

// WithLogger sets the logger used to report skipped files.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) { c.log = log }
}

func newConfig(opts []Option) config {
	l := logrus.New()
	l.SetOutput(io.Discard)
	c := config{log: l}
	for _, o := range opts {
		o(&c)
	}
	return c
}
