// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package protocol

import (
	"runtime"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// Option configures a Prover or Verifier.
type Option func(*config)

type config struct {
	log     zerolog.Logger
	logSet  bool
	workers int
}

// WithLogger replaces the default logger (gnark's shared zerolog instance).
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.log = l
		c.logSet = true
	}
}

// WithWorkers bounds the number of rows or pairings computed concurrently.
// Values below 1 mean sequential.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

func newConfig(component string, opts []Option) config {
	c := config{workers: runtime.GOMAXPROCS(0)}
	for _, o := range opts {
		o(&c)
	}
	if !c.logSet {
		c.log = logger.Logger().With().Logger()
	}
	c.log = c.log.With().Str("component", component).Logger()
	if c.workers < 1 {
		c.workers = 1
	}
	return c
}
