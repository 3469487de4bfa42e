// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package actr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var ErrUnknownRoute = errors.New("unknown route")

const DefaultTimeout = 30 * time.Second

// Route maps a route key to the actor type that serves it.
type Route struct {
	Key    string
	Target ActrType
}

type RouterOption interface {
	apply(*routerOptions)
}

type routerOption func(*routerOptions)

func (f routerOption) apply(opts *routerOptions) { f(opts) }

type routerOptions struct {
	timeout     time.Duration
	payloadType PayloadType
	logger      zerolog.Logger
	metrics     *Metrics
}

func WithTimeout(timeout time.Duration) RouterOption {
	return routerOption(func(opts *routerOptions) {
		opts.timeout = timeout
	})
}

func WithPayloadType(payloadType PayloadType) RouterOption {
	return routerOption(func(opts *routerOptions) {
		opts.payloadType = payloadType
	})
}

func WithLogger(logger zerolog.Logger) RouterOption {
	return routerOption(func(opts *routerOptions) {
		opts.logger = logger
	})
}

func WithMetrics(metrics *Metrics) RouterOption {
	return routerOption(func(opts *routerOptions) {
		opts.metrics = metrics
	})
}

// Router forwards raw request payloads to the actor type registered for
// their route key. A Router is immutable and safe for concurrent use.
type Router struct {
	routes  []Route
	targets map[string]ActrType
	opts    routerOptions
}

// NewRouter panics if two routes share a key.
func NewRouter(routes []Route, opts ...RouterOption) *Router {
	r := &Router{
		routes:  make([]Route, len(routes)),
		targets: make(map[string]ActrType, len(routes)),
		opts: routerOptions{
			timeout:     DefaultTimeout,
			payloadType: PayloadRPCReliable,
			logger:      zerolog.Nop(),
		},
	}
	copy(r.routes, routes)
	for _, route := range routes {
		if _, dup := r.targets[route.Key]; dup {
			panic(fmt.Sprintf("actr: duplicate route %q", route.Key))
		}
		r.targets[route.Key] = route.Target
	}
	for _, opt := range opts {
		opt.apply(&r.opts)
	}
	return r
}

// With returns a copy of r with additional options applied.
func (r *Router) With(opts ...RouterOption) *Router {
	clone := *r
	for _, opt := range opts {
		opt.apply(&clone.opts)
	}
	return &clone
}

func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

func (r *Router) Lookup(routeKey string) (ActrType, bool) {
	target, ok := r.targets[routeKey]
	return target, ok
}

func (r *Router) Timeout() time.Duration {
	return r.opts.timeout
}

// Dispatch forwards env.Payload to an instance of the actor type registered
// for env.RouteKey and returns the response bytes unmodified. An unknown
// route fails with ErrUnknownRoute before any discovery takes place.
func (r *Router) Dispatch(ctx context.Context, c Context, env Envelope) ([]byte, error) {
	start := time.Now()
	log := r.opts.logger.With().
		Str("route", env.RouteKey).
		Str("request_id", env.RequestID).
		Logger()

	target, ok := r.targets[env.RouteKey]
	if !ok {
		log.Debug().Msg("unknown route")
		r.opts.metrics.observe("", outcomeUnknownRoute, start)
		return nil, fmt.Errorf("%w %q", ErrUnknownRoute, env.RouteKey)
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.timeout)
	defer cancel()

	id, err := c.Discover(ctx, target)
	if err != nil {
		log.Debug().Err(err).Stringer("target", target).Msg("discovery failed")
		r.opts.metrics.observe(env.RouteKey, outcomeDiscoverError, start)
		return nil, fmt.Errorf("discover %s for route %q: %w", target, env.RouteKey, err)
	}

	resp, err := c.CallRaw(ctx, id, env.RouteKey, r.opts.payloadType, env.Payload, r.opts.timeout)
	if err != nil {
		log.Debug().Err(err).Stringer("target", id).Msg("call failed")
		r.opts.metrics.observe(env.RouteKey, outcomeCallError, start)
		return nil, fmt.Errorf("call %q on %s: %w", env.RouteKey, id, err)
	}

	log.Debug().
		Stringer("target", id).
		Int("request_bytes", len(env.Payload)).
		Int("response_bytes", len(resp)).
		Dur("elapsed", time.Since(start)).
		Msg("dispatched")
	r.opts.metrics.observe(env.RouteKey, outcomeOK, start)
	return resp, nil
}
