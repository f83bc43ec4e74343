// cmd/api/middleware.go
// This file contains HTTP middleware used to wrap the router.
// Middleware functions intercept every request before it reaches a handler.
package main

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// recoverPanic catches any runtime panic that occurs in a downstream handler.
// Without this, a panic would cause the goroutine to terminate and the client's
// connection to be dropped silently. With this middleware the client receives a
// clean 500 Internal Server Error instead.
func (app *applicationDependencies) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// defer runs when the surrounding goroutine unwinds, even after a panic.
		defer func() {
			if err := recover(); err != nil {
				// Tell the HTTP server to close the connection after this response.
				w.Header().Set("Connection", "close")
				// Convert the recovered panic value to an error and send a 500.
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// rewriteEntityKeys translates the entity-key path syntax used by the
// external contract, /catalog/Books(252), into the /catalog/Books/252 form
// the router matches on. A key segment with an opening parenthesis but no
// closing one is rejected with the URI-token error before routing.
func (app *applicationDependencies) rewriteEntityKeys(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		open := strings.IndexByte(path, '(')
		if open < 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !strings.HasSuffix(path, ")") {
			app.uriTokenErrorResponse(w, r, strings.TrimPrefix(path[open:], "("))
			return
		}

		key := path[open+1 : len(path)-1]
		if key == "" || strings.ContainsAny(key, "()/") {
			app.uriTokenErrorResponse(w, r, key)
			return
		}

		// Shallow-clone the request so the rewritten path does not leak into
		// anything holding the original URL.
		rewritten := r.Clone(r.Context())
		rewritten.URL.Path = path[:open] + "/" + key
		next.ServeHTTP(w, rewritten)
	})
}

// statusRecorder captures the status code written by a downstream handler
// so the metrics middleware can label requests with it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// instrument records a counter per method/status pair and observes the
// request duration histogram on the application's metrics registry.
func (app *applicationDependencies) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		app.metrics.Requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		app.metrics.RequestSeconds.Observe(time.Since(start).Seconds())
	})
}

// client holds a per-IP rate limiter and the time it was last seen.
// lastSeen lets us evict old entries so the map does not grow forever.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimit implements per-IP token-bucket rate limiting using the
// golang.org/x/time/rate package. Each unique IP gets its own limiter
// seeded from the limiter config flags. A background goroutine cleans up
// entries that have not been seen in 3 minutes.
func (app *applicationDependencies) rateLimit(next http.Handler) http.Handler {
	// clients maps IP addresses to their individual rate limiters.
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	// Cleanup goroutine: remove stale IP entries every minute.
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.config.limiter.enabled {
			next.ServeHTTP(w, r)
			return
		}

		// Extract just the IP from the RemoteAddr (strips the port).
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		mu.Lock()
		// Create a new limiter for this IP if we have not seen it before.
		if _, found := clients[ip]; !found {
			clients[ip] = &client{
				limiter: rate.NewLimiter(rate.Limit(app.config.limiter.rps), app.config.limiter.burst),
			}
		}
		clients[ip].lastSeen = time.Now()

		// Allow() consumes one token; returns false if the bucket is empty.
		if !clients[ip].limiter.Allow() {
			mu.Unlock()
			app.rateLimitExceededResponse(w, r)
			return
		}
		mu.Unlock()

		next.ServeHTTP(w, r)
	})
}
