// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in the middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → instrument → rewriteEntityKeys → router
//
// rewriteEntityKeys sits innermost so the entity-key syntax
// (/catalog/Books(252)) is translated before the router matches, and so
// its 400s are still counted by instrument.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return the JSON
	// error envelope.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	// Authors
	router.HandlerFunc(http.MethodGet, "/catalog/Authors", app.listAuthorsHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/Authors", app.createAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/Authors/:id", app.showAuthorHandler)
	router.HandlerFunc(http.MethodPut, "/catalog/Authors/:id", app.updateAuthorHandler)
	router.HandlerFunc(http.MethodDelete, "/catalog/Authors/:id", app.deleteAuthorHandler)

	// Books
	router.HandlerFunc(http.MethodGet, "/catalog/Books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/Books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/Books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/catalog/Books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/catalog/Books/:id", app.deleteBookHandler)

	// Orders
	router.HandlerFunc(http.MethodGet, "/catalog/Orders", app.listOrdersHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/Orders", app.createOrderHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/Orders/:id", app.showOrderHandler)
	router.HandlerFunc(http.MethodPut, "/catalog/Orders/:id", app.updateOrderHandler)
	router.HandlerFunc(http.MethodDelete, "/catalog/Orders/:id", app.deleteOrderHandler)

	// Operational endpoints
	router.Handler(http.MethodGet, "/metrics", app.metrics.Handler())

	return app.recoverPanic(app.rateLimit(app.instrument(app.rewriteEntityKeys(router))))
}
