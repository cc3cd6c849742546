// Package handler is the HTTP layer between the router and the services.
//
// It binds and validates request payloads using the validation package,
// calls the service layer and writes the response. Errors are returned to
// Echo and rendered by the global error handler.
package handler
