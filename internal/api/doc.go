// Package api contains the HTTP handlers, request/response models and
// error mapping for the REST surface. Handlers translate HTTP into
// service calls and never contain scheduling or counter logic.
package api
