// Package httpapi exposes the processor over HTTP.
//
// The routes follow the Azure Functions custom handler layout, so the same
// binary serves both as a function app handler and as a standalone service.
package httpapi
