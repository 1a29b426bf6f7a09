// Package connection provides server communication for authgate-cli.
//
// It wraps an HTTP client that speaks the endpoint-dispatched API and a
// small on-disk token cache so that a login survives across CLI
// invocations.
package connection
