// Package operations contains the object-store operations issued by the client.
package operations
