// Package client talks to the remote form-building service. It acquires a
// bearer token with the configured credentials, caches it for the lifetime of
// the Client, and exposes typed accessors for the form listing, form details,
// field definitions and submissions endpoints. Responses are returned in their
// raw shape; classification and mapping live in the fields and mapper
// packages.
package client
