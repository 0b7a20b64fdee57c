// Package config provides configuration loading, merging, and validation
// facilities for the user directory.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Fields left empty by every source receive defaults: the sqlite driver with
// a shared in-memory database, the localhost:8080 address and a 15 second
// request timeout.
//
// The main entry points are [GetStructuredConfig] for server configuration
// and [GetClientConfig] for the command-line client.
package config
