// Package config provides configuration loading, merging, and validation
// facilities for the toggle sync client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Remaining zero fields are filled from [Defaults]. The entry point is
// [GetStructuredConfig].
package config
