// Package ciutil detects CI environments and resolves the test
// infrastructure settings that depend on them.
//
// Integration tests call TestRedisURL to decide between an externally
// provided Redis (a CI service container) and a throwaway testcontainer.
package ciutil
