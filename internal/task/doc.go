// Package task serializes and throttles outbound work. It provides a bounded,
// FIFO queue drained by a single background worker, so that bursts of chat
// requests never turn into unbounded concurrent calls to the language model
// provider and never block the goroutine that accepted the request.
package task
