// Package mocks provides shared test doubles for the bot's ports.
//
// Each mock has function fields for custom behavior, default return values
// for simple cases, and records its calls so tests can assert on them:
//
//	poster := &mocks.MockPoster{}
//	gen := &mocks.MockGenerator{Text: "hello"}
//	// ... run the code under test ...
//	assert.Equal(t, 1, poster.PostCount())
package mocks
