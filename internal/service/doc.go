// Package service contains the bot's use cases. Each service validates a
// command, consults the stores in internal/store and, for anything that
// talks to the outside world, hands a job to the single task queue so that
// outbound work is serialized.
//
// Services depend on interfaces: a TaskQueue for admission, a Poster for
// outbound messages and a generation.Generator for replies. Concrete
// Redis, Discord and Gemini adapters are wired in cmd/bot.
package service
