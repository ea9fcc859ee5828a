// Package api is the bot's inbound HTTP surface. A gateway process that owns
// the chat platform connection forwards slash commands here; handlers
// validate them, call internal/service and translate service errors into
// status codes and safe messages.
//
// Commands that talk to the outside world are acknowledged with 202 and run
// on the task queue. A full queue is reported as 503 with Retry-After.
package api
