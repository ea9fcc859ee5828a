// Package events provides an in-process publish/subscribe mechanism for bot
// lifecycle events such as startup and shutdown.
//
// The composition root emits events without knowing which services react to
// them; services register handlers with the emitter. Handlers are expected to
// do their real work on the task queue rather than inline.
package events
