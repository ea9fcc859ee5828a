// Package domain contains the core entities and rules of the bot: chat
// personas, daily game reminders, and message formatting limits. It is
// independent of the messaging platform, the LLM, and the store.
package domain
