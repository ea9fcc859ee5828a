// Package store defines interfaces for the bot's persistent state: the
// persona chosen per guild, the channels that receive lifecycle notices,
// and the daily game reminders. Implementations live under internal/platform.
package store
