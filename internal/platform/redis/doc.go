// Package redis implements the store interfaces on top of Redis using
// github.com/redis/go-redis/v9.
//
// Key layout:
//
//	settings:{guild}:persona   string, JSON-encoded domain.Persona
//	bot_updates:channels       set of channel IDs receiving lifecycle notices
//	daily_games:{guild}        hash of game name -> JSON-encoded domain.DailyGame
//	daily_games:guilds         set of guild IDs that have at least one game
package redis
