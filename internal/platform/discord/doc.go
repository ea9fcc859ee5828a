// Package discord posts messages to Discord channels over the REST API using
// github.com/bwmarrin/discordgo. Only the outbound half of the platform is
// used; inbound commands reach the bot through the HTTP gateway in
// internal/api.
package discord
