package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// SlotMinutes is the granularity of daily game schedules.
const SlotMinutes = 10

// DailyGame is a reminder posted to a channel once a day at a fixed time.
type DailyGame struct {
	Name      string `json:"name"`
	Link      string `json:"link"`
	ChannelID string `json:"channel_id"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	Enabled   bool   `json:"enabled"`
}

// NewDailyGame creates an enabled game and validates it.
func NewDailyGame(name, link, channelID string, hour, minute int) (*DailyGame, error) {
	g := &DailyGame{
		Name:      strings.TrimSpace(name),
		Link:      strings.TrimSpace(link),
		ChannelID: strings.TrimSpace(channelID),
		Hour:      hour,
		Minute:    minute,
		Enabled:   true,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the game's fields.
func (g *DailyGame) Validate() error {
	if g.Name == "" {
		return NewValidationError("name", "cannot be empty")
	}
	if g.ChannelID == "" {
		return NewValidationError("channel_id", "cannot be empty")
	}
	if !isHTTPURL(g.Link) {
		return NewValidationError("link", "must be a valid URL starting with http:// or https://")
	}
	if g.Hour < 0 || g.Hour > 23 {
		return NewValidationError("hour", "must be between 0 and 23")
	}
	if g.Minute < 0 || g.Minute > 59 || g.Minute%SlotMinutes != 0 {
		return NewValidationError("minute", "must be one of 0, 10, 20, 30, 40, 50")
	}
	return nil
}

// DueAt reports whether the game is scheduled for the slot containing t.
// t must already be in the schedule's timezone.
func (g *DailyGame) DueAt(t time.Time) bool {
	hour, minute := SlotOf(t)
	return g.Enabled && g.Hour == hour && g.Minute == minute
}

// Message is the reminder posted to the channel.
func (g *DailyGame) Message() string {
	return fmt.Sprintf("It's time for your daily **%s**! Play here: <%s>", g.Name, g.Link)
}

// SlotOf returns the hour and minute of t rounded down to a 10-minute slot.
func SlotOf(t time.Time) (hour, minute int) {
	return t.Hour(), t.Minute() - t.Minute()%SlotMinutes
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
