package config

import (
	"slices"
	"strconv"
)

func (c *Config) GetBotToken() string {
	return c.v.GetString("bot_token")
}

func (c *Config) GetLogDir() string {
	return c.v.GetString("log_dir")
}

// AllowedGuild reports whether a guild ID is on the allowlist. IDs that do
// not parse as integers are never allowed.
func (c *Config) AllowedGuild(guildID string) bool {
	id, err := strconv.ParseInt(guildID, 10, 64)
	if err != nil {
		return false
	}
	_, ok := c.allowedGuilds[id]
	return ok
}

// AllowedGuildIDs returns the allowlist in ascending order.
func (c *Config) AllowedGuildIDs() []int64 {
	ids := make([]int64, 0, len(c.allowedGuilds))
	for id := range c.allowedGuilds {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
