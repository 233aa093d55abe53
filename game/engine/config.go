package engine

import (
	"fmt"
	"strings"
)

// DefaultConfig returns the built-in draw-one configuration
func DefaultConfig() *GameConfig {
	config := &GameConfig{
		Name:        "klondike",
		Description: "Classic Klondike, one card per deal",
		DealSize:    int(DealOne),
	}
	config.Messages.Welcome = "Welcome to Klondike! Deal from the stock or move a card."
	config.Messages.Dealt = "Dealt %d card(s) to the waste."
	config.Messages.Recycled = "Waste turned over onto the stock."
	config.Messages.NothingToDeal = "Stock and waste are both empty."
	config.Messages.Moved = "Moved from %s to %s."
	config.Messages.CannotMove = "Cannot move from %s to %s."
	config.Messages.Victory = "All four foundations are complete. You win!"
	return config
}

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if _, err := ParseDealSize(config.DealSize); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}

	// Optional format strings fall back to the defaults, but when present they need both locations
	if config.Messages.Moved != "" && strings.Count(config.Messages.Moved, "%s") != 2 {
		return fmt.Errorf("config validation: messages.moved must contain %%s twice for source and destination")
	}
	if config.Messages.CannotMove != "" && strings.Count(config.Messages.CannotMove, "%s") != 2 {
		return fmt.Errorf("config validation: messages.cannot_move must contain %%s twice for source and destination")
	}
	if config.Messages.Dealt != "" && !strings.Contains(config.Messages.Dealt, "%d") {
		return fmt.Errorf("config validation: messages.dealt must contain %%d for the card count")
	}

	return nil
}

// messageOr returns the configured template or the built-in default when unset
func messageOr(template, fallback string) string {
	if template == "" {
		return fallback
	}
	return template
}
