// Package config loads the Klondike game variants.
//
// Variants live as JSON or YAML files in a config directory. Each one names
// the game, picks a deal size of one or three cards, and can override the
// messages shown after deals and moves:
//
//	name: klondike-draw-three
//	description: Three cards per deal
//	deal_size: 3
//	messages:
//	  welcome: Good luck!
//	  victory: Every foundation is complete.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("klondike-draw-three")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// Loaded configs are validated with engine.ValidateGameConfig and cached by
// name without extension. When no file named "klondike" exists the first valid
// file becomes the default, and an empty directory falls back to
// engine.DefaultConfig.
package config
