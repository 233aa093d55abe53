package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*GameConfig)
		wantErr bool
	}{
		{"default is valid", func(c *GameConfig) {}, false},
		{"deal three", func(c *GameConfig) { c.DealSize = 3 }, false},
		{"optional messages unset", func(c *GameConfig) { c.Messages.Moved = ""; c.Messages.Dealt = "" }, false},
		{"missing name", func(c *GameConfig) { c.Name = "" }, true},
		{"missing description", func(c *GameConfig) { c.Description = "" }, true},
		{"deal size two", func(c *GameConfig) { c.DealSize = 2 }, true},
		{"missing welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, true},
		{"missing victory", func(c *GameConfig) { c.Messages.Victory = "" }, true},
		{"moved without locations", func(c *GameConfig) { c.Messages.Moved = "Moved." }, true},
		{"cannot move with one location", func(c *GameConfig) { c.Messages.CannotMove = "No move to %s." }, true},
		{"dealt without count", func(c *GameConfig) { c.Messages.Dealt = "Dealt." }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := ValidateGameConfig(config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Error(t, ValidateGameConfig(nil))
}

func TestValidateGameConfigWrapsDealSizeError(t *testing.T) {
	config := DefaultConfig()
	config.DealSize = 5
	err := ValidateGameConfig(config)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDealSize))
}

func TestConfigMessagesUsed(t *testing.T) {
	config := DefaultConfig()
	config.Messages.Moved = "%s -> %s"
	config.Messages.CannotMove = ""
	g, err := NewFromConfig(config)
	require.NoError(t, err)

	require.True(t, g.TableauToTableau(7, 1, 1))
	assert.Equal(t, "tableau 7 -> tableau 1", g.Message())

	assert.False(t, g.TableauToTableau(7, 1, 1))
	assert.Equal(t, "Cannot move from tableau 7 to tableau 1.", g.Message())
}

func TestParseDealSize(t *testing.T) {
	size, err := ParseDealSize(3)
	require.NoError(t, err)
	assert.Equal(t, DealThree, size)

	_, err = ParseDealSize(0)
	assert.True(t, errors.Is(err, ErrInvalidDealSize))
}
