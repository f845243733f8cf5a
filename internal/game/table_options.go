package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/shoe"
)

// TableOption configures a Table during creation.
type TableOption func(*tableConfig)

// tableConfig holds all configuration for creating a table.
type tableConfig struct {
	rules    Config
	rng      *rand.Rand
	shoe     *shoe.Shoe // If provided, used instead of building one from the rules
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
}

// WithRules sets the table rules. Default is DefaultConfig().
func WithRules(cfg Config) TableOption {
	return func(c *tableConfig) { c.rules = cfg }
}

// WithRNG sets the source used to shuffle the shoe.
func WithRNG(rng *rand.Rand) TableOption {
	return func(c *tableConfig) { c.rng = rng }
}

// WithShoe sets a pre-built shoe. This overrides the RNG for shuffling.
func WithShoe(s *shoe.Shoe) TableOption {
	return func(c *tableConfig) { c.shoe = s }
}

// WithLogger sets the table logger. Default discards output.
func WithLogger(logger *log.Logger) TableOption {
	return func(c *tableConfig) { c.logger = logger }
}

// WithEventBus sets the bus table events are published on.
func WithEventBus(bus EventBus) TableOption {
	return func(c *tableConfig) { c.eventBus = bus }
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) TableOption {
	return func(c *tableConfig) { c.clock = clock }
}

func defaultTableConfig() *tableConfig {
	return &tableConfig{
		rules:    DefaultConfig(),
		logger:   log.New(io.Discard),
		eventBus: NewEventBus(),
		clock:    quartz.NewReal(),
	}
}
