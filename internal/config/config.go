// Package config loads battle settings from defaults, an optional JSON file
// and NAVAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

// ErrConfigRead wraps any failure to read or decode the config file.
var ErrConfigRead = errors.New("error reading config")

// EnvPrefix is prepended to environment overrides, e.g. NAVAL_SETUP_TEAMA.
const EnvPrefix = "NAVAL"

// Viewer holds display toggles shared by the window and terminal viewers.
type Viewer struct {
	ShowVision      bool    `mapstructure:"showVision"`
	ShowFiringRange bool    `mapstructure:"showFiringRange"`
	ShowTargetLines bool    `mapstructure:"showTargetLines"`
	ShowStats       bool    `mapstructure:"showStats"`
	Speed           float64 `mapstructure:"speed"`
	Scale           float64 `mapstructure:"scale"`
}

// Headless holds batch report settings.
type Headless struct {
	Runs     int   `mapstructure:"runs"`
	MaxTicks int   `mapstructure:"maxTicks"`
	SeedStep int64 `mapstructure:"seedStep"`
}

// Config is the full application configuration.
type Config struct {
	Setup     sim.Setup  `mapstructure:"setup"`
	Tuning    sim.Tuning `mapstructure:"tuning"`
	Seed      int64      `mapstructure:"seed"` // 0 picks a time-based seed
	Agent     string     `mapstructure:"agent"`
	LogLevel  string     `mapstructure:"logLevel"`
	LogPretty bool       `mapstructure:"logPretty"`
	LogsDir   string     `mapstructure:"logsDir"`
	Viewer    Viewer     `mapstructure:"viewer"`
	Headless  Headless   `mapstructure:"headless"`
}

// SetDefaults registers every default on the global viper instance.
func SetDefaults() {
	setup := sim.DefaultSetup()
	viper.SetDefault("setup.teamA", setup.TeamA)
	viper.SetDefault("setup.teamB", setup.TeamB)
	viper.SetDefault("setup.islands", setup.Islands)

	viper.SetDefault("seed", 0)
	viper.SetDefault("agent", "steering")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logPretty", true)
	viper.SetDefault("logsDir", "")

	viper.SetDefault("viewer.showVision", false)
	viper.SetDefault("viewer.showFiringRange", false)
	viper.SetDefault("viewer.showTargetLines", true)
	viper.SetDefault("viewer.showStats", true)
	viper.SetDefault("viewer.speed", 1.0)
	viper.SetDefault("viewer.scale", 1.5)

	viper.SetDefault("headless.runs", 20)
	viper.SetDefault("headless.maxTicks", 20000)
	viper.SetDefault("headless.seedStep", 7919)

	t := sim.DefaultTuning()
	viper.SetDefault("tuning.mapWidth", t.MapWidth)
	viper.SetDefault("tuning.mapHeight", t.MapHeight)
	viper.SetDefault("tuning.baseWidth", t.BaseWidth)
	viper.SetDefault("tuning.ticksPerSecond", t.TicksPerSecond)
	viper.SetDefault("tuning.shipSize", t.ShipSize)
	viper.SetDefault("tuning.maxSpeed", t.MaxSpeed)
	viper.SetDefault("tuning.maxForce", t.MaxForce)
	viper.SetDefault("tuning.visionRadius", t.VisionRadius)
	viper.SetDefault("tuning.firingRange", t.FiringRange)
	viper.SetDefault("tuning.maxHealth", t.MaxHealth)
	viper.SetDefault("tuning.maxAmmo", t.MaxAmmo)
	viper.SetDefault("tuning.fireCooldown", t.FireCooldown)
	viper.SetDefault("tuning.collisionCooldown", t.CollisionCooldown)
	viper.SetDefault("tuning.fireChance", t.FireChance)
	viper.SetDefault("tuning.hitDecay", t.HitDecay)
	viper.SetDefault("tuning.wanderRadius", t.WanderRadius)
	viper.SetDefault("tuning.wanderDistance", t.WanderDistance)
	viper.SetDefault("tuning.wanderChange", t.WanderChange)
	viper.SetDefault("tuning.lookaheadTicks", t.LookaheadTicks)
	viper.SetDefault("tuning.wanderWeight", t.WanderWeight)
	viper.SetDefault("tuning.avoidWeight", t.AvoidWeight)
	viper.SetDefault("tuning.separateWeight", t.SeparateWeight)
	viper.SetDefault("tuning.edgeMargin", t.EdgeMargin)
	viper.SetDefault("tuning.edgeSteer", t.EdgeSteer)
	viper.SetDefault("tuning.islandMargin", t.IslandMargin)
	viper.SetDefault("tuning.islandSteer", t.IslandSteer)
	viper.SetDefault("tuning.islandSteerNear", t.IslandSteerNear)
	viper.SetDefault("tuning.islandSteerFar", t.IslandSteerFar)
	viper.SetDefault("tuning.separationDistance", t.SeparationDistance)
	viper.SetDefault("tuning.hullRadius", t.HullRadius)
	viper.SetDefault("tuning.shipPush", t.ShipPush)
	viper.SetDefault("tuning.islandPush", t.IslandPush)
	viper.SetDefault("tuning.islandBounce", t.IslandBounce)
	viper.SetDefault("tuning.deadDrag", t.DeadDrag)
	viper.SetDefault("tuning.graceWindow", t.GraceWindow)
	viper.SetDefault("tuning.muzzleFlashTime", t.MuzzleFlashTime)
	viper.SetDefault("tuning.spawnMargin", t.SpawnMargin)
	viper.SetDefault("tuning.islandSizeMin", t.IslandSizeMin)
	viper.SetDefault("tuning.islandSizeMax", t.IslandSizeMax)
	viper.SetDefault("tuning.islandSpacing", t.IslandSpacing)
	viper.SetDefault("tuning.shorePadding", t.ShorePadding)
	viper.SetDefault("tuning.maxPlacementAttempts", t.MaxPlacementAttempts)
}

// Load reads configuration. An empty path uses defaults and environment
// overrides only; otherwise the JSON file at path must exist.
func Load(path string) (Config, error) {
	SetDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		viper.SetConfigType("json")
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrConfigRead, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfigRead, err)
	}
	return cfg, nil
}

// EngineOptions turns the loaded settings into engine options. A zero seed
// is replaced by a time-based one.
func (c Config) EngineOptions(log zerolog.Logger) ([]sim.Option, error) {
	provider, err := sim.ProviderByName(c.Agent, c.Tuning)
	if err != nil {
		return nil, err
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return []sim.Option{
		sim.WithSeed(seed),
		sim.WithTuning(c.Tuning),
		sim.WithLogger(log),
		sim.WithDecisionProvider(provider),
	}, nil
}
