package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// PlayerConfig contains character movement values
type PlayerConfig struct {
	MaxSpeed    float64 `mapstructure:"maxSpeed"`
	Gravity     float64 `mapstructure:"gravity"`
	Friction    float64 `mapstructure:"friction"`
	MissileAmmo int     `mapstructure:"missileAmmo"`

	// Dimensions
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// PhysicsConfig contains global physics limits
type PhysicsConfig struct {
	MaxFallSpeed float64 `mapstructure:"maxFallSpeed"`
	MaxRiseSpeed float64 `mapstructure:"maxRiseSpeed"`
}

// WeaponConfig contains projectile values
type WeaponConfig struct {
	FireCooldown     int     `mapstructure:"fireCooldown"` // ticks
	BulletSpeed      float64 `mapstructure:"bulletSpeed"`
	BulletLifetime   int     `mapstructure:"bulletLifetime"`
	MissileSpeed     float64 `mapstructure:"missileSpeed"`
	MissileLifetime  int     `mapstructure:"missileLifetime"`
	ProjectileWidth  float64 `mapstructure:"projectileWidth"`
	ProjectileHeight float64 `mapstructure:"projectileHeight"`
	BulletKnockback  float64 `mapstructure:"bulletKnockback"`
	MissileKnockback float64 `mapstructure:"missileKnockback"`
}

// ArenaConfig describes the single flat arena
type ArenaConfig struct {
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	FloorY      float64 `mapstructure:"floorY"`
	FallLimit   float64 `mapstructure:"fallLimit"` // characters below this Y have failed
	SpawnSpread float64 `mapstructure:"spawnSpread"`

	// Floating platform above the arena centre
	PlatformY      float64 `mapstructure:"platformY"`
	PlatformWidth  float64 `mapstructure:"platformWidth"`
	PlatformRise   float64 `mapstructure:"platformRise"`
	PlatformPeriod float64 `mapstructure:"platformPeriod"` // seconds per leg
}

// NetConfig selects how this process takes part in a match
type NetConfig struct {
	Mode          string  `mapstructure:"mode"` // local, join
	Address       string  `mapstructure:"address"`
	PlayerID      int32   `mapstructure:"playerId"`
	RemotePlayers []int32 `mapstructure:"remotePlayers"`
	SendBuffer    int     `mapstructure:"sendBuffer"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	Width    int                 `mapstructure:"width"`
	Height   int                 `mapstructure:"height"`
	TickRate int                 `mapstructure:"tickRate"`
	AppName  string              `mapstructure:"appName"`
	Player   PlayerConfig        `mapstructure:"player"`
	Physics  PhysicsConfig       `mapstructure:"physics"`
	Weapon   WeaponConfig        `mapstructure:"weapon"`
	Arena    ArenaConfig         `mapstructure:"arena"`
	Net      NetConfig           `mapstructure:"net"`
	Log      LogConfig           `mapstructure:"log"`
	Controls map[string][]string `mapstructure:"controls"` // action name -> key names
}

const (
	NetModeLocal = "local"
	NetModeJoin  = "join"
)

var C *Config
var Player PlayerConfig
var Physics PhysicsConfig
var Weapon WeaponConfig
var Arena ArenaConfig

func init() {
	apply(Default())
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Width:    640,
		Height:   360,
		TickRate: 60,
		AppName:  "skirmish",
		Player: PlayerConfig{
			MaxSpeed:    4.0,
			Gravity:     0.75,
			Friction:    0.5,
			MissileAmmo: 3,
			Width:       16,
			Height:      32,
		},
		Physics: PhysicsConfig{
			MaxFallSpeed: 10.0,
			MaxRiseSpeed: -16.0,
		},
		Weapon: WeaponConfig{
			FireCooldown:     10,
			BulletSpeed:      8,
			BulletLifetime:   60,
			MissileSpeed:     5,
			MissileLifetime:  120,
			ProjectileWidth:  6,
			ProjectileHeight: 3,
			BulletKnockback:  3,
			MissileKnockback: 8,
		},
		Arena: ArenaConfig{
			Width:       640,
			Height:      360,
			FloorY:      300,
			FallLimit:   420,
			SpawnSpread: 80,

			PlatformY:      230,
			PlatformWidth:  80,
			PlatformRise:   60,
			PlatformPeriod: 2,
		},
		Net: NetConfig{
			Mode:       NetModeLocal,
			Address:    "localhost:7373",
			PlayerID:   1,
			SendBuffer: 64,
		},
		Log: LogConfig{
			Level: "info",
		},
		Controls: map[string][]string{
			"MoveLeft":      {"A", "ArrowLeft"},
			"MoveRight":     {"D", "ArrowRight"},
			"Jump":          {"W", "ArrowUp"},
			"Fire":          {"Space"},
			"LaunchMissile": {"M"},
		},
	}
}

// Load reads an optional config file and SKIRMISH_* environment overrides on
// top of the defaults, then makes the result the active configuration.
// An empty path searches the working directory for skirmish.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("skirmish")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	apply(cfg)
	return cfg, nil
}

// Validate rejects combinations the game cannot run with.
func (c *Config) Validate() error {
	switch c.Net.Mode {
	case NetModeLocal, NetModeJoin:
	default:
		return fmt.Errorf("invalid net.mode %q", c.Net.Mode)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("invalid tickRate %d", c.TickRate)
	}
	for _, id := range c.Net.RemotePlayers {
		if id == c.Net.PlayerID {
			return fmt.Errorf("net.remotePlayers contains local player %d", id)
		}
	}
	return nil
}

func apply(cfg *Config) {
	C = cfg
	Player = cfg.Player
	Physics = cfg.Physics
	Weapon = cfg.Weapon
	Arena = cfg.Arena
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("tickRate", d.TickRate)
	v.SetDefault("appName", d.AppName)

	v.SetDefault("player.maxSpeed", d.Player.MaxSpeed)
	v.SetDefault("player.gravity", d.Player.Gravity)
	v.SetDefault("player.friction", d.Player.Friction)
	v.SetDefault("player.missileAmmo", d.Player.MissileAmmo)
	v.SetDefault("player.width", d.Player.Width)
	v.SetDefault("player.height", d.Player.Height)

	v.SetDefault("physics.maxFallSpeed", d.Physics.MaxFallSpeed)
	v.SetDefault("physics.maxRiseSpeed", d.Physics.MaxRiseSpeed)

	v.SetDefault("weapon.fireCooldown", d.Weapon.FireCooldown)
	v.SetDefault("weapon.bulletSpeed", d.Weapon.BulletSpeed)
	v.SetDefault("weapon.bulletLifetime", d.Weapon.BulletLifetime)
	v.SetDefault("weapon.missileSpeed", d.Weapon.MissileSpeed)
	v.SetDefault("weapon.missileLifetime", d.Weapon.MissileLifetime)
	v.SetDefault("weapon.projectileWidth", d.Weapon.ProjectileWidth)
	v.SetDefault("weapon.projectileHeight", d.Weapon.ProjectileHeight)
	v.SetDefault("weapon.bulletKnockback", d.Weapon.BulletKnockback)
	v.SetDefault("weapon.missileKnockback", d.Weapon.MissileKnockback)

	v.SetDefault("arena.width", d.Arena.Width)
	v.SetDefault("arena.height", d.Arena.Height)
	v.SetDefault("arena.floorY", d.Arena.FloorY)
	v.SetDefault("arena.fallLimit", d.Arena.FallLimit)
	v.SetDefault("arena.spawnSpread", d.Arena.SpawnSpread)
	v.SetDefault("arena.platformY", d.Arena.PlatformY)
	v.SetDefault("arena.platformWidth", d.Arena.PlatformWidth)
	v.SetDefault("arena.platformRise", d.Arena.PlatformRise)
	v.SetDefault("arena.platformPeriod", d.Arena.PlatformPeriod)

	v.SetDefault("net.mode", d.Net.Mode)
	v.SetDefault("net.address", d.Net.Address)
	v.SetDefault("net.playerId", d.Net.PlayerID)
	v.SetDefault("net.remotePlayers", d.Net.RemotePlayers)
	v.SetDefault("net.sendBuffer", d.Net.SendBuffer)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("controls", d.Controls)
}
