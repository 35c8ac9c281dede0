package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the quoter.
type Config struct {
	Pools         []PoolConfig        `mapstructure:"pools"`
	Quote         QuoteConfig         `mapstructure:"quote"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	HTTP          HTTPConfig          `mapstructure:"http"`
}

// PoolConfig describes one pool to quote against. Balances and supply are
// decimal strings so YAML never loses precision on large token amounts.
type PoolConfig struct {
	Name        string `mapstructure:"name"`
	Address     string `mapstructure:"address"`
	BalanceA    string `mapstructure:"balance_a"`
	BalanceB    string `mapstructure:"balance_b"`
	LPSupply    string `mapstructure:"lp_supply"`
	InitialAmp  uint64 `mapstructure:"initial_amp"`
	TargetAmp   uint64 `mapstructure:"target_amp"`
	RampStartTs int64  `mapstructure:"ramp_start_ts"`
	RampStopTs  int64  `mapstructure:"ramp_stop_ts"`
	TradeFeeBPS uint64 `mapstructure:"trade_fee_bps"`

	parsedBalanceA uint64
	parsedBalanceB uint64
	parsedLPSupply uint64
}

// BalanceAParsed returns the parsed token A balance.
func (p *PoolConfig) BalanceAParsed() uint64 { return p.parsedBalanceA }

// BalanceBParsed returns the parsed token B balance.
func (p *PoolConfig) BalanceBParsed() uint64 { return p.parsedBalanceB }

// LPSupplyParsed returns the parsed LP token supply.
func (p *PoolConfig) LPSupplyParsed() uint64 { return p.parsedLPSupply }

// QuoteConfig holds quote computation settings.
type QuoteConfig struct {
	TradeSizes        []string      `mapstructure:"trade_sizes"` // base-unit decimal strings
	SlippageBPS       uint64        `mapstructure:"slippage_bps"`
	MaxImbalanceRatio uint64        `mapstructure:"max_imbalance_ratio"`
	Workers           int           `mapstructure:"workers"`
	Interval          time.Duration `mapstructure:"interval"`

	parsedTradeSizes []uint64
}

// TradeSizesParsed returns the parsed trade sizes.
func (q *QuoteConfig) TradeSizesParsed() []uint64 { return q.parsedTradeSizes }

// CacheConfig holds pool state cache settings.
type CacheConfig struct {
	MaxSize int           `mapstructure:"max_size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not fatal if env vars are set
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.parse(); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	// Quote defaults
	v.SetDefault("quote.trade_sizes", []string{
		"1000000",    // 1 token at 6 decimals
		"10000000",   // 10 tokens
		"100000000",  // 100 tokens
	})
	v.SetDefault("quote.slippage_bps", 50)
	v.SetDefault("quote.max_imbalance_ratio", 10)
	v.SetDefault("quote.workers", 4)
	v.SetDefault("quote.interval", "10s")

	// Cache defaults
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "60s")

	// Observability defaults
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "json")
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.port", 9091)

	// HTTP defaults
	v.SetDefault("http.port", 8080)
}

// parse converts string amounts into their numeric types.
func (c *Config) parse() error {
	sizes := make([]uint64, 0, len(c.Quote.TradeSizes))
	for _, sizeStr := range c.Quote.TradeSizes {
		size, err := strconv.ParseUint(sizeStr, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid trade size %q: %w", sizeStr, err)
		}
		sizes = append(sizes, size)
	}
	c.Quote.parsedTradeSizes = sizes

	for i := range c.Pools {
		p := &c.Pools[i]
		var err error
		if p.parsedBalanceA, err = parseAmount(p.BalanceA); err != nil {
			return fmt.Errorf("pool %q balance_a: %w", p.Name, err)
		}
		if p.parsedBalanceB, err = parseAmount(p.BalanceB); err != nil {
			return fmt.Errorf("pool %q balance_b: %w", p.Name, err)
		}
		if p.parsedLPSupply, err = parseAmount(p.LPSupply); err != nil {
			return fmt.Errorf("pool %q lp_supply: %w", p.Name, err)
		}
	}

	return nil
}

func parseAmount(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return n, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Pools) == 0 {
		return fmt.Errorf("at least one pool is required")
	}

	for i := range c.Pools {
		p := &c.Pools[i]
		if p.Name == "" {
			return fmt.Errorf("pool %d: name is required", i)
		}
		if p.InitialAmp == 0 || p.TargetAmp == 0 {
			return fmt.Errorf("pool %q: amplification coefficients must be positive", p.Name)
		}
		if p.RampStopTs < p.RampStartTs {
			return fmt.Errorf("pool %q: ramp_stop_ts before ramp_start_ts", p.Name)
		}
		if p.TradeFeeBPS >= 10000 {
			return fmt.Errorf("pool %q: trade_fee_bps must be below 10000", p.Name)
		}
	}

	if len(c.Quote.parsedTradeSizes) == 0 {
		return fmt.Errorf("at least one trade size is required")
	}

	if c.Quote.SlippageBPS >= 10000 {
		return fmt.Errorf("slippage_bps must be below 10000")
	}

	if c.Quote.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	if c.Quote.Interval <= 0 {
		return fmt.Errorf("quote interval must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Observability.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Observability.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validLogFormats[c.Observability.Logging.Format] {
		return fmt.Errorf("invalid log format: %s", c.Observability.Logging.Format)
	}

	return nil
}
