// Package config provides helper functionality to read service configurations from JSON config files or OS ENV
// variables. The default configuration can be overridden first by:
//
// - a valid JSON config file (see cmd/conf.json for a sample) and then by
//
// - OS ENV variables: prefixed with CG_ (ie. CG_PORT, CG_DBCONN, ...). All OS ENV variables should be valid strings,
// except for CG_COINS which should be a string with a valid JSON format. For example:
// # export CG_COINS='[{"coin":"btc","backend":"bitcoin","networks":[{"name":"mainnet","node":"localhost:8332"}]}]'
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend kinds a coin can be served by.
const (
	BackendEthereum = "ethereum"
	BackendBitcoin  = "bitcoin"
	BackendSolana   = "solana"
)

// Default configuration variables
var (
	EnvDefault         = "development"
	DBTypeDefault      = ""
	DBConnDefault      = ""
	EndpointDefault    = ""
	PortDefault        = "5000"
	SSLPortDefault     = ""
	SSLCertDefault     = ""
	SSLKeyDefault      = ""
	MbTypeDefault      = ""
	MbConnDefault      = ""
	MetricsAddrDefault = ":9100"
	TimeoutDefault     = 15 * time.Second
	RPSDefault         = 0 // unlimited
	RetriesDefault     = 3
	PollDefault        = 30 * time.Second
	MaxAgeDefault      = 24 * time.Hour
	CoinsDefault       = []CoinConfig{
		{Coin: "btc", Backend: BackendBitcoin, Networks: []NetworkConfig{{Name: "mainnet", Node: "localhost:8332"}}},
		{Coin: "eth", Backend: BackendEthereum, Networks: []NetworkConfig{{Name: "mainnet", Node: "http://localhost:8545"}}},
	}
)

// Errors returned while validating a configuration.
var (
	ErrNoCoin     = errors.New("coin config without coin identifier")
	ErrBackend    = errors.New("unknown backend")
	ErrNoNetworks = errors.New("coin config without networks")
	ErrDupCoin    = errors.New("coin configured twice")
)

// NetworkConfig defines the connection to the node serving one network of a coin. Node contains the url (ie.
// http://localhost:8545) or host:port for bitcoin-family nodes. User and Secret are optional credentials. Tokens lists
// the token contracts served by the token endpoints of the network.
type NetworkConfig struct {
	Name   string   `json:"name" mapstructure:"name"`
	Node   string   `json:"node" mapstructure:"node"`
	User   string   `json:"user" mapstructure:"user"`
	Secret string   `json:"secret" mapstructure:"secret"`
	Tokens []string `json:"tokens" mapstructure:"tokens"`
}

// CoinConfig defines a coin, the backend kind implementing it and its networks. RPS limits the calls per second to the
// coin's nodes (0 means unlimited) and Retries the attempts of a failing read.
type CoinConfig struct {
	Coin     string          `json:"coin" mapstructure:"coin"`
	Backend  string          `json:"backend" mapstructure:"backend"`
	Networks []NetworkConfig `json:"networks" mapstructure:"networks"`
	RPS      int             `json:"rps" mapstructure:"rps"`
	Retries  int             `json:"retries" mapstructure:"retries"`
}

// TrackerConfig configures the confirmation tracker: how often pending submissions are polled and after how long a
// submission that never shows up on chain is dropped.
type TrackerConfig struct {
	Poll   time.Duration `json:"poll" mapstructure:"poll"`
	MaxAge time.Duration `json:"maxAge" mapstructure:"maxage"`
}

// ServiceConfig contains the required fields for the gateway and tracker services.
type ServiceConfig struct {
	Env         string        `json:"env" mapstructure:"env"`
	DBType      string        `json:"dbtype" mapstructure:"dbtype"`
	DBConn      string        `json:"dbconn" mapstructure:"dbconn"`
	Endpoint    string        `json:"endpoint" mapstructure:"endpoint"`
	Port        string        `json:"port" mapstructure:"port"`
	SSLPort     string        `json:"sslport" mapstructure:"sslport"`
	SSLCert     string        `json:"sslcert" mapstructure:"sslcert"`
	SSLKey      string        `json:"sslkey" mapstructure:"sslkey"`
	MbType      string        `json:"mbtype" mapstructure:"mbtype"`
	MbConn      string        `json:"mbconn" mapstructure:"mbconn"`
	MetricsAddr string        `json:"metrics" mapstructure:"metrics"`
	Timeout     time.Duration `json:"timeout" mapstructure:"timeout"`
	Coins       []CoinConfig  `json:"coins" mapstructure:"coins"`
	Tracker     TrackerConfig `json:"tracker" mapstructure:"tracker"`
}

// ExtractConfiguration reads from the given JSON filename and returns the ServiceConfig or an error otherwise.
func ExtractConfiguration(filename string) (ServiceConfig, error) {
	var conf ServiceConfig

	v := viper.New()
	setDefaults(v)

	// read from config file first
	if filename != "" {
		v.SetConfigFile(filename)
		v.SetConfigType("json")

		if err := v.ReadInConfig(); err != nil {
			return conf, fmt.Errorf("cannot read configuration file %s: %w", filename, err)
		}
	}

	// then override config values with OS ENV variables
	v.SetEnvPrefix("CG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&conf); err != nil {
		// CG_COINS holds JSON which viper cannot decode into the coins slice, it is dealt with below
		if _, isStr := v.Get("coins").(string); !isStr {
			return conf, fmt.Errorf("cannot decode configuration: %w", err)
		}
	}

	if tmp, isStr := v.Get("coins").(string); isStr {
		conf.Coins = nil
		if err := json.Unmarshal([]byte(tmp), &conf.Coins); err != nil {
			return conf, fmt.Errorf("error reading coins from OS ENV CG_COINS: %w", err)
		}
	}

	return conf, conf.Validate()
}

// Validate checks that every coin has an identifier, a known backend and at least one network, and that no coin is
// configured twice.
func (c ServiceConfig) Validate() error {
	backends := []string{BackendEthereum, BackendBitcoin, BackendSolana}
	seen := make([]string, 0, len(c.Coins))

	for _, coin := range c.Coins {
		if coin.Coin == "" {
			return ErrNoCoin
		}

		if !slices.Contains(backends, coin.Backend) {
			return fmt.Errorf("%w %q for coin %s", ErrBackend, coin.Backend, coin.Coin)
		}

		if len(coin.Networks) == 0 {
			return fmt.Errorf("%w: %s", ErrNoNetworks, coin.Coin)
		}

		if slices.Contains(seen, coin.Coin) {
			return fmt.Errorf("%w: %s", ErrDupCoin, coin.Coin)
		}

		seen = append(seen, coin.Coin)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDefault)
	v.SetDefault("dbtype", DBTypeDefault)
	v.SetDefault("dbconn", DBConnDefault)
	v.SetDefault("endpoint", EndpointDefault)
	v.SetDefault("port", PortDefault)
	v.SetDefault("sslport", SSLPortDefault)
	v.SetDefault("sslcert", SSLCertDefault)
	v.SetDefault("sslkey", SSLKeyDefault)
	v.SetDefault("mbtype", MbTypeDefault)
	v.SetDefault("mbconn", MbConnDefault)
	v.SetDefault("metrics", MetricsAddrDefault)
	v.SetDefault("timeout", TimeoutDefault)
	v.SetDefault("coins", CoinsDefault)
	v.SetDefault("tracker.poll", PollDefault)
	v.SetDefault("tracker.maxage", MaxAgeDefault)
}

// Limits returns the rate limit and retries of the coin, applying the defaults.
func (c CoinConfig) Limits() (rps, retries int) {
	rps, retries = c.RPS, c.Retries
	if rps <= 0 {
		rps = RPSDefault
	}

	if retries <= 0 {
		retries = RetriesDefault
	}

	return rps, retries
}
