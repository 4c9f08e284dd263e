package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	col "github.com/bitcoinfees/auctionsim/collect"
	"github.com/bitcoinfees/auctionsim/collect/mempoolspace"
	"github.com/bitcoinfees/auctionsim/sim"
)

const (
	defaultConfigFileName = "config.yml"
	configFileEnv         = "AUCTIONSIM_CONFIG"
	dataDirEnv            = "AUCTIONSIM_DATADIR"
)

var (
	defaultAuctionSimConfig = AuctionSimConfig{
		Collect: col.Config{
			PollPeriod: 30,
		},
		Sim: sim.DefaultConfig(),
	}
	defaultConfig = config{
		AuctionSimConfig: defaultAuctionSimConfig,
		Mempool: mempoolspace.Config{
			URL:     mempoolspace.DefaultURL,
			Timeout: 10,
		},
		AppRPC: AppRPCConfig{
			Host: "localhost",
			Port: "8360",
		},
		DataDir: AppDataDir("auctionsim", false),
	}
	defaultConfigFile  = filepath.Join(defaultConfig.DataDir, defaultConfigFileName)
	defaultLogFileName = "auctionsim.log"
)

type config struct {
	AuctionSimConfig `yaml:",inline"`
	Mempool          mempoolspace.Config `yaml:"mempool" json:"mempool"`
	AppRPC           AppRPCConfig        `yaml:"apprpc" json:"apprpc"`
	DataDir          string              `yaml:"datadir" json:"datadir"`
	LogFile          string              `yaml:"logfile" json:"logfile"`
}

type AppRPCConfig struct {
	Host string `json:"host" yaml:"host"`
	Port string `json:"port" yaml:"port"`
}

// loadConfig loads the config. The input arguments specify the path to the
// config file / data directory.
// They can also be specified through env variables (configFileEnv / dataDirEnv),
// with lower precedence.
// If not specified, they are set to default values.
func loadConfig(configFile, dataDir string) (config, error) {
	cfg := defaultConfig

	if configFile == "" {
		configFile = os.Getenv(configFileEnv)
	}
	if dataDir == "" {
		dataDir = os.Getenv(dataDirEnv)
	}

	if configFile != "" {
		// Config file was specified explicitly, so return an error if it
		// couldn't be read.
		if c, err := ioutil.ReadFile(configFile); err != nil {
			return cfg, err
		} else if err := yaml.Unmarshal(c, &cfg); err != nil {
			return cfg, err
		}
	} else {
		// Check the default config file location. No error if it couldn't be
		// read, but error if the yaml could not be unmarshaled.
		if dataDir == "" {
			configFile = defaultConfigFile
		} else {
			configFile = filepath.Join(dataDir, defaultConfigFileName)
		}
		if c, err := ioutil.ReadFile(configFile); err == nil {
			if err := yaml.Unmarshal(c, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	// dataDir specified by env or input argument takes precedence
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, defaultLogFileName)
	}

	// Create the datadir if not exists
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return cfg, err
	}

	return cfg, nil
}
