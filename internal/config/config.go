package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Game     GameConfig
	Wallet   WalletConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// GameConfig holds game-engine configuration
type GameConfig struct {
	DealDelayMS     int
	TicketsPerSheet int
	HouseSheetCount int
	AdminEmail      string
}

// WalletConfig bounds the optimistic retry loop around balance writes and
// sets the signup referral bonus
type WalletConfig struct {
	RetryAttempts  int
	RetryBackoffMS int
	ReferralBonus  float64
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// config file is optional; environment variables cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("Server.Port", "8080")
	viper.SetDefault("Server.AllowedHosts", []string{"*"})

	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "tambola")

	viper.SetDefault("JWT.Secret", "")
	viper.SetDefault("JWT.ExpiresIn", 24)

	viper.SetDefault("Game.DealDelayMS", 45000)
	viper.SetDefault("Game.TicketsPerSheet", 6)
	viper.SetDefault("Game.HouseSheetCount", 3)
	viper.SetDefault("Game.AdminEmail", "house@tambola.local")

	viper.SetDefault("Wallet.RetryAttempts", 32)
	viper.SetDefault("Wallet.RetryBackoffMS", 5)
	viper.SetDefault("Wallet.ReferralBonus", 5)

	viper.SetDefault("LogLevel", "info")
}
