// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	dbPath            = pflag.String("db-path", "", "Overrides the SQLite database path")
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validStorageTypes = []string{"s3", "local"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	// The test binary passes its own -test.* flags
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("database.path", "database_path")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.expiry_days", "jwt_expires_in_days")

	v.BindEnv("upload.dir", "upload_dir")
	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("storage.type", "storage_type")

	v.BindEnv("s3.region", "s3_region")
	v.BindEnv("s3.bucket", "s3_bucket")
	v.BindEnv("s3.access_key_id", "s3_access_key_id")
	v.BindEnv("s3.secret_access_key", "s3_secret_access_key")

	v.BindEnv("rate_limit.rps", "rate_limit_rps")
	v.BindEnv("rate_limit.burst", "rate_limit_burst")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("database.path", "security.db")

	v.SetDefault("jwt.expiry_days", 7)

	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size", 25)

	v.SetDefault("storage.type", "local")

	v.SetDefault("rate_limit.rps", 5)
	v.SetDefault("rate_limit.burst", 10)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional since every key can come from
		// the environment
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("database.path") == "" {
		return errors.New("database path can't be empty")
	}

	if *dbPath != "" {
		v.Set("database.path", *dbPath)
	}

	if v.GetInt("jwt.expiry_days") <= 0 {
		return errors.New("jwt.expiry_days must be bigger than 0")
	}

	// A missing secret isn't fatal here. Login and token verification
	// answer with a 500 until one is configured
	if v.GetString("jwt.secret") == "" {
		zap.L().Warn("No jwt.secret configured, authentication endpoints will refuse to work until one is set")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if !slices.Contains(validStorageTypes, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	switch v.GetString("storage.type") {
	case "s3":
		if v.GetString("s3.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
		if v.GetString("s3.access_key_id") == "" {
			return errors.New("access key id can't be empty")
		}
		if v.GetString("s3.secret_access_key") == "" {
			return errors.New("secret access key can't be empty")
		}
	case "local":
		if v.GetString("upload.dir") == "" {
			return errors.New("upload directory can't be empty")
		}
	}

	if v.GetInt("rate_limit.rps") <= 0 || v.GetInt("rate_limit.burst") <= 0 {
		return errors.New("rate limit settings must be bigger than 0")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
