package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/gantry/store"
	"github.com/josephgoksu/gantry/types"
)

const (
	configName = ".gantry"
	envPrefix  = "GANTRY"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	if errs := validate.Struct(config); errs != nil {
		return errs
	}
	return nil
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present
	if err := godotenv.Load(); err != nil {
		// It's okay if .env file doesn't exist.
		LogError("no .env file loaded", err)
	}

	// Environment variable handling must be set up BEFORE reading the config
	// file so that env vars can influence config loading.
	viper.SetEnvPrefix(envPrefix)                          // e.g., GANTRY_VERBOSE
	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // Replace dots with underscores in env var names

	cfgFileFlag := viper.GetString("config") // Value from --config flag

	if cfgFileFlag != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFileFlag)
	} else {
		// Look for .gantry.yml inside the workspace directory, preferring
		// the local workspace over the home one the same way workspace
		// discovery does.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(filepath.Join(".", store.DefaultDirName))
		viper.AddConfigPath(filepath.Join(home, store.DefaultDirName))
		viper.SetConfigName(configName)
	}

	// Attempt to read the configuration file.
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				// A config file named by flag but missing is worth reporting.
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			// Config file was found but another error was produced (e.g., parsing error).
			PrintError(fmt.Sprintf("Error reading config file: %s", viper.ConfigFileUsed()), err)
		}
	}

	// Set default values
	viper.SetDefault("workspace.directory", "")
	viper.SetDefault("workspace.itemsFile", "items.txt")
	viper.SetDefault("workspace.logsFile", "logs.txt")
	viper.SetDefault("backup.retention", 3)
	viper.SetDefault("flow.directory", "")
	viper.SetDefault("flow.author", "")
	viper.SetDefault("output.quiet", false)
	viper.SetDefault("output.json", false)

	// After all sources are configured, unmarshal into GlobalAppConfig
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		HandleFatalError("Error: Unable to parse the configuration.", err)
	}

	// Empty nested keys in a config file must not wipe out the defaults.
	if GlobalAppConfig.Workspace.ItemsFile == "" {
		GlobalAppConfig.Workspace.ItemsFile = viper.GetString("workspace.itemsFile")
	}
	if GlobalAppConfig.Workspace.LogsFile == "" {
		GlobalAppConfig.Workspace.LogsFile = viper.GetString("workspace.logsFile")
	}
	if GlobalAppConfig.Backup.Retention == 0 {
		GlobalAppConfig.Backup.Retention = viper.GetInt("backup.retention")
	}

	// Validate the populated configuration
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		HandleFatalError("Error: Invalid configuration values.", err)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
