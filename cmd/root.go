package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "company-scout"
)

type Config struct {
	OutputDir     string        `mapstructure:"output-dir"`
	CandidateFile string        `mapstructure:"candidate-file"`
	Hunter        *HunterConfig `mapstructure:"hunter"`
	Search        *SearchConfig `mapstructure:"search"`
	Report        *ReportConfig `mapstructure:"report"`
	AI            *AIConfig     `mapstructure:"ai"`
}

type HunterConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type SearchConfig struct {
	Perplexity *PerplexityConfig `mapstructure:"perplexity"`
	OpenRouter *OpenRouterConfig `mapstructure:"openrouter"`
}

type PerplexityConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type OpenRouterConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type ReportConfig struct {
	PDF bool `mapstructure:"pdf"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "company-scout is a simple cli for researching companies before applying to them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"hunter.api-key":            "HUNTER_API_KEY",
		"search.perplexity.api-key": "PERPLEXITY_API_KEY",
		"search.openrouter.api-key": "OPENROUTER_API_KEY",
		"ai.gemini.api-key":         "GEMINI_API_KEY",
		"ai.gemini.api-key-file":    "GEMINI_API_KEY_FILE",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is company-scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("output-dir", "outputs")
	viper.SetDefault("query-delay", "1s")
	viper.SetDefault("report.pdf", true)
}

func initConfig() {
	// Secrets are commonly kept in a .env file next to the binary. Missing
	// file is fine, the environment itself may carry the keys.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, everything can come from flags and
	// environment variables. A present but unparseable file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
