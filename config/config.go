package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Tts      TtsConfig      `mapstructure:"tts"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	CorsOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AudioConfig struct {
	Dir string `mapstructure:"dir"`
}

type TtsConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	// VoicesLanguage narrows GET /voices when the client sends no language
	// filter. Empty means all languages.
	VoicesLanguage string `mapstructure:"voices_language"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", "3000")
	viper.SetDefault("server.cors_origins", []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:5174",
	})
	viper.SetDefault("database.path", "./voicelab.db")
	viper.SetDefault("audio.dir", "./audio")
	viper.SetDefault("tts.credentials_file", "./google-credentials.json")
	viper.SetDefault("tts.voices_language", "")
	viper.SetDefault("log.level", "info")

	viper.BindEnv("tts.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("server.port", "PORT")

	// Allow environment variables
	viper.SetEnvPrefix("VOICELAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
