package config

import (
	"errors"
	"io/fs"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override settings,
// e.g. ALBUMART_DOWNLOADS_PATH.
const EnvPrefix = "ALBUMART"

// configName is the base name of the config file searched in the home directory.
const configName = ".albumart"

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadsPath  string  `mapstructure:"downloads_path"`
	RequestTimeout float64 `mapstructure:"request_timeout"`
	UserAgent      string  `mapstructure:"user_agent"`

	// Link list settings
	LinksFile     string `mapstructure:"links_file"`
	LinkDelimiter string `mapstructure:"link_delimiter"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DownloadsPath:  "album_arts",
		RequestTimeout: 60,
		UserAgent:      "AlbumArtDownloader",

		LinksFile:     "links.txt",
		LinkDelimiter: ", ",
	}
}

// Timeout returns RequestTimeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout * float64(time.Second))
}

// Load reads settings from a config file and the environment.
//
// If path is empty, ~/.albumart.{yaml,json,toml} is used when present.
// A missing config file is not an error: defaults apply. Environment
// variables prefixed with EnvPrefix override both.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(home)
		v.SetConfigName(configName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && errors.Is(err, fs.ErrNotExist)) {
			return nil, err
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("downloads_path", s.DownloadsPath)
	v.SetDefault("request_timeout", s.RequestTimeout)
	v.SetDefault("user_agent", s.UserAgent)
	v.SetDefault("links_file", s.LinksFile)
	v.SetDefault("link_delimiter", s.LinkDelimiter)
}
