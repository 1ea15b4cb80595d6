package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// StorageConfig describes both persistence backends. PrimaryEnabled=false
// forces the wrapper straight into fallback mode.
type StorageConfig struct {
	PrimaryEnabled bool          `yaml:"primaryEnabled"`
	PrimaryPath    string        `yaml:"primaryPath" validate:"required|unixPath"`
	OpenTimeout    time.Duration `yaml:"openTimeout"`
	LegacyPath     string        `yaml:"legacyPath" validate:"required|unixPath"`
}

type MigrationConfig struct {
	Enabled  bool   `yaml:"enabled"`
	ProbeKey string `yaml:"probeKey"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ShareConfig struct {
	BaseURL      string        `yaml:"baseURL"`
	PollInterval time.Duration `yaml:"pollInterval"`
}

type RemoteConfig struct {
	Backend   string `yaml:"backend" validate:"required|in:file,s3"`
	FilePath  string `yaml:"filePath"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Prefix    string `yaml:"prefix"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Logger    LoggerConfig    `yaml:"logger"`
	Storage   StorageConfig   `yaml:"storage"`
	Migration MigrationConfig `yaml:"migration"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Share     ShareConfig     `yaml:"share"`
	Remote    RemoteConfig    `yaml:"remote"`
}
