// Package config resolves the command line tool's settings.
//
// Values are layered, lowest precedence first: built-in defaults, an optional
// config file (yaml, json or toml), S3UPLOAD_* environment variables, and
// finally flags set explicitly on the command line.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/s3types"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "S3UPLOAD"

// Setting keys. Each matches the long name of its command line flag.
const (
	KeyDist           = "dist"
	KeyFile           = "file"
	KeyBucket         = "bucket"
	KeyAccessKey      = "access-key"
	KeySecretKey      = "secret-key"
	KeyEndpoint       = "endpoint"
	KeyRegion         = "region"
	KeyPrefix         = "prefix"
	KeyForcePathStyle = "force-path-style"
	KeyConcurrency    = "concurrency"
	KeyContentType    = "content-type"
	KeyDetectContent  = "detect-content"
	KeyDryRun         = "dry-run"
	KeyExclude        = "exclude"
	KeyDriver         = "driver"
	KeyTimeout        = "timeout"
	KeyLogLevel       = "log-level"
	KeyLogTimestamps  = "log-timestamps"
	KeyQuiet          = "quiet"
)

// Config holds every setting of one run.
type Config struct {
	// Dist is the folder to upload (folder mode)
	Dist string

	// File is the single file to upload (single-file mode)
	File string

	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Prefix    string

	ForcePathStyle bool
	Concurrency    int

	// ContentType overrides the detected content type in single-file mode
	ContentType   string
	DetectContent bool
	DryRun        bool
	Exclude       []string
	Driver        string
	Timeout       time.Duration

	LogLevel      string
	LogTimestamps bool
	Quiet         bool
}

// FolderMode reports whether the run uploads a folder rather than a single file.
func (c *Config) FolderMode() bool {
	return c.Dist != ""
}

// Load resolves the configuration.
// configFile may be empty. overrides holds the flags the user set explicitly, keyed by setting key.
func Load(configFile string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	return &Config{
		Dist:           v.GetString(KeyDist),
		File:           v.GetString(KeyFile),
		Bucket:         v.GetString(KeyBucket),
		AccessKey:      v.GetString(KeyAccessKey),
		SecretKey:      v.GetString(KeySecretKey),
		Endpoint:       v.GetString(KeyEndpoint),
		Region:         v.GetString(KeyRegion),
		Prefix:         v.GetString(KeyPrefix),
		ForcePathStyle: v.GetBool(KeyForcePathStyle),
		Concurrency:    v.GetInt(KeyConcurrency),
		ContentType:    v.GetString(KeyContentType),
		DetectContent:  v.GetBool(KeyDetectContent),
		DryRun:         v.GetBool(KeyDryRun),
		Exclude:        v.GetStringSlice(KeyExclude),
		Driver:         v.GetString(KeyDriver),
		Timeout:        v.GetDuration(KeyTimeout),
		LogLevel:       v.GetString(KeyLogLevel),
		LogTimestamps:  v.GetBool(KeyLogTimestamps),
		Quiet:          v.GetBool(KeyQuiet),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRegion, s3types.DefaultRegion)
	v.SetDefault(KeyPrefix, "")
	v.SetDefault(KeyForcePathStyle, true)
	v.SetDefault(KeyConcurrency, s3types.DefaultConcurrency)
	v.SetDefault(KeyDriver, string(s3types.DriverAWS))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTimeout, time.Duration(0))
}

// Missing returns the flag names of required settings that are empty.
func (c *Config) Missing() []string {
	var missing []string

	if c.Dist == "" && c.File == "" {
		missing = append(missing, "--dist (or --file)")
	}
	if c.Bucket == "" {
		missing = append(missing, "--bucket")
	}
	if c.AccessKey == "" {
		missing = append(missing, "--access-key")
	}
	if c.SecretKey == "" {
		missing = append(missing, "--secret-key")
	}

	return missing
}

// Validate checks the configuration once at startup.
// Every missing required setting is reported in a single error wrapping ErrMissingParameter.
func (c *Config) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", errors.ErrMissingParameter, strings.Join(missing, ", "))
	}

	if c.Dist != "" && c.File != "" {
		return fmt.Errorf("%w: --dist and --file are mutually exclusive", errors.ErrInvalidInput)
	}

	if c.ContentType != "" && c.FolderMode() {
		return fmt.Errorf("%w: --content-type only applies to --file", errors.ErrInvalidInput)
	}

	switch s3types.Driver(c.Driver) {
	case s3types.DriverAWS, s3types.DriverMinio:
	default:
		return fmt.Errorf("%w: unknown driver %q", errors.ErrInvalidInput, c.Driver)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", errors.ErrInvalidInput)
	}

	if err := validation.ValidateBucketName(c.Bucket); err != nil {
		return err
	}
	if err := validation.ValidateConcurrency(c.Concurrency); err != nil {
		return err
	}
	return validation.ValidateContentType(c.ContentType)
}
