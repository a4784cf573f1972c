package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "25M"
	defaultAccessTTL          = 15 * time.Minute
	defaultRefreshTTL         = 10 * 24 * time.Hour
	defaultBcryptCost         = 10
	defaultMaxUploadSize      = 10 << 20
	defaultKeyPrefix          = "uploads"
	defaultMetricsPath        = "/metrics"
)

// Store drivers.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		CORSAllowOrigins   []string `json:"corsAllowOrigins" yaml:"corsAllowOrigins"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Store StoreConfig `json:"store" yaml:"store"`

	Mongo *MongoConfig `json:"mongo" yaml:"mongo"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Token TokenConfig `json:"token" yaml:"token"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Cookie CookieConfig `json:"cookie" yaml:"cookie"`

	Media MediaConfig `json:"media" yaml:"media"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	QRCode *QRCodeConfig `json:"qrCode" yaml:"qrCode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StoreConfig selects the credential store backend.
type StoreConfig struct {
	// Driver is one of "mongo", "postgres" or "memory".
	Driver string `json:"driver" yaml:"driver"`
	// SlowQueryThreshold marks SQL statements logged as slow.
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

// MongoConfig configures the document store.
type MongoConfig struct {
	URI            string        `json:"uri" yaml:"uri"`
	Database       string        `json:"database" yaml:"database"`
	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
	// ConnectRetries bounds the startup ping attempts.
	ConnectRetries uint64 `json:"connectRetries" yaml:"connectRetries"`
}

// TokenConfig holds token lifetimes.
type TokenConfig struct {
	AccessTTL  time.Duration `json:"accessTTL" yaml:"accessTTL"`
	RefreshTTL time.Duration `json:"refreshTTL" yaml:"refreshTTL"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// CookieConfig controls the session cookies.
type CookieConfig struct {
	Secure   bool   `json:"secure" yaml:"secure"`
	SameSite string `json:"sameSite" yaml:"sameSite"`
	Domain   string `json:"domain" yaml:"domain"`
	Path     string `json:"path" yaml:"path"`
}

// MediaConfig points at the bucket that hosts avatars and covers.
type MediaConfig struct {
	// BucketURL is a gocloud.dev URL, e.g. file:///var/vidhub/media,
	// s3://bucket?region=eu-west-1 or gs://bucket.
	BucketURL string `json:"bucketURL" yaml:"bucketURL"`
	// PublicBaseURL prefixes object keys to form the URL handed to clients.
	PublicBaseURL string `json:"publicBaseURL" yaml:"publicBaseURL"`
	// TempDir receives multipart uploads before they are pushed to the bucket.
	TempDir     string `json:"tempDir" yaml:"tempDir"`
	MaxFileSize int64  `json:"maxFileSize" yaml:"maxFileSize"`
	KeyPrefix   string `json:"keyPrefix" yaml:"keyPrefix"`
}

// RateLimitConfig throttles the unauthenticated auth endpoints per client IP.
type RateLimitConfig struct {
	Enabled           bool          `json:"enabled" yaml:"enabled"`
	RequestsPerSecond float64       `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	Burst             int           `json:"burst" yaml:"burst"`
	CacheSize         int           `json:"cacheSize" yaml:"cacheSize"`
	TTL               time.Duration `json:"ttl" yaml:"ttl"`
}

// MetricsConfig exposes the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// QRCodeConfig shapes the channel share codes.
type QRCodeConfig struct {
	Size int `json:"size" yaml:"size"`
	// RecoveryLevel is one of L, M, Q, H.
	RecoveryLevel string `json:"recoveryLevel" yaml:"recoveryLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	configFile, found := findConfigFile(searchPaths, currEnv+".yaml")
	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// SECRETKEY_ACCESS -> secretKey.access, aligned with the keys already in the YAML.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func findConfigFile(searchPaths []string, name string) (string, bool) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}

// New loads config.yaml, applies defaults and validates the result.
func New() (*Config, error) {
	return NewFromPaths()
}

// NewFromPaths is New with extra directories searched for config.yaml,
// relative to the working directory.
func NewFromPaths(extra ...string) (*Config, error) {
	paths := append([]string{"config", "../config", "../../config"}, extra...)

	cfg, err := LoadWithEnv[Config]("config", paths...)
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills every value the YAML left empty.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.Store.Driver == "" {
		c.Store.Driver = StoreMongo
	}
	if c.Token.AccessTTL <= 0 {
		c.Token.AccessTTL = defaultAccessTTL
	}
	if c.Token.RefreshTTL <= 0 {
		c.Token.RefreshTTL = defaultRefreshTTL
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}
	if c.Cookie.Path == "" {
		c.Cookie.Path = "/"
	}
	if c.Media.TempDir == "" {
		c.Media.TempDir = filepath.Join(os.TempDir(), "vidhub-uploads")
	}
	if c.Media.MaxFileSize <= 0 {
		c.Media.MaxFileSize = defaultMaxUploadSize
	}
	if c.Media.KeyPrefix == "" {
		c.Media.KeyPrefix = defaultKeyPrefix
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = defaultMetricsPath
	}
}

// Validate reports configuration that would make the service unusable.
func (c *Config) Validate() error {
	if c.SecretKey.Access == "" || c.SecretKey.Refresh == "" {
		return errors.New("secretKey.access and secretKey.refresh must be set")
	}
	if c.SecretKey.Access == c.SecretKey.Refresh {
		return errors.New("secretKey.access and secretKey.refresh must differ")
	}
	if c.Media.BucketURL == "" {
		return errors.New("media.bucketURL must be set")
	}

	switch c.Store.Driver {
	case StoreMongo:
		if c.Mongo == nil || c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("mongo.uri and mongo.database must be set for the mongo store")
		}
	case StorePostgres:
		if c.Postgres == nil {
			return errors.New("postgres must be configured for the postgres store")
		}
	case StoreMemory:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
