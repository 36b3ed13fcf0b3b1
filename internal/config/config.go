package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config file path is required (use --config or -c)")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes raw YAML, applies environment overrides and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvironmentOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

const (
	EnvOIDCClientID          = "CERTPORTAL_OIDC_CLIENT_ID"
	EnvOIDCClientSecret      = "CERTPORTAL_OIDC_CLIENT_SECRET"
	EnvOIDCIssuerURL         = "CERTPORTAL_OIDC_ISSUER_URL"
	EnvOIDCRedirectURL       = "CERTPORTAL_OIDC_REDIRECT_URL"
	EnvRedisAddress          = "CERTPORTAL_REDIS_ADDRESS"
	EnvRedisPassword         = "CERTPORTAL_REDIS_PASSWORD"
	EnvRedisUsername         = "CERTPORTAL_REDIS_USERNAME"
	EnvRedisSentinelUsername = "CERTPORTAL_REDIS_SENTINEL_USERNAME"
	EnvRedisSentinelPassword = "CERTPORTAL_REDIS_SENTINEL_PASSWORD"
	EnvStorageHost           = "CERTPORTAL_STORAGE_HOST"
	EnvStoragePort           = "CERTPORTAL_STORAGE_PORT"
	EnvStorageUsername       = "CERTPORTAL_STORAGE_USERNAME"
	EnvStoragePassword       = "CERTPORTAL_STORAGE_PASSWORD"
	EnvStorageDatabase       = "CERTPORTAL_STORAGE_DATABASE"
	EnvDeliverySiteURL       = "CERTPORTAL_SITE_URL"
	EnvLogLevel              = "CERTPORTAL_LOG_LEVEL"
)

// envOverrides maps each variable onto the field it replaces. Setters create the
// optional sections they write into.
var envOverrides = []struct {
	name  string
	apply func(c *Config, value string)
}{
	{EnvOIDCClientID, func(c *Config, v string) { c.oidc().ClientID = v }},
	{EnvOIDCClientSecret, func(c *Config, v string) { c.oidc().ClientSecret = v }},
	{EnvOIDCIssuerURL, func(c *Config, v string) { c.oidc().IssuerURL = v }},
	{EnvOIDCRedirectURL, func(c *Config, v string) { c.oidc().RedirectURI = v }},
	{EnvRedisAddress, func(c *Config, v string) { c.redis().Address = v }},
	{EnvRedisPassword, func(c *Config, v string) { c.redis().Password = v }},
	{EnvRedisUsername, func(c *Config, v string) { c.redis().Username = v }},
	{EnvRedisSentinelUsername, func(c *Config, v string) { c.sentinel().SentinelUsername = v }},
	{EnvRedisSentinelPassword, func(c *Config, v string) { c.sentinel().SentinelPassword = v }},
	{EnvStorageHost, func(c *Config, v string) { c.Storage.Host = v }},
	{EnvStoragePort, func(c *Config, v string) {
		if port, err := strconv.Atoi(v); err == nil {
			c.Storage.Port = port
		}
	}},
	{EnvStorageUsername, func(c *Config, v string) { c.Storage.Username = v }},
	{EnvStoragePassword, func(c *Config, v string) { c.Storage.Password = v }},
	{EnvStorageDatabase, func(c *Config, v string) { c.Storage.Database = v }},
	{EnvDeliverySiteURL, func(c *Config, v string) { c.Delivery.SiteURL = v }},
	{EnvLogLevel, func(c *Config, v string) { c.Log.Level = strings.ToLower(v) }},
}

func applyEnvironmentOverrides(config *Config) {
	for _, o := range envOverrides {
		if value := os.Getenv(o.name); value != "" {
			o.apply(config, value)
		}
	}
}

func (c *Config) oidc() *OIDCConfig {
	if c.OIDC == nil {
		c.OIDC = &OIDCConfig{}
	}
	return c.OIDC
}

func (c *Config) redis() *RedisConfig {
	if c.Redis == nil {
		c.Redis = &RedisConfig{}
	}
	return c.Redis
}

func (c *Config) sentinel() *RedisSentinelConfig {
	r := c.redis()
	if r.Sentinel == nil {
		r.Sentinel = &RedisSentinelConfig{}
	}
	return r.Sentinel
}

// validateConfig fills defaults and rejects invalid values, section by section. Redis is
// only checked when something is configured to use it.
func validateConfig(config *Config) error {
	validators := []func() error{
		config.validateServerConfig,
		config.validateOIDCConfig,
		config.validateLogConfig,
		config.validateCORSConfig,
		config.validateSessionConfig,
		config.validateCacheConfig,
		func() error {
			if config.Sessions.Store != "redis" && !config.Cache.UsesRedis() {
				return nil
			}
			return config.validateRedisConfig()
		},
		config.validateStorageConfig,
		config.validateDeliveryConfig,
	}

	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerConfig.Port
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.AssetsDir == "" {
		c.Server.AssetsDir = DefaultServerConfig.AssetsDir
	}

	if c.Server.TrustedProxies == nil {
		c.Server.TrustedProxies = DefaultServerConfig.TrustedProxies
	}
	if _, err := ParseTrustedProxies(c.Server.TrustedProxies); err != nil {
		return err
	}

	if c.Server.Debug != nil && c.Server.Debug.Enabled {
		if c.Server.Debug.Host == "" {
			c.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if c.Server.Debug.Port <= 0 || c.Server.Debug.Port >= 65535 {
			c.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	return nil
}

// validateOIDCConfig is a no-op when the oidc section is absent; the portal then serves
// only the public download routes and the QR routes without a login requirement.
func (c *Config) validateOIDCConfig() error {
	if c.OIDC == nil {
		return nil
	}

	if c.OIDC.ClientID == "" {
		return fmt.Errorf("oidc client id is required")
	}

	if c.OIDC.ClientSecret == "" {
		return fmt.Errorf("oidc client secret is required")
	}

	if err := validateURL(c.OIDC.IssuerURL, "oidc.issuer_url"); err != nil {
		return err
	}

	if err := validateURL(c.OIDC.RedirectURI, "oidc.redirect_url"); err != nil {
		return err
	}

	if len(c.OIDC.Scopes) == 0 {
		c.OIDC.Scopes = DefaultOIDCConfig.Scopes
	}

	return nil
}

func (c *Config) validateLogConfig() error {
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig.Format
	} else {
		switch c.Log.Format {
		case "text", "json":
		default:
			return fmt.Errorf("invalid log format: %s, options are text or json", c.Log.Format)
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig.Level
	} else {
		switch c.Log.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log level: %s, options are debug, info, warn, error", c.Log.Level)
		}
	}

	return nil
}

func (c *Config) validateCORSConfig() error {
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = DefaultCORSConfig.AllowedOrigins
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = DefaultCORSConfig.AllowedMethods
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = DefaultCORSConfig.AllowedHeaders
	}
	if len(c.CORS.ExposedHeaders) == 0 {
		c.CORS.ExposedHeaders = DefaultCORSConfig.ExposedHeaders
	}
	if c.CORS.MaxAgeSeconds == 0 {
		c.CORS.MaxAgeSeconds = DefaultCORSConfig.MaxAgeSeconds
	}

	return nil
}

func (c *Config) validateSessionConfig() error {
	if c.Sessions.Store == "" {
		c.Sessions.Store = DefaultSessionConfig.Store
	} else {
		switch c.Sessions.Store {
		case "memory", "redis":
		default:
			return fmt.Errorf("invalid session store: %s, options are 'memory' or 'redis'", c.Sessions.Store)
		}
	}

	if c.Sessions.Name == "" {
		c.Sessions.Name = DefaultSessionConfig.Name
	}

	if c.Sessions.FixedTimeout == 0 {
		c.Sessions.FixedTimeout = DefaultSessionConfig.FixedTimeout
	} else if c.Sessions.FixedTimeout < time.Minute {
		return fmt.Errorf("sessions.fixed_timeout cannot be less than 1 minute")
	}

	return nil
}

func (c *Config) validateCacheConfig() error {
	if c.Cache.Type == "" {
		c.Cache.Type = DefaultCacheConfig.Type
	}

	switch c.Cache.Type {
	case CacheTypeMemory, CacheTypeRedis, CacheTypeHybrid, CacheTypeNone:
	default:
		return fmt.Errorf("invalid cache type: %s, options are memory, redis, hybrid or none", c.Cache.Type)
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheConfig.TTL
	} else if c.Cache.TTL < time.Second {
		return fmt.Errorf("cache.ttl cannot be less than 1 second")
	}

	return nil
}

// UsesRedis reports whether the cache type needs a redis connection.
func (c CacheConfig) UsesRedis() bool {
	return c.Type == CacheTypeRedis || c.Type == CacheTypeHybrid
}

func (c *Config) validateRedisConfig() error {
	if c.Redis == nil {
		return fmt.Errorf("redis configuration is required when sessions.store or cache.type use redis")
	}

	if c.Redis.Sentinel != nil {
		if c.Redis.Sentinel.MasterName == "" {
			return fmt.Errorf("sentinel master_name is required")
		}
		if len(c.Redis.Sentinel.SentinelAddresses) == 0 {
			return fmt.Errorf("at least one sentinel address is required")
		}
	} else {
		if c.Redis.Address == "" {
			return fmt.Errorf("redis address is required")
		}

		if _, _, err := net.SplitHostPort(c.Redis.Address); err != nil {
			return fmt.Errorf("invalid redis address format (expected host:port): %w", err)
		}
	}

	const maxRedisDB = 15
	if c.Redis.SessionIndex < 0 || c.Redis.SessionIndex > maxRedisDB {
		return fmt.Errorf("redis session_index must be between 0 and %d, got %d", maxRedisDB, c.Redis.SessionIndex)
	}
	if c.Redis.CacheIndex < 0 || c.Redis.CacheIndex > maxRedisDB {
		return fmt.Errorf("redis cache_index must be between 0 and %d, got %d", maxRedisDB, c.Redis.CacheIndex)
	}

	return nil
}

func (c *Config) validateStorageConfig() error {
	if c.Storage.Host == "" {
		return fmt.Errorf("storage.host is required")
	}

	if c.Storage.Port == 0 {
		c.Storage.Port = DefaultStorageConfig.Port
	}

	if c.Storage.Port < 0 || c.Storage.Port > 65535 {
		return fmt.Errorf("storage.port must be between 1 and 65535, got %d", c.Storage.Port)
	}

	if c.Storage.Database == "" {
		return fmt.Errorf("storage.database is required")
	}

	if c.Storage.SSLMode == "" {
		c.Storage.SSLMode = DefaultStorageConfig.SSLMode
	}

	return nil
}

func (c *Config) validateDeliveryConfig() error {
	d := &c.Delivery

	if err := validateURL(d.SiteURL, "delivery.site_url"); err != nil {
		return err
	}
	d.SiteURL = strings.TrimRight(d.SiteURL, "/")

	if d.ProductionURL != "" {
		if err := validateURL(d.ProductionURL, "delivery.production_url"); err != nil {
			return err
		}
		d.ProductionURL = strings.TrimRight(d.ProductionURL, "/")
	}

	if d.StagingURL != "" {
		if err := validateURL(d.StagingURL, "delivery.staging_url"); err != nil {
			return err
		}
		d.StagingURL = strings.TrimRight(d.StagingURL, "/")
	} else if d.StagingHost != "" {
		return fmt.Errorf("delivery.staging_url is required when delivery.staging_host is set")
	}

	if d.StagingMarker == "" {
		d.StagingMarker = DefaultDeliveryConfig.StagingMarker
	}

	if len(d.PersonTypeCodes) == 0 {
		d.PersonTypeCodes = DefaultDeliveryConfig.PersonTypeCodes
	}

	return c.validateOverlayConfig()
}

func (c *Config) validateOverlayConfig() error {
	o := &c.Delivery.Overlay

	if o.Margin == 0 {
		o.Margin = DefaultOverlayConfig.Margin
	} else if o.Margin < 0 {
		return fmt.Errorf("delivery.overlay.margin cannot be negative")
	}

	if o.RasterScale == 0 {
		o.RasterScale = DefaultOverlayConfig.RasterScale
	} else if o.RasterScale < 1 || o.RasterScale > 8 {
		return fmt.Errorf("delivery.overlay.raster_scale must be between 1 and 8, got %d", o.RasterScale)
	}

	switch o.RasterSource {
	case "":
		o.RasterSource = DefaultOverlayConfig.RasterSource
	case RasterSourceRemote, RasterSourceLocal:
	default:
		return fmt.Errorf("invalid delivery.overlay.raster_source: %s, options are 'remote' or 'local'", o.RasterSource)
	}

	if o.RasterPath == "" {
		o.RasterPath = DefaultOverlayConfig.RasterPath
	} else if !strings.HasPrefix(o.RasterPath, "/") {
		return fmt.Errorf("delivery.overlay.raster_path must start with '/'")
	}

	if o.FetchTimeout == 0 {
		o.FetchTimeout = DefaultOverlayConfig.FetchTimeout
	} else if o.FetchTimeout < 0 || o.FetchTimeout > time.Minute {
		return fmt.Errorf("delivery.overlay.fetch_timeout must be between 0 and 1 minute")
	}

	if o.ClientScriptURL == "" {
		o.ClientScriptURL = DefaultOverlayConfig.ClientScriptURL
	}

	return nil
}
