package config

import (
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	OIDC     *OIDCConfig    `yaml:"oidc"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Sessions SessionConfig  `yaml:"sessions"`
	Redis    *RedisConfig   `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	Storage  StorageConfig  `yaml:"storage"`
	Delivery DeliveryConfig `yaml:"delivery"`
}

type ServerConfig struct {
	Port           int                `yaml:"port"`
	AssetsDir      string             `yaml:"assets_dir"`
	TrustedProxies []string           `yaml:"trusted_proxies"` // CIDRs or bare addresses
	Debug          *ServerDebugConfig `yaml:"debug"`
}

var DefaultServerConfig = ServerConfig{
	Port:           8080,
	AssetsDir:      "web/dist/assets",
	TrustedProxies: []string{"127.0.0.0/8", "::1/128", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"},
}

type ServerDebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Enabled: false,
	Host:    "localhost",
	Port:    5123,
}

type OIDCConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	IssuerURL    string   `yaml:"issuer_url"`
	RedirectURI  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
}

var DefaultOIDCConfig = OIDCConfig{
	Scopes: []string{"openid", "profile", "email"},
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds"`
}

var DefaultCORSConfig = CORSConfig{
	AllowedOrigins: []string{"http://localhost:5173"},
	AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders: []string{"*"},
	ExposedHeaders: []string{"Content-Disposition"},
	MaxAgeSeconds:  300,
}

type SessionConfig struct {
	Store        string        `yaml:"store"`
	FixedTimeout time.Duration `yaml:"fixed_timeout"`
	Name         string        `yaml:"name"`
	Secure       bool          `yaml:"secure"`
}

var DefaultSessionConfig = SessionConfig{
	Store:        "memory",
	FixedTimeout: 24 * time.Hour,
	Name:         "certportal_session",
	Secure:       true,
}

type RedisConfig struct {
	Address      string               `yaml:"address"`
	Username     string               `yaml:"username"`
	Password     string               `yaml:"password"`
	Sentinel     *RedisSentinelConfig `yaml:"sentinel"`
	SessionIndex int                  `yaml:"session_index"`
	CacheIndex   int                  `yaml:"cache_index"`
}

type RedisSentinelConfig struct {
	MasterName        string   `yaml:"master_name"`
	SentinelAddresses []string `yaml:"addresses"`
	SentinelPassword  string   `yaml:"password"`
	SentinelUsername  string   `yaml:"username"`
}

// CacheConfig controls the optional document type catalogue cache in front of the
// database. The default "none" re-queries storage on every request.
type CacheConfig struct {
	Type string        `yaml:"type"` // "memory", "redis", "hybrid" or "none"
	TTL  time.Duration `yaml:"ttl"`
}

var DefaultCacheConfig = CacheConfig{
	Type: CacheTypeNone,
	TTL:  5 * time.Minute,
}

const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
	CacheTypeHybrid = "hybrid"
	CacheTypeNone   = "none"
)

type StorageConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	Database      string `yaml:"database"`
	SSLMode       string `yaml:"ssl_mode"`
	RunMigrations bool   `yaml:"run_migrations"`
}

var DefaultStorageConfig = StorageConfig{
	Port:    5432,
	SSLMode: "prefer",
}

// DeliveryConfig drives the certificate pipeline: base URL selection, subject kinds,
// overlay composition and download auditing.
type DeliveryConfig struct {
	SiteURL         string        `yaml:"site_url"`
	ProductionURL   string        `yaml:"production_url"`
	StagingURL      string        `yaml:"staging_url"`
	StagingHost     string        `yaml:"staging_host"`
	StagingMarker   string        `yaml:"staging_marker"`
	PersonTypeCodes []string      `yaml:"person_type_codes"`
	LogoURL         string        `yaml:"logo_url"`
	AuditDownloads  bool          `yaml:"audit_downloads"`
	Overlay         OverlayConfig `yaml:"overlay"`
}

var DefaultDeliveryConfig = DeliveryConfig{
	StagingMarker:   "desa",
	PersonTypeCodes: []string{"personas"},
}

type OverlayConfig struct {
	Margin          float64       `yaml:"margin"`
	RasterScale     int           `yaml:"raster_scale"`
	RasterSource    string        `yaml:"raster_source"` // "remote" or "local"
	RasterPath      string        `yaml:"raster_path"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	ClientScriptURL string        `yaml:"client_script_url"`
}

var DefaultOverlayConfig = OverlayConfig{
	Margin:          30,
	RasterScale:     4,
	RasterSource:    RasterSourceRemote,
	RasterPath:      "/report/barcode",
	FetchTimeout:    10 * time.Second,
	ClientScriptURL: "/assets/js/qr_overlay.js",
}

const (
	RasterSourceRemote = "remote"
	RasterSourceLocal  = "local"
)
