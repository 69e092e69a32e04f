// config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Neo4j         DatabaseConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
	Commerce      CommerceConfiguration
	Site          SiteConfiguration
	Protection    ProtectionConfiguration
	Auth          AuthConfiguration
	RateLimit     RateLimitConfiguration
	Log           LogConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// DatabaseConfiguration stores data for database connection
type DatabaseConfiguration struct {
	URI      string
	Username string
	Password string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr            string
	Password        string
	DB              int
	NonceTTL        string
	DefaultCacheTTL string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL   string
	Index string
}

// CommerceConfiguration points at the store owned by the commerce extension.
type CommerceConfiguration struct {
	DSN            string
	ShopURL        string
	ProductBaseURL string
}

// SiteConfiguration holds host URLs used when building call-to-action links.
type SiteConfiguration struct {
	LoginURL      string
	NewProductURL string
}

// ProtectionConfiguration tunes the protection surfaces.
type ProtectionConfiguration struct {
	DefaultMessage string
	ContentTypes   []string
	ShortcodeTags  []string
	BlockName      string
}

// AuthConfiguration holds the shared secret used to verify session tokens
// and the cookie browser form posts carry them in.
type AuthConfiguration struct {
	JWTSecret     string
	SessionCookie string
}

// RateLimitConfiguration stores the per-client request budget.
type RateLimitConfiguration struct {
	Requests int
	Window   string
}

type LogConfiguration struct {
	Dir string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// REDIS_ADDR overrides redis.addr and so on.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	return viper.Unmarshal(&config)
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("neo4j.username", "neo4j")
	viper.SetDefault("neo4j.password", "")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.nonceTTL", "24h")
	viper.SetDefault("redis.defaultCacheTTL", "10m")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("elasticsearch.index", "protection-audit")
	viper.SetDefault("commerce.dsn", "file:commerce.db?mode=ro")
	viper.SetDefault("commerce.shopURL", "/shop/")
	viper.SetDefault("commerce.productBaseURL", "/product/")
	viper.SetDefault("site.loginURL", "/wp-login.php")
	viper.SetDefault("site.newProductURL", "/wp-admin/post-new.php?post_type=product")
	viper.SetDefault("protection.defaultMessage", "This content is protected and requires an active subscription to view.")
	viper.SetDefault("protection.contentTypes", []string{"post", "page"})
	viper.SetDefault("protection.shortcodeTags", []string{"protect", "wbcom_subscription_protection"})
	viper.SetDefault("protection.blockName", "wbcom/subscription-protection")
	viper.SetDefault("auth.jwtSecret", "")
	viper.SetDefault("auth.sessionCookie", "wcsp_session")
	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.window", "1m")
	viper.SetDefault("log.dir", "logging")
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}
