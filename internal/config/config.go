package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpAddr        string        `yaml:"http_addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	JwtTTL         time.Duration `yaml:"jwt_ttl"`
	LoginPath      string        `yaml:"login_path"` // where guests are redirected from protected routes
	SecureCookies  bool          `yaml:"secure_cookies"`
	AllowedOrigins []string      `yaml:"allowed_origins"`

	AdminEmails []string `yaml:"admin_emails"` // accounts registered with these emails get admin rights

	// "owner" (default) or "owner_or_admin"
	ThreadDeletionPolicy string `yaml:"thread_deletion_policy"`

	ThreadsPerMinute float64 `yaml:"threads_per_minute"` // per user, 0 disables
	RepliesPerMinute float64 `yaml:"replies_per_minute"` // per user, 0 disables

	LogLevel       string `yaml:"log_level"`
	LogJSON        bool   `yaml:"log_json"`
	MigrateOnStart bool   `yaml:"migrate_on_start"`
}

type Pg struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Dbname       string        `yaml:"dbname"`
	SSLMode      string        `yaml:"sslmode"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxLifetime  time.Duration `yaml:"max_lifetime"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key"`
}

const (
	DeleteOwner        = "owner"
	DeleteOwnerOrAdmin = "owner_or_admin"
)

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func (p Pg) DSN() string {
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Dbname, sslMode)
}

func (s *Config) setDefaults() {
	if s.Public.HttpAddr == "" {
		s.Public.HttpAddr = ":8080"
	}
	if s.Public.ReadTimeout == 0 {
		s.Public.ReadTimeout = 10 * time.Second
	}
	if s.Public.WriteTimeout == 0 {
		s.Public.WriteTimeout = 10 * time.Second
	}
	if s.Public.ShutdownTimeout == 0 {
		s.Public.ShutdownTimeout = 15 * time.Second
	}
	if s.Public.JwtTTL == 0 {
		s.Public.JwtTTL = 24 * time.Hour
	}
	if s.Public.LoginPath == "" {
		s.Public.LoginPath = "/login"
	}
	if s.Public.ThreadDeletionPolicy == "" {
		s.Public.ThreadDeletionPolicy = DeleteOwner
	}
	if s.Private.Pg.Port == 0 {
		s.Private.Pg.Port = 5432
	}
	if s.Private.Pg.MaxOpenConns == 0 {
		s.Private.Pg.MaxOpenConns = 25
	}
	if s.Private.Pg.MaxIdleConns == 0 {
		s.Private.Pg.MaxIdleConns = 5
	}
	if s.Private.Pg.MaxLifetime == 0 {
		s.Private.Pg.MaxLifetime = 5 * time.Minute
	}
}

func (s *Config) Validate() error {
	switch s.Public.ThreadDeletionPolicy {
	case DeleteOwner, DeleteOwnerOrAdmin:
	default:
		return fmt.Errorf("unknown thread_deletion_policy %q", s.Public.ThreadDeletionPolicy)
	}
	if s.Private.JwtKey == "" {
		return errors.New("jwt_key is required")
	}
	if s.Public.ThreadsPerMinute < 0 || s.Public.RepliesPerMinute < 0 {
		return errors.New("rate limits must not be negative")
	}
	return nil
}

// overrideFromEnv lets deployments keep secrets out of private.yaml.
func (s *Config) overrideFromEnv() {
	if v := os.Getenv("FORUM_JWT_KEY"); v != "" {
		s.Private.JwtKey = v
	}
	if v := os.Getenv("FORUM_PG_HOST"); v != "" {
		s.Private.Pg.Host = v
	}
	if v := os.Getenv("FORUM_PG_PASSWORD"); v != "" {
		s.Private.Pg.Password = v
	}
	if v := os.Getenv("FORUM_PG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			s.Private.Pg.Port = port
		}
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder.
// An optional .env in the same folder is loaded into the environment first.
func MustLoad(configFolder string) *Config {
	if err := godotenv.Load(path.Join(configFolder, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("can't load .env: " + err.Error())
	}

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	cfg.overrideFromEnv()
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}
