package configuration

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c, err := Load([]string{".env", ".env.local"})
	if err != nil {
		panic(err)
	}
	return c
})

// LoadEnv loads the env files found in the working directory. When none is
// found there it tries the nearest parent directory holding a go.mod.
func LoadEnv(envFiles []string) (int, error) {
	existing := existingFiles("", envFiles)
	if len(existing) == 0 {
		if root, ok := moduleRoot(); ok {
			existing = existingFiles(root, envFiles)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func existingFiles(dir string, envFiles []string) []string {
	out := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		path := file
		if dir != "" {
			path = filepath.Join(dir, file)
		}
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			out = append(out, path)
		}
	}
	return out
}

func moduleRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type PortalOptions struct {
	BaseURL       string        `env:"PORTAL_BASE_URL" envDefault:"http://localhost:8000"`
	SessionCookie string        `env:"PORTAL_SESSION_COOKIE" envDefault:"sessionid"`
	SessionID     string        `env:"PORTAL_SESSION_ID"`
	CSRFToken     string        `env:"PORTAL_CSRF_TOKEN"`
	CSRFCookie    string        `env:"PORTAL_CSRF_COOKIE" envDefault:"csrftoken"`
	CSRFPage      string        `env:"PORTAL_CSRF_PAGE" envDefault:"/"`
	Timeout       time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	RateLimit     string        `env:"PORTAL_RATE_LIMIT" envDefault:"20-S"`
	// Id of the signed-in user; decides who may cancel a request.
	UserID int64 `env:"PORTAL_USER_ID" envDefault:"0"`
}

func (p *PortalOptions) Validate() error {
	u, err := url.Parse(strings.TrimSpace(p.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid PORTAL_BASE_URL=%q", p.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("PORTAL_BASE_URL scheme must be http or https, got %q", u.Scheme)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", p.Timeout)
	}
	return nil
}

type NotificationOptions struct {
	PollInterval time.Duration `env:"NOTIFICATIONS_POLL_INTERVAL" envDefault:"30s"`
	MetricsAddr  string        `env:"METRICS_ADDR" envDefault:""`
	MetricsPath  string        `env:"METRICS_PATH" envDefault:"/debug/prometheus"`
}

type CheckinOptions struct {
	MaxPhotoSize  int64 `env:"MAX_PHOTO_SIZE" envDefault:"5242880"`
	MaxPhotoWidth int   `env:"MAX_PHOTO_WIDTH" envDefault:"1280"`
	JPEGQuality   int   `env:"JPEG_QUALITY" envDefault:"85"`
}

type Configuration struct {
	Portal        PortalOptions
	Notifications NotificationOptions
	Checkin       CheckinOptions

	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	PageSize         int    `env:"PAGE_SIZE" envDefault:"10"`
	MaxPageSize      int    `env:"MAX_PAGE_SIZE" envDefault:"100"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	LogPath          string `env:"LOG_PATH" envDefault:""`
	Language         string `env:"CHAMCONG_LANG" envDefault:"vi"`
	// Sent with a fresh uuid on every portal request.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func Use() *Configuration {
	return singleton()
}

// Load parses a fresh configuration. Use() memoizes the result for the
// process; tests call Load directly.
func Load(envFiles []string) (*Configuration, error) {
	c := &Configuration{}
	if err := c.load(envFiles); err != nil {
		c.Unload()
		return nil, err
	}
	return c, nil
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 && os.Getenv("GO_APP_ENV") == Production {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if strings.TrimSpace(c.LogPath) == "" {
		c.logger = logging.ConsoleLogger(c.LogrusLogLevel())
		return nil
	}
	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger
	return nil
}

func (c *Configuration) Validate() error {
	if err := c.Portal.Validate(); err != nil {
		return err
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.MaxPageSize < c.PageSize {
		return fmt.Errorf("MAX_PAGE_SIZE=%d is smaller than PAGE_SIZE=%d", c.MaxPageSize, c.PageSize)
	}
	if c.Notifications.PollInterval < time.Second {
		return fmt.Errorf("NOTIFICATIONS_POLL_INTERVAL must be at least 1s, got %s", c.Notifications.PollInterval)
	}
	if c.Checkin.JPEGQuality < 1 || c.Checkin.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be within 1..100, got %d", c.Checkin.JPEGQuality)
	}
	lang := strings.ToLower(strings.TrimSpace(c.Language))
	switch lang {
	case "vi", "en":
	default:
		return fmt.Errorf("invalid CHAMCONG_LANG=%q (expected vi|en)", c.Language)
	}
	c.Language = lang
	return nil
}

// Unload closes the log file, if any.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
		c.logFile = nil
	}
}
