package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration required by the webhook/API process.
// All values must come from env (or an env-file loaded by the process runner).
// No business logic should depend on raw environment variables.
type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	ElevenLabs ElevenLabsConfig
	Dealer     DealerConfig
	CRM        CRMConfig
}

type AppConfig struct {
	Env  string
	Port int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// SSLMode accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

// RedisConfig is optional: when Host is empty the API runs without the
// webhook re-delivery guard.
type RedisConfig struct {
	Host string
	Port int
}

type ElevenLabsConfig struct {
	APIKey        string
	AgentID       string
	VoiceID       string
	WebhookSecret string

	// WebhookBaseURL is the public base URL the agent's tool webhooks
	// are registered under.
	WebhookBaseURL string
}

// DealerConfig describes the dealership the agent answers for.
type DealerConfig struct {
	Name    string
	Address string
	Phone   string
	Website string

	// Department DIDs used for human transfers, 10-digit national format.
	MainNumber    string
	SalesNumber   string
	ServiceNumber string
	PartsNumber   string

	// SalesAgents is the round-robin pool for lead assignment.
	SalesAgents []string
}

type CRMConfig struct {
	// Backend selects the CRM client implementation: memory or postgres.
	Backend string

	// Type names the dealership's CRM vendor (informational, used by ADF export).
	Type string

	// ADFInboxEmail receives ADF lead documents; not used by the webhook path.
	ADFInboxEmail string

	// DedupTTL bounds the re-delivery guard window.
	DedupTTL time.Duration
}

const (
	CRMBackendMemory   = "memory"
	CRMBackendPostgres = "postgres"
)

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}

	c.CRM.Backend = strings.TrimSpace(os.Getenv("CRM_BACKEND"))
	if c.CRM.Backend == "" {
		c.CRM.Backend = CRMBackendMemory
	}
	c.CRM.Type = strings.TrimSpace(os.Getenv("CRM_TYPE"))
	c.CRM.ADFInboxEmail = strings.TrimSpace(os.Getenv("ADF_INBOX_EMAIL"))
	c.CRM.DedupTTL = mustDuration("POSTCALL_DEDUP_TTL")

	if c.CRM.Backend == CRMBackendPostgres {
		c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
		{
			n, err := mustInt("DB_PORT")
			n, parseErrs = appendParseErr(parseErrs, n, err)
			c.DB.Port = n
		}
		c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
		c.DB.Password = os.Getenv("DB_PASSWORD")
		c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
		c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))
	}

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if c.Redis.Host != "" {
		n, err := mustInt("REDIS_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Redis.Port = n
	}

	c.ElevenLabs.APIKey = os.Getenv("ELEVENLABS_API_KEY")
	c.ElevenLabs.AgentID = strings.TrimSpace(os.Getenv("ELEVENLABS_AGENT_ID"))
	c.ElevenLabs.VoiceID = strings.TrimSpace(os.Getenv("ELEVENLABS_VOICE_ID"))
	c.ElevenLabs.WebhookSecret = os.Getenv("ELEVENLABS_WEBHOOK_SECRET")
	c.ElevenLabs.WebhookBaseURL = strings.TrimSpace(os.Getenv("WEBHOOK_BASE_URL"))

	c.Dealer.Name = strings.TrimSpace(os.Getenv("DEALER_NAME"))
	c.Dealer.Address = strings.TrimSpace(os.Getenv("DEALER_ADDRESS"))
	c.Dealer.Phone = strings.TrimSpace(os.Getenv("DEALER_PHONE"))
	c.Dealer.Website = strings.TrimSpace(os.Getenv("DEALER_WEBSITE"))
	c.Dealer.MainNumber = strings.TrimSpace(os.Getenv("MAIN_NUMBER"))
	c.Dealer.SalesNumber = strings.TrimSpace(os.Getenv("SALES_NUMBER"))
	c.Dealer.ServiceNumber = strings.TrimSpace(os.Getenv("SERVICE_NUMBER"))
	c.Dealer.PartsNumber = strings.TrimSpace(os.Getenv("PARTS_NUMBER"))
	c.Dealer.SalesAgents = splitList(os.Getenv("SALES_AGENTS"))
	if len(c.Dealer.SalesAgents) == 0 {
		c.Dealer.SalesAgents = []string{"agent1", "agent2", "agent3"}
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	switch c.CRM.Backend {
	case CRMBackendMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("CRM_BACKEND=memory is not allowed in production"))
		}
	case CRMBackendPostgres:
		if c.DB.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required for the postgres CRM backend"))
		}
		if c.DB.Port <= 0 || c.DB.Port > 65535 {
			errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
		}
		if c.DB.User == "" {
			errs = append(errs, errors.New("DB_USER is required for the postgres CRM backend"))
		}
		if c.DB.Name == "" {
			errs = append(errs, errors.New("DB_NAME is required for the postgres CRM backend"))
		}
		if strings.TrimSpace(c.DB.SSLMode) == "" {
			if c.IsProduction() {
				errs = append(errs, errors.New("DB_SSLMODE is required in production"))
			} else {
				c.DB.SSLMode = "disable"
			}
		}
		if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
			errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
		}
	default:
		errs = append(errs, fmt.Errorf("CRM_BACKEND must be memory or postgres, got %q", c.CRM.Backend))
	}

	if c.Redis.Host != "" && (c.Redis.Port <= 0 || c.Redis.Port > 65535) {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}

	if c.IsProduction() {
		if c.ElevenLabs.APIKey == "" {
			errs = append(errs, errors.New("ELEVENLABS_API_KEY is required in production"))
		}
		if c.ElevenLabs.WebhookSecret == "" {
			errs = append(errs, errors.New("ELEVENLABS_WEBHOOK_SECRET is required in production"))
		}
		if c.ElevenLabs.WebhookBaseURL == "" {
			errs = append(errs, errors.New("WEBHOOK_BASE_URL is required in production"))
		}
	}

	for _, did := range []struct {
		key string
		val string
	}{
		{"MAIN_NUMBER", c.Dealer.MainNumber},
		{"SALES_NUMBER", c.Dealer.SalesNumber},
		{"SERVICE_NUMBER", c.Dealer.ServiceNumber},
		{"PARTS_NUMBER", c.Dealer.PartsNumber},
	} {
		if did.val != "" && !isTenDigits(did.val) {
			errs = append(errs, fmt.Errorf("%s must be 10 digits, got %q", did.key, did.val))
		}
	}

	if c.CRM.DedupTTL <= 0 {
		// Re-delivery windows observed from the platform are short.
		c.CRM.DedupTTL = 24 * time.Hour
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func mustDuration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isTenDigits(v string) bool {
	if len(v) != 10 {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
