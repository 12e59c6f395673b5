package contract

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/retainly/churnscope/schema"
)

// Default configuration values.
const (
	DefaultResultLimit = 10
	DefaultWorkers     = 8
	DefaultPrecision   = 1

	DefaultSampleCustomers = 50
	DefaultSampleMonths    = 12
	DefaultSampleChurnRate = 0.3
	DefaultSampleSeed      = 42

	DefaultSMTPPort = 587
)

// Accepted layouts for the --as-of flag.
var asOfLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// Config holds the validated runtime configuration shared by all commands.
type Config struct {
	InputPath string // Path to the customer data file (JSON or CSV)

	ResultLimit int               // Maximum number of customers to show in results
	Workers     int               // Number of concurrent workers for analysis
	Precision   int               // Decimal precision for numeric columns
	Output      schema.OutputMode // Output format: text (default), csv or json
	OutputFile  string            // Optional path to write output directly
	UseColor    bool              // Colorize table output
	Width       int               // Terminal width override (0 = auto-detect)

	AsOf time.Time // Reference "now" for churn-date math

	HighThreshold   float64 // Score at or above which a customer is High Risk
	MediumThreshold float64 // Score at or above which a customer is Medium Risk

	Backend   schema.DatabaseBackend // Run store backend
	DBConnect string                 // Run store connection string

	AlertTo      []string // Alert recipients
	AlertFrom    string   // Alert sender address
	SMTPHost     string   // SMTP server host; empty means console preview only
	SMTPPort     int      // SMTP server port
	SMTPUser     string   // SMTP username
	SMTPPassword string   // SMTP password
	DryRun       bool     // Render the alert without sending it

	Seed            int64   // Seed for synthetic data generation
	SampleCustomers int     // Number of customers to generate
	SampleMonths    int     // Number of months to generate
	SampleChurnRate float64 // Fraction of generated customers that churn
}

// Clone returns a deep copy of the config for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	clone.AlertTo = make([]string, len(c.AlertTo))
	copy(clone.AlertTo, c.AlertTo)
	return &clone
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ThresholdsRawInput holds optional risk thresholds from the config file.
type ThresholdsRawInput struct {
	High   *float64 `mapstructure:"high"`
	Medium *float64 `mapstructure:"medium"`
}

// ConfigRawInput holds the raw, unvalidated configuration from all
// sources (file, env, flags). Viper unmarshals into this struct and
// ProcessAndValidate turns it into a Config.
type ConfigRawInput struct {
	InputPathStr string // Positional argument, set outside Viper

	Limit         int                `mapstructure:"limit"`
	Workers       int                `mapstructure:"workers"`
	Precision     int                `mapstructure:"precision"`
	OutputStr     string             `mapstructure:"output"`
	OutputFileStr string             `mapstructure:"output-file"`
	ColorStr      string             `mapstructure:"color"`
	Width         int                `mapstructure:"width"`
	AsOfStr       string             `mapstructure:"as-of"`
	ThresholdsStr string             `mapstructure:"thresholds"`
	Thresholds    ThresholdsRawInput `mapstructure:"risk-thresholds"`
	BackendStr    string             `mapstructure:"db-backend"`
	DBConnectStr  string             `mapstructure:"db-connect"`

	AlertToStr   string `mapstructure:"alert-to"`
	AlertFromStr string `mapstructure:"alert-from"`
	SMTPHostStr  string `mapstructure:"smtp-host"`
	SMTPPort     int    `mapstructure:"smtp-port"`
	SMTPUserStr  string `mapstructure:"smtp-user"`
	SMTPPassStr  string `mapstructure:"smtp-password"`
	DryRun       bool   `mapstructure:"dry-run"`

	Seed            int64   `mapstructure:"seed"`
	SampleCustomers int     `mapstructure:"customers"`
	SampleMonths    int     `mapstructure:"months"`
	SampleChurnRate float64 `mapstructure:"churn-rate"`
}

// ProcessAndValidate converts the raw input into a validated Config.
// It fails fast on the first invalid value.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAsOfTime(cfg, input); err != nil {
		return err
	}
	if err := processRiskThresholds(cfg, input); err != nil {
		return err
	}
	if err := processBackend(cfg, input); err != nil {
		return err
	}
	processAlertInputs(cfg, input)
	return processSampleInputs(cfg, input)
}

// validateSimpleInputs handles the scalar fields that need only range
// and membership checks.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = input.InputPathStr

	if input.Limit <= 0 {
		return fmt.Errorf("limit must be positive (received %d)", input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be positive (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 0 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 0 and 6 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	output := schema.OutputMode(input.OutputStr)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode: %s (expected text, csv or json)", input.OutputStr)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFileStr

	useColor, err := ParseBoolString(input.ColorStr)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColor = useColor

	if input.Width < 0 {
		return fmt.Errorf("width must be non-negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	return nil
}

// processAsOfTime resolves the reference "now" used for churn-date math.
// The engine never reads the system clock itself; the default is
// resolved here, once, so a run is internally consistent.
func processAsOfTime(cfg *Config, input *ConfigRawInput) error {
	if input.AsOfStr == "" {
		cfg.AsOf = time.Now()
		return nil
	}
	for _, layout := range asOfLayouts {
		if t, err := time.Parse(layout, input.AsOfStr); err == nil {
			cfg.AsOf = t
			return nil
		}
	}
	return fmt.Errorf("invalid --as-of value %q (expected YYYY-MM-DD or RFC3339)", input.AsOfStr)
}

// RevalidateAsOf re-parses an as-of date on an already validated config.
// Used by MCP handlers, which receive parameters per request.
func RevalidateAsOf(cfg *Config, asOfStr string) error {
	if asOfStr == "" {
		return nil
	}
	for _, layout := range asOfLayouts {
		if t, err := time.Parse(layout, asOfStr); err == nil {
			cfg.AsOf = t
			return nil
		}
	}
	return fmt.Errorf("invalid as_of value %q (expected YYYY-MM-DD or RFC3339)", asOfStr)
}

// processRiskThresholds resolves the High/Medium risk thresholds.
// Defaults apply first, then config file values, then the command-line
// --thresholds flag, which takes precedence.
func processRiskThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := map[string]float64{
		"high":   schema.DefaultHighThreshold,
		"medium": schema.DefaultMediumThreshold,
	}

	if input.Thresholds.High != nil {
		thresholds["high"] = *input.Thresholds.High
	}
	if input.Thresholds.Medium != nil {
		thresholds["medium"] = *input.Thresholds.Medium
	}

	if input.ThresholdsStr != "" {
		parsed, err := parseRiskThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	for name, threshold := range thresholds {
		if threshold < 0.0 || threshold > 100.0 {
			return fmt.Errorf("%s risk threshold must be between 0.0 and 100.0 (received %.2f)", name, threshold)
		}
	}
	if thresholds["medium"] >= thresholds["high"] {
		return fmt.Errorf("medium threshold %.2f must be below high threshold %.2f",
			thresholds["medium"], thresholds["high"])
	}

	cfg.HighThreshold = thresholds["high"]
	cfg.MediumThreshold = thresholds["medium"]
	return nil
}

// processBackend validates the run store backend and its connection string.
func processBackend(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(input.BackendStr)
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid database backend: %s", input.BackendStr)
	}
	if err := ValidateDatabaseConnectionString(backend, input.DBConnectStr); err != nil {
		return err
	}
	cfg.Backend = backend
	cfg.DBConnect = input.DBConnectStr
	return nil
}

// processAlertInputs copies the alert settings. Recipients are a
// comma-separated list; an empty list is valid except for the alert
// command, which checks it at execution time.
func processAlertInputs(cfg *Config, input *ConfigRawInput) {
	cfg.AlertTo = nil
	for _, to := range strings.Split(input.AlertToStr, ",") {
		if to = strings.TrimSpace(to); to != "" {
			cfg.AlertTo = append(cfg.AlertTo, to)
		}
	}
	cfg.AlertFrom = input.AlertFromStr
	cfg.SMTPHost = input.SMTPHostStr
	cfg.SMTPPort = input.SMTPPort
	cfg.SMTPUser = input.SMTPUserStr
	cfg.SMTPPassword = input.SMTPPassStr
	cfg.DryRun = input.DryRun
}

// processSampleInputs validates the synthetic data generation settings.
func processSampleInputs(cfg *Config, input *ConfigRawInput) error {
	if input.SampleCustomers <= 0 {
		return fmt.Errorf("customers must be positive (received %d)", input.SampleCustomers)
	}
	if input.SampleMonths < 2 {
		return fmt.Errorf("months must be at least 2 (received %d)", input.SampleMonths)
	}
	if input.SampleChurnRate < 0 || input.SampleChurnRate > 1 {
		return fmt.Errorf("churn-rate must be between 0 and 1 (received %.2f)", input.SampleChurnRate)
	}
	cfg.Seed = input.Seed
	cfg.SampleCustomers = input.SampleCustomers
	cfg.SampleMonths = input.SampleMonths
	cfg.SampleChurnRate = input.SampleChurnRate
	return nil
}

// ValidateDatabaseConnectionString checks that a connection string looks
// plausible for the chosen backend before any dial attempt.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required for MySQL backend")
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("invalid MySQL connection string format, expected user:password@tcp(host:port)/dbname")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required for PostgreSQL backend")
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("invalid PostgreSQL connection string format, expected key=value pairs or a postgres:// URL")
		}
	case schema.SQLiteBackend, schema.NoneBackend:
		// SQLite falls back to the default file path; none needs nothing.
	}
	return nil
}

// parseRiskThresholdsString parses a string like "high:70,medium:45"
// into a name-to-value map.
func parseRiskThresholdsString(s string) (map[string]float64, error) {
	thresholds := make(map[string]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'level:value'", part)
		}

		name := strings.ToLower(strings.TrimSpace(keyValue[0]))
		if name != "high" && name != "medium" {
			return nil, fmt.Errorf("invalid threshold level '%s', must be high or medium", name)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(keyValue[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for level %s: %w", keyValue[1], name, err)
		}

		thresholds[name] = value
	}

	return thresholds, nil
}
