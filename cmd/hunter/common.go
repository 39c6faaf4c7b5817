package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonathan/hunter/internal/config"
	"github.com/jonathan/hunter/internal/dispatch"
	"github.com/jonathan/hunter/internal/hunter"
	"github.com/jonathan/hunter/internal/types"
	"github.com/spf13/cobra"
)

var (
	configPath string
	apiVersion string
	baseURL    string
	throttle   time.Duration
	timeout    time.Duration
	logLevel   string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to a JSON config file")
	pf.StringVar(&apiVersion, "api-version", hunter.DefaultAPIVersion, "API version path segment (overrides HUNTER_API_VERSION)")
	pf.StringVar(&baseURL, "base-url", hunter.DefaultBaseURL, "API base URL (overrides HUNTER_BASE_URL)")
	pf.DurationVar(&throttle, "throttle", dispatch.DefaultThrottle, "Pause between requests when reading --file (overrides HUNTER_THROTTLE)")
	pf.DurationVar(&timeout, "timeout", 0, "HTTP request timeout, 0 for none (overrides HUNTER_TIMEOUT)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error (overrides HUNTER_LOG_LEVEL)")
}

// resolveConfig layers flags over environment over config file over defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Defaults()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	envCfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	cfg = envCfg.MergeWithDefaults(cfg)

	flags := cmd.Flags()
	if flags.Changed("api-version") {
		cfg.APIVersion = apiVersion
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("throttle") {
		d := config.Duration(throttle)
		cfg.Throttle = &d
	}
	if flags.Changed("timeout") {
		d := config.Duration(timeout)
		cfg.Timeout = &d
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, &usageError{err: err}
	}
	return &cfg, nil
}

// newDispatcher builds the client and dispatcher for one command run. The
// positional API key wins over configuration.
func newDispatcher(cmd *cobra.Command, args []string) (*dispatch.Dispatcher, *log.Logger, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:           cfg.Level(),
		Prefix:          "hunter",
		ReportTimestamp: true,
	})

	apiKey := cfg.APIKey
	if len(args) > 0 && args[0] != "" {
		apiKey = args[0]
	}
	if apiKey == "" {
		return nil, nil, &usageError{err: fmt.Errorf("%w (pass it after the command or set %s)", errMissingAPIKey, config.EnvAPIKey)}
	}

	client := hunter.New(apiKey, &hunter.Options{
		BaseURL:    cfg.BaseURL,
		APIVersion: cfg.APIVersion,
		Timeout:    cfg.TimeoutDuration(),
		Logger:     logger,
	})

	d := dispatch.New(client, cmd.OutOrStdout(), &dispatch.Options{
		Throttle: cfg.ThrottleDuration(),
		Logger:   logger,
	})
	return d, logger, nil
}

// runRequest runs req once, or every row of file when file is set.
func runRequest(cmd *cobra.Command, args []string, file string, req types.Request) error {
	d, logger, err := newDispatcher(cmd, args)
	if err != nil {
		return err
	}

	if file == "" {
		return d.RunSingle(cmd.Context(), req)
	}

	if ignored := changedRequestFlags(cmd); len(ignored) > 0 {
		logger.Warn("ignoring request flags when reading --file", "flags", ignored)
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, err = d.RunBatch(cmd.Context(), req.Kind(), f)
	return err
}

// changedRequestFlags lists the per-request flags set alongside --file.
func changedRequestFlags(cmd *cobra.Command) []string {
	var names []string
	for _, name := range []string{"domain", "limit", "offset", "type", "first_name", "last_name", "email"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			names = append(names, name)
		}
	}
	return names
}
