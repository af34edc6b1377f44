package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/username/chrono-server/internal/busday"
	"github.com/username/chrono-server/internal/chronotool"
	"github.com/username/chrono-server/internal/config"
	"github.com/username/chrono-server/internal/countdown"
	"github.com/username/chrono-server/internal/holiday"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const version = "1.0.0"

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chrono-server",
		Short: "Date and calendar MCP server",
		Long:  "MCP server for date calculations, Chinese lunar calendar conversion, festivals, public holidays and business days",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to stderr
				}
			} else {
				initLogger() // Default stderr logger
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(cacheCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	handler, err := initializeHandler(cfg)
	if err != nil {
		return err
	}

	s := server.NewMCPServer("chrono-server", version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	handler.Register(s)

	logger.Info("Starting MCP server on stdio",
		zap.String("version", version),
		zap.String("data_dir", cfg.Data.Dir))

	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Holiday cache maintenance",
	}
	cmd.AddCommand(cacheWarmCmd())
	return cmd
}

func cacheWarmCmd() *cobra.Command {
	var countries string
	var years int

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Prefetch holiday data into the on-disk cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.ExpandEnvVars()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			cache := newHolidayCache(cfg)
			currentYear := time.Now().Year()

			for _, country := range strings.Split(countries, ",") {
				country = strings.TrimSpace(country)
				if country == "" {
					continue
				}
				for year := currentYear; year < currentYear+years; year++ {
					set := cache.Get(cmd.Context(), country, year)
					fmt.Printf("%s %d: %d records\n", strings.ToUpper(country), year, len(set))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&countries, "countries", "CN,US", "Comma-separated country codes to prefetch")
	cmd.Flags().IntVar(&years, "years", 2, "Number of years to prefetch, starting from the current one")

	return cmd
}

func initializeHandler(cfg *config.Config) (*chronotool.Handler, error) {
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cache := newHolidayCache(cfg)
	calculator := busday.NewCalculator(cache, logger)
	countdowns := countdown.NewStore(cfg.Data.Dir, logger)

	return chronotool.New(cache, calculator, countdowns, logger), nil
}

func newHolidayCache(cfg *config.Config) *holiday.Cache {
	provider := holiday.NewHTTPProvider(
		cfg.Providers.TimorURL,
		cfg.Providers.NagerURL,
		cfg.Providers.GetFetchTimeout(),
		logger,
	)
	return holiday.NewCache(provider, holiday.NewDiskStore(cfg.Data.Dir), logger)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Stdout is the MCP wire; logs must never touch it
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
