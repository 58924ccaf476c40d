package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Lianag2018/calcauto-final-sub001/internal/calculation"
	"github.com/Lianag2018/calcauto-final-sub001/internal/config"
	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
	"github.com/Lianag2018/calcauto-final-sub001/internal/output"
	"github.com/Lianag2018/calcauto-final-sub001/internal/quotecache"
	"github.com/Lianag2018/calcauto-final-sub001/internal/server"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	settingsFile string
	logLevel     string
	formatName   string
)

func main() {
	root := &cobra.Command{
		Use:   "autoquote",
		Short: "Vehicle financing and lease quoting tool",
		Long: "autoquote computes side-by-side financing and lease quotes from a\n" +
			"manufacturer incentive program and user-adjustable fee/trade-in inputs.",
	}
	root.PersistentFlags().StringVar(&settingsFile, "settings", "", "path to settings file (default ./autoquote.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&formatName, "format", "f", "console", "output format: console, csv, json")

	root.AddCommand(newFinanceCmd(), newLeaseCmd(), newGridCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings reads the application settings via viper. Missing files are
// tolerated; every key has a default so the tool works out of the box.
func loadSettings() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("data.residuals", "")
	v.SetDefault("data.lease_rates", "")
	v.SetDefault("data.mileage", "")
	v.SetDefault("tax.tps", "0.05")
	v.SetDefault("tax.tvq", "0.09975")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.redis", "")
	v.SetDefault("server.cache_ttl", "15m")

	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", settingsFile, err)
		}
		return v, nil
	}

	v.SetConfigName("autoquote")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return v, nil
}

// initLogger builds a zap logger from settings with the CLI override taking
// precedence.
func initLogger(v *viper.Viper) (*zap.Logger, error) {
	level := v.GetString("logging.level")
	if logLevel != "" {
		level = logLevel
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var cfg zap.Config
	switch v.GetString("logging.format") {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", v.GetString("logging.format"))
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return cfg.Build()
}

func buildEngine(v *viper.Viper, logger *zap.Logger) (*calculation.QuoteEngine, error) {
	tps, err := decimal.NewFromString(v.GetString("tax.tps"))
	if err != nil {
		return nil, fmt.Errorf("invalid tax.tps: %w", err)
	}
	tvq, err := decimal.NewFromString(v.GetString("tax.tvq"))
	if err != nil {
		return nil, fmt.Errorf("invalid tax.tvq: %w", err)
	}
	engine := calculation.NewQuoteEngineWithTax(domain.TaxConfig{TPSRate: tps, TVQRate: tvq})
	engine.SetLogger(logger.Sugar())
	return engine, nil
}

func loadReference(v *viper.Viper) (*domain.LeaseReference, error) {
	parser := config.NewInputParser()
	return parser.LoadLeaseReference(
		v.GetString("data.residuals"),
		v.GetString("data.lease_rates"),
		v.GetString("data.mileage"),
	)
}

// runQuote is the shared body of the finance/lease/grid subcommands.
func runQuote(quoteFile string, wantFinance, wantLease bool) error {
	v, err := loadSettings()
	if err != nil {
		return err
	}
	logger, err := initLogger(v)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	engine, err := buildEngine(v, logger)
	if err != nil {
		return err
	}

	parser := config.NewInputParser()
	quote, err := parser.LoadQuoteFile(quoteFile)
	if err != nil {
		return err
	}

	report := &domain.QuoteReport{Program: &quote.Program}
	if wantFinance && quote.Finance != nil {
		report.Finance = engine.QuoteFinance(&quote.Program, *quote.Finance)
	}
	if wantLease && quote.Lease != nil {
		ref, err := loadReference(v)
		if err != nil {
			return err
		}
		report.Lease = engine.QuoteLease(&quote.Program, *quote.Lease, ref)
	}

	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		return fmt.Errorf("unknown output format: %s", formatName)
	}
	data, err := formatter.Format(report)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func newFinanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finance <quote.yaml>",
		Short: "Compute the two-option finance comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(args[0], true, false)
		},
	}
}

func newLeaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lease <quote.yaml>",
		Short: "Compute the lease comparison at the selected term and mileage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(args[0], false, true)
		},
	}
}

func newGridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid <quote.yaml>",
		Short: "Compute the full term x mileage x variant lease analysis grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") && formatName == "console" {
				formatName = "csv"
			}
			return runQuote(args[0], true, true)
		},
	}
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the quote engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadSettings()
			if err != nil {
				return err
			}
			logger, err := initLogger(v)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			engine, err := buildEngine(v, logger)
			if err != nil {
				return err
			}
			ref, err := loadReference(v)
			if err != nil {
				return err
			}

			var cache quotecache.Cache = quotecache.NewMemory()
			if addr := v.GetString("server.redis"); addr != "" {
				ttl, err := time.ParseDuration(v.GetString("server.cache_ttl"))
				if err != nil {
					return fmt.Errorf("invalid server.cache_ttl: %w", err)
				}
				cache = quotecache.NewRedis(addr, ttl)
				logger.Info("using redis quote cache", zap.String("addr", addr), zap.Duration("ttl", ttl))
			}

			srv := server.New(engine, ref, cache, logger)
			listen := v.GetString("server.listen")
			logger.Info("quote server listening", zap.String("addr", listen))
			return http.ListenAndServe(listen, srv.Routes())
		},
	}
}
