package commands

import (
	"comcigan/internal/components/telemetry"
	"comcigan/internal/scrapers/comcigan"
	"comcigan/pkg/configutil"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl           string               `json:"base_url"`
	BootstrapPath     string               `json:"bootstrap_path"`
	TimeoutSeconds    int                  `json:"timeout_seconds"`
	RequestsPerSecond float64              `json:"requests_per_second"`
	UserAgent         string               `json:"user_agent"`
	Proxy             string               `json:"proxy"`
	Otlp              telemetry.OtlpConfig `json:"otlp"`
}

var defaultConfig = Config{
	BaseUrl:           comcigan.DefaultBaseUrl,
	BootstrapPath:     comcigan.DefaultBootstrapPath,
	TimeoutSeconds:    30,
	RequestsPerSecond: 2,
	UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
}

var (
	configPath *string
	verbose    *bool

	client comcigan.Client
	otel   telemetry.Otel
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "comcigan.json5", "The config file to read, a relative path is searched for from the working directory up.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug information.")
}

var rootCmd = &cobra.Command{
	Use:          "comcigan-cli",
	Short:        "comcigan-cli searches schools and prints their timetables.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		read := configutil.ReadRecursivelyWithDefaults[Config]
		if filepath.IsAbs(*configPath) {
			read = configutil.ReadWithDefaults[Config]
		}
		cfg, err := read(*configPath, defaultConfig)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}

		otel, err = telemetry.SetupOtel(cmd.Context(), "comcigan-cli", cfg.Otlp)
		if err != nil {
			return fmt.Errorf("setup otel: %w", err)
		}

		tel := telemetry.SlogAPI{}
		transport := comcigan.NewRestyTransport(comcigan.TransportOptions{
			BaseUrl:           cfg.BaseUrl,
			UserAgent:         cfg.UserAgent,
			Proxy:             cfg.Proxy,
			Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}, tel)

		client, err = comcigan.NewClient(transport, tel, comcigan.ClientOptions{
			BootstrapPath: cfg.BootstrapPath,
		})
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := otel.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to shutdown otel", "err", err)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
