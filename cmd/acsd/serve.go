package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andaru/acs/config"
	"github.com/andaru/acs/logging"
	"github.com/andaru/acs/message"
	"github.com/andaru/acs/metrics"
	"github.com/andaru/acs/server"
	"github.com/andaru/acs/store"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	configPath    string
	listen        string
	metricsListen string
	logLevel      string
	database      string
}

func newServeCmd() *cobra.Command { return (&serveOptions{}).command() }

func (o *serveOptions) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve CWMP sessions",
		Long: `Serve CWMP sessions on the listen address, and Prometheus metrics on
the metrics address. Flags override the configuration file.`,
		Example: `  acsd serve --config /etc/acsd/acsd.yaml
  acsd serve --listen :7547 --database /var/lib/acsd/acs.db --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&o.configPath, "config", "", "Path to the YAML configuration file")
	flags.StringVar(&o.listen, "listen", "", "CWMP listen address")
	flags.StringVar(&o.metricsListen, "metrics-listen", "", "Metrics listen address (empty string disables)")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&o.database, "database", "", "SQLite database path")
	return cmd
}

// load returns the configuration file, or the defaults, with flags
// applied
func (o *serveOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("listen") {
		cfg.Listen = o.listen
	}
	if flags.Changed("metrics-listen") {
		cfg.MetricsListen = o.metricsListen
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("database") {
		cfg.Database = o.database
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	queue, err := cfg.Queue()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srvConfig := server.Config{
		Queue:            func() []message.AcsRequest { return append([]message.AcsRequest(nil), queue...) },
		Logger:           log,
		Metrics:          metrics.New(reg),
		MaxBodySize:      cfg.MaxBodySize,
		KeepAliveTimeout: cfg.KeepAliveTimeout,
	}
	if cfg.Database != "" {
		st, err := store.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer st.Close()
		srvConfig.Persister = st
	}

	servers := []*http.Server{server.New(srvConfig).HTTPServer(cfg.Listen)}
	if cfg.MetricsListen != "" {
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsListen,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 30 * time.Second,
		})
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	for _, hs := range servers {
		hs := hs
		g.Go(func() error {
			log.Info("listening", zap.String("addr", hs.Addr))
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "listen %s", hs.Addr)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, hs := range servers {
			if err := hs.Shutdown(sctx); err != nil {
				log.Warn("shutdown", zap.String("addr", hs.Addr), zap.Error(err))
			}
		}
		return nil
	})
	return g.Wait()
}
