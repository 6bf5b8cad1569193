// Package cli implements the ddns53 command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Travis-Britz/ddns/v2"
	"github.com/Travis-Britz/ddns/v2/internal/config"
	"github.com/Travis-Britz/ddns/v2/internal/logging"
	"github.com/Travis-Britz/ddns/v2/internal/otel"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks failures detected before any network activity.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type deps struct {
	loadAWSConfig func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error)
	newLogger     func(logging.Options) (logr.Logger, func() error, error)
	// newClient lets tests substitute the provider and resolver.
	newClient func(names []string, opts ...ddns.Option) (*ddns.Client, error)
}

func defaultDeps() deps {
	return deps{
		loadAWSConfig: awsconfig.LoadDefaultConfig,
		newLogger:     logging.New,
		newClient:     ddns.New,
	}
}

// Execute runs the command and returns the process exit code.
func Execute() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: unable to load .env file: %s\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(defaultDeps())
	return run(ctx, cmd, os.Args[1:], os.Stderr)
}

func run(ctx context.Context, cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(stderr, "error: %s\n", err)

	var ue usageError
	var ce *ddns.ConfigError
	if errors.As(err, &ue) || errors.As(err, &ce) {
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return ExitUsage
	}
	return ExitFailure
}

func newRootCmd(d deps) *cobra.Command {
	var (
		daemon      bool
		verbose     bool
		domainsFile string
		staticIP    string
		resolver    string
		ifaces      []string
		logFormat   string
	)

	cmd := &cobra.Command{
		Use:   "ddns53 [flags] DOMAIN...",
		Short: "Point Route 53 A records at this host's public IPv4 address",
		Long: `ddns53 discovers the current public IPv4 address and upserts an A record
(TTL 300) for every DOMAIN in the Route 53 hosted zone that best matches it.

AWS credentials and region are read from the standard AWS environment
variables and shared configuration files.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := append([]string(nil), args...)
			if domainsFile != "" {
				more, err := config.LoadDomainsFile(domainsFile)
				if err != nil {
					return usageError{err}
				}
				names = append(names, more...)
			}
			if len(names) == 0 {
				return usageError{errors.New("at least one DOMAIN is required")}
			}
			if _, err := ddns.ParseDomains(names); err != nil {
				return usageError{err}
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return usageError{fmt.Errorf("loading configuration: %w", err)}
			}

			log, flush, err := d.newLogger(logging.Options{Verbose: verbose, Format: logFormat})
			if err != nil {
				return usageError{err}
			}
			defer flush()

			res, err := buildResolver(cfg, resolver, staticIP, ifaces)
			if err != nil {
				return usageError{err}
			}

			ctx := cmd.Context()
			tp, err := otel.InitializeTracer(ctx)
			if err != nil {
				log.Error(err, "tracing disabled")
			} else if tp != nil {
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = tp.Shutdown(shutdownCtx)
				}()
			}

			awsCfg, err := d.loadAWSConfig(ctx, awsconfig.WithRetryMaxAttempts(cfg.MaxAttempts))
			if err != nil {
				return fmt.Errorf("loading AWS configuration: %w", err)
			}
			otel.InstrumentAWS(&awsCfg)

			var r53opts []func(*ddns.Route53Provider)
			if cfg.WaitForSync {
				r53opts = append(r53opts, ddns.WaitForSync(cfg.SyncTimeout), ddns.SyncPollInterval(cfg.SyncPoll))
			}

			client, err := d.newClient(names,
				ddns.UsingRoute53(awsCfg, r53opts...),
				ddns.UsingResolver(res),
				ddns.UsingHTTPClient(otel.HTTPClient()),
				ddns.WithLogger(log),
				ddns.WithProviderTimeout(cfg.ProviderTimeout),
			)
			if err != nil {
				return err
			}

			if !daemon {
				return client.RunOnce(ctx)
			}
			err = client.RunDaemon(ctx)
			if errors.Is(err, context.Canceled) {
				log.Info("received termination signal, exiting")
				return nil
			}
			return err
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	cmd.Flags().BoolVarP(&daemon, "daemon", "d", false, "keep running and re-check the public IP every 5 minutes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	cmd.Flags().StringVar(&domainsFile, "domains-file", "", "YAML file with additional domain names")
	cmd.Flags().StringVar(&staticIP, "ip", "", "publish this IPv4 address instead of discovering it")
	cmd.Flags().StringVar(&resolver, "resolver", "web", "public IP discovery method: web, opendns or interface")
	cmd.Flags().StringSliceVar(&ifaces, "interface", nil, "network interfaces searched by the interface resolver (default all)")
	cmd.Flags().StringVar(&logFormat, "log-format", logging.FormatAuto, "log format: console or json (default depends on whether stderr is a terminal)")
	return cmd
}

func buildResolver(cfg *config.Config, kind, staticIP string, ifaces []string) (ddns.Resolver, error) {
	if staticIP != "" {
		return ddns.FromString(staticIP)
	}
	switch kind {
	case "web":
		services := cfg.IPServices
		if len(services) == 0 {
			services = ddns.DefaultIPServices
		}
		r, err := ddns.NewWebResolver(services...)
		if err != nil {
			return nil, err
		}
		if t, ok := r.(interface{ SetTimeout(time.Duration) }); ok {
			t.SetTimeout(cfg.HTTPTimeout)
		}
		return r, nil
	case "opendns":
		return ddns.OpenDNSResolver(cfg.OpenDNSServer), nil
	case "interface":
		return ddns.InterfaceResolver(ifaces...), nil
	default:
		return nil, fmt.Errorf("unknown resolver %q: expected web, opendns or interface", kind)
	}
}
