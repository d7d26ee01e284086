package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"goTweetStatus/config"
	"goTweetStatus/goauth1atwitter"
	"goTweetStatus/logging"
)

type options struct {
	configPath string
	timeout    time.Duration
	debug      bool
	logFile    string

	closeLog func()
}

// Execute runs the tweet command line and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	defer opts.close()
	root := newRootCmd(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "tweet",
		Short:         "Search recent posts and post status updates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Best-effort .env loading for TWITTER_* overrides.
			_ = godotenv.Load()
			c, err := logging.Configure(opts.logFile)
			if err != nil {
				return err
			}
			opts.closeLog = c
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "TOML configuration file")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "overall timeout per API call (default from config)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log HTTP method, endpoint, status and duration")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "also write logs to this file")

	root.AddCommand(newSearchCmd(opts))
	root.AddCommand(newUpdateCmd(opts))
	root.AddCommand(newCheckConfigCmd(opts))
	return root
}

// close releases the log file, which cobra's post-run hooks skip when a
// command fails.
func (o *options) close() {
	if o.closeLog != nil {
		o.closeLog()
		o.closeLog = nil
	}
}

func (o *options) client() (*goauth1atwitter.Client, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	c := goauth1atwitter.New(cfg)
	if o.timeout > 0 {
		c.HTTP.Timeout = o.timeout
	}
	if o.debug {
		c.EnableDebug(logging.Logger())
	}
	return c, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
