package flockerclient

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/function61/flocker/pkg/volumemanager"
	"github.com/function61/flocker/pkg/zfsengine"
	"github.com/function61/gokit/logex"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	errPoolRequired = errors.New("pool is required")
)

// flags shared by all volume management commands
type GlobalOptions struct {
	pool            string
	mountRoot       string
	dryRun          bool
	verbose         bool
	metricsTextfile string

	readConfig func() (*Config, error)
}

func GlobalFlags(rootCmd *cobra.Command) *GlobalOptions {
	opts := &GlobalOptions{
		readConfig: ReadConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.pool, "pool", "p", opts.pool, "The name of the pool to use")
	flags.StringVarP(&opts.mountRoot, "mount-root", "", opts.mountRoot, "Where the pool is mounted (default /<pool>)")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", opts.dryRun, "Print zfs commands instead of running them")
	flags.BoolVarP(&opts.verbose, "verbose", "v", opts.verbose, "Log zfs invocations and their output")
	flags.StringVarP(&opts.metricsTextfile, "metrics-textfile", "", opts.metricsTextfile, "Write engine operation metrics to this file (Prometheus textfile format)")

	return opts
}

// pool & mount root from flags, falling back to config file
func (g *GlobalOptions) poolRoot(conf *Config) (volumemanager.PoolRoot, error) {
	pool := firstNonEmpty(g.pool, conf.Pool)
	if pool == "" {
		return volumemanager.PoolRoot{}, errPoolRequired
	}

	root, err := volumemanager.NewPoolRoot(pool)
	if err != nil {
		return volumemanager.PoolRoot{}, err
	}

	if mountRoot := firstNonEmpty(g.mountRoot, conf.MountRoot); mountRoot != "" {
		root = root.WithMountRoot(mountRoot)
	}

	return root, nil
}

// metrics wrap only the real driver, so dry-run commands are not counted as engine operations
func (g *GlobalOptions) engine(conf *Config, logger *log.Logger, reg prometheus.Registerer, dryRunOut io.Writer) zfsengine.Engine {
	engineLogger := logex.Discard
	if g.verbose {
		engineLogger = logex.Prefix("zfs", logger)
	}

	engine := zfsengine.WithMetrics(zfsengine.Zfs(conf.ZfsBinary, engineLogger), reg)

	if g.dryRun {
		return zfsengine.DryRun(dryRunOut, engine)
	}

	return engine
}

// builds a manager for a single command invocation and hands it to fn
func (g *GlobalOptions) withManager(fn func(manager *volumemanager.Manager) error) error {
	conf, err := g.readConfig()
	if err != nil {
		return err
	}

	root, err := g.poolRoot(conf)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()

	fnErr := fn(volumemanager.New(root, g.engine(conf, logex.StandardLogger(), reg, os.Stdout)))

	// metrics are most interesting when something failed, so write them regardless
	if g.metricsTextfile != "" {
		if err := prometheus.WriteToTextfile(g.metricsTextfile, reg); err != nil && fnErr == nil {
			return err
		}
	}

	return fnErr
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
