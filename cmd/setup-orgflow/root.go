package main

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/conn-castle/setup-orgflow/internal/actions"
	"github.com/conn-castle/setup-orgflow/internal/config"
	"github.com/conn-castle/setup-orgflow/internal/download"
	"github.com/conn-castle/setup-orgflow/internal/install"
	"github.com/conn-castle/setup-orgflow/internal/logging"
	"github.com/conn-castle/setup-orgflow/internal/messages"
	"github.com/conn-castle/setup-orgflow/internal/probe"
	"github.com/conn-castle/setup-orgflow/internal/resolver"
	"github.com/conn-castle/setup-orgflow/internal/runtimeid"
	"github.com/conn-castle/setup-orgflow/internal/toolcache"
)

var identifyRuntime = runtimeid.Identify

var probeSystem probe.System = probe.RealSystem{}

// httpTransport is nil in production so clients use http.DefaultTransport.
var httpTransport http.RoundTripper

func newRootCmd(env config.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String(messages.FlagRuntimeID, "", messages.FlagRuntimeIDUsage)
	cmd.AddCommand(
		newRunCmd(env),
		newInstallCmd(env),
		newPostCmd(env),
		newCacheCmd(env),
		newRuntimeIDCmd(),
	)
	return cmd
}

// app holds what every subcommand shares: configuration, logging and the workflow runtime.
type app struct {
	cfg       *config.Config
	logger    *log.Logger
	runtime   *actions.Runtime
	runtimeID string
}

func loadApp(cmd *cobra.Command, env config.Env) (*app, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	runtimeID, err := cmd.Flags().GetString(messages.FlagRuntimeID)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:       cfg,
		logger:    logger,
		runtime:   actions.New(actions.Options{Env: env, Stdout: cmd.OutOrStdout()}),
		runtimeID: runtimeID,
	}, nil
}

func (a *app) cache() *toolcache.Cache {
	return toolcache.New(a.cfg.CacheRoot, a.logger)
}

func (a *app) platform() (runtimeid.ID, error) {
	if a.runtimeID != "" {
		return runtimeid.Parse(a.runtimeID)
	}
	return identifyRuntime()
}

// installer wires the install phases to their production implementations.
func (a *app) installer() (*install.Installer, error) {
	id, err := a.platform()
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: a.cfg.HTTPTimeout(), Transport: httpTransport}
	return install.New(install.Config{ToolName: a.cfg.ToolName}, install.Deps{
		Probe: probe.New(id.ExecutableName(a.cfg.ToolName), probeSystem, a.logger),
		Resolver: resolver.New(resolver.Options{
			BaseURL:    a.cfg.ServiceURL,
			ProductID:  a.cfg.ProductID,
			RuntimeID:  id,
			HTTPClient: client,
			Logger:     a.logger,
		}),
		Cache: a.cache(),
		Fetcher: download.NewFetcher(download.Options{
			TempDir:    a.cfg.TempDir,
			MaxBytes:   a.cfg.MaxDownloadBytes(),
			HTTPClient: client,
			Logger:     a.logger,
		}),
		Extractor: download.NewExtractor(a.cfg.TempDir, a.logger),
		Activator: a.runtime,
		Logger:    a.logger,
	})
}
