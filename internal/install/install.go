// Package install drives the idempotent install sequence for the OrgFlow CLI:
// probe, resolve, reuse or materialize a cache entry, activate it, and verify.
package install

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/setup-orgflow/internal/errs"
	"github.com/conn-castle/setup-orgflow/internal/messages"
	"github.com/conn-castle/setup-orgflow/internal/resolver"
)

// Prober reports the version of the tool reachable on PATH.
type Prober interface {
	Probe(ctx context.Context) (string, bool)
}

// Resolver maps a constraint to exactly one downloadable version.
type Resolver interface {
	Resolve(ctx context.Context, constraint resolver.Constraint) (resolver.Descriptor, error)
}

// Cache is the version-keyed tool store.
type Cache interface {
	ListVersions(tool string) ([]string, error)
	Find(tool string, version string) (string, bool, error)
	Store(stagingDir string, tool string, version string) (string, error)
}

// Fetcher downloads an archive to a temporary file.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor unpacks an archive into a temporary directory.
type Extractor interface {
	Extract(archivePath string, format string) (string, error)
}

// Activator makes a directory visible to subsequent tool lookups.
type Activator interface {
	AddPath(dir string) error
}

// Config holds the installer settings.
type Config struct {
	// ToolName is the cache key tool component.
	ToolName string
}

// Deps are the collaborators used by each phase.
type Deps struct {
	Probe     Prober
	Resolver  Resolver
	Cache     Cache
	Fetcher   Fetcher
	Extractor Extractor
	Activator Activator
	Logger    *log.Logger
}

// Outcome is the result of Install.
type Outcome struct {
	// Version is the version now on PATH. Empty when Installed is false.
	Version string
	// Installed is false only when the install was skipped and no tool was found.
	Installed bool
	// Path is the activated cache directory. Empty when nothing was activated.
	Path string
	// Phase is the phase that produced the outcome.
	Phase Phase
}

// Installer runs the install sequence.
type Installer struct {
	cfg  Config
	deps Deps
	log  *log.Logger
}

// New validates deps and returns an Installer.
func New(cfg Config, deps Deps) (*Installer, error) {
	required := []struct {
		name string
		set  bool
	}{
		{"Probe", deps.Probe != nil},
		{"Resolver", deps.Resolver != nil},
		{"Cache", deps.Cache != nil},
		{"Fetcher", deps.Fetcher != nil},
		{"Extractor", deps.Extractor != nil},
		{"Activator", deps.Activator != nil},
	}
	for _, r := range required {
		if !r.set {
			return nil, fmt.Errorf(messages.InstallDepRequiredFmt, r.name)
		}
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Installer{cfg: cfg, deps: deps, log: logger}, nil
}

// Install ensures the newest version satisfying constraint is on PATH.
// With skipInstall it only reports what is already installed and never touches the network.
func (i *Installer) Install(ctx context.Context, constraint resolver.Constraint, skipInstall bool) (Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	prior, hasPrior := i.probeInitial(ctx)

	if skipInstall {
		return i.skip(prior, hasPrior), nil
	}

	target, err := i.resolve(ctx, constraint)
	if err != nil {
		return Outcome{}, err
	}

	if outcome, ok := i.alreadyCurrent(prior, hasPrior, target); ok {
		return outcome, nil
	}

	dir, found, err := i.cacheLookup(target)
	if err != nil {
		return Outcome{}, err
	}
	if !found {
		dir, err = i.materialize(ctx, target)
		if err != nil {
			return Outcome{}, err
		}
	}

	if err := i.activate(dir); err != nil {
		return Outcome{}, err
	}

	if err := i.verifyFinal(ctx, target); err != nil {
		return Outcome{}, err
	}
	return Outcome{Version: target.VersionString, Installed: true, Path: dir, Phase: PhaseVerifyFinal}, nil
}

func (i *Installer) probeInitial(ctx context.Context) (string, bool) {
	version, ok := i.deps.Probe.Probe(ctx)
	if ok {
		i.log.Info(messages.InstallPriorVersion, "phase", PhaseProbeInitial, "version", version)
	} else {
		i.log.Info(messages.InstallNotInstalled, "phase", PhaseProbeInitial)
	}
	return version, ok
}

func (i *Installer) skip(prior string, hasPrior bool) Outcome {
	i.log.Info(messages.InstallSkipping, "phase", PhaseSkipCheck, "version", displayVersion(prior, hasPrior))
	if !hasPrior {
		return Outcome{Phase: PhaseSkipCheck}
	}
	return Outcome{Version: prior, Installed: true, Phase: PhaseSkipCheck}
}

func (i *Installer) resolve(ctx context.Context, constraint resolver.Constraint) (resolver.Descriptor, error) {
	i.log.Debug(messages.InstallResolving, "phase", PhaseResolve, "filter", constraint.Filter, "prerelease", constraint.IncludePrerelease)
	return i.deps.Resolver.Resolve(ctx, constraint)
}

func (i *Installer) alreadyCurrent(prior string, hasPrior bool, target resolver.Descriptor) (Outcome, bool) {
	if !hasPrior || prior != target.VersionString {
		return Outcome{}, false
	}
	i.log.Info(messages.InstallAlreadyCurrent, "phase", PhaseAlreadyCurrent, "version", prior)
	return Outcome{Version: prior, Installed: true, Phase: PhaseAlreadyCurrent}, true
}

func (i *Installer) cacheLookup(target resolver.Descriptor) (string, bool, error) {
	versions, err := i.deps.Cache.ListVersions(i.cfg.ToolName)
	if err != nil {
		i.log.Warn(err.Error(), "phase", PhaseCacheLookup)
	} else {
		i.log.Debug(messages.InstallCachedVersions, "phase", PhaseCacheLookup, "versions", versions)
	}

	dir, found, err := i.deps.Cache.Find(i.cfg.ToolName, target.VersionString)
	if err != nil {
		return "", false, err
	}
	if found {
		i.log.Info(messages.InstallCacheHit, "phase", PhaseCacheLookup, "version", target.VersionString, "path", dir)
	} else {
		i.log.Info(messages.InstallCacheMiss, "phase", PhaseCacheLookup, "version", target.VersionString)
	}
	return dir, found, nil
}

func (i *Installer) materialize(ctx context.Context, target resolver.Descriptor) (string, error) {
	archive, err := i.deps.Fetcher.Fetch(ctx, target.DownloadURL)
	if err != nil {
		return "", err
	}
	defer i.cleanup(archive)

	staging, err := i.deps.Extractor.Extract(archive, target.Format)
	if err != nil {
		return "", err
	}
	defer i.cleanup(staging)

	return i.deps.Cache.Store(staging, i.cfg.ToolName, target.VersionString)
}

func (i *Installer) cleanup(path string) {
	if err := os.RemoveAll(path); err != nil {
		i.log.Warn(messages.InstallCleanupFailed, "phase", PhaseMaterialize, "path", path, "err", err)
	}
}

func (i *Installer) activate(dir string) error {
	if err := i.deps.Activator.AddPath(dir); err != nil {
		return err
	}
	i.log.Info(messages.InstallActivated, "phase", PhaseActivate, "path", dir)
	return nil
}

func (i *Installer) verifyFinal(ctx context.Context, target resolver.Descriptor) error {
	installed, ok := i.deps.Probe.Probe(ctx)
	if !ok || installed != target.VersionString {
		return &errs.PostInstallVerificationError{Installed: installed, Expected: target.VersionString}
	}
	i.log.Info(messages.InstallVerified, "phase", PhaseVerifyFinal, "version", installed)
	return nil
}

func displayVersion(version string, ok bool) string {
	if !ok {
		return messages.InstallVersionUnknown
	}
	return version
}
