// Package setup runs the complete setup step: install the CLI, then prepare
// its license, keys, credentials and Git settings for the rest of the job.
package setup

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/setup-orgflow/internal/diag"
	"github.com/conn-castle/setup-orgflow/internal/gitconfig"
	"github.com/conn-castle/setup-orgflow/internal/install"
	"github.com/conn-castle/setup-orgflow/internal/messages"
	"github.com/conn-castle/setup-orgflow/internal/resolver"
)

// Runtime is the workflow surface the setup step writes to.
type Runtime interface {
	diag.Exporter
	Group(name string)
	EndGroup()
	SetOutput(name, value string) error
	SetSecret(value string)
}

// Installer installs the CLI.
type Installer interface {
	Install(ctx context.Context, constraint resolver.Constraint, skipInstall bool) (install.Outcome, error)
}

// CLI runs OrgFlow commands.
type CLI interface {
	SetLicenseKey(ctx context.Context, licenseKey string) error
	CreateEncryptionKey(ctx context.Context) (string, error)
	SaveEncryptionKey(ctx context.Context, encryptionKey, stackName string) error
	SaveSalesforceCredentials(ctx context.Context, username, password, stackName string) error
	SaveGitCredentials(ctx context.Context, username, password, encryptionKey, stackName string) error
	CredentialHelperCommandLine(encryptionKey, stackName string) string
	SetDefaultStack(ctx context.Context, stackName string) error
}

// Git writes global Git settings.
type Git interface {
	SetCommitterName(ctx context.Context, name string) error
	SetCommitterEmail(ctx context.Context, email string) error
	ConfigureAuthentication(ctx context.Context, store gitconfig.CredentialStore, username, password, encryptionKey, stackName string) error
}

// Deps are the collaborators of Run.
type Deps struct {
	Runtime     Runtime
	Installer   Installer
	CLI         CLI
	Git         Git
	Diagnostics diag.Layout
	Logger      *log.Logger
}

// Run executes the setup step for validated inputs. Steps run in order and the first failure stops the run.
func Run(ctx context.Context, in Inputs, deps Deps) error {
	if err := deps.check(); err != nil {
		return err
	}
	s := &step{ctx: ctx, in: in, deps: deps, log: deps.Logger}
	if s.log == nil {
		s.log = log.Default()
	}
	return s.run()
}

func (d Deps) check() error {
	required := []struct {
		name string
		set  bool
	}{
		{"Runtime", d.Runtime != nil},
		{"Installer", d.Installer != nil},
		{"CLI", d.CLI != nil},
		{"Git", d.Git != nil},
	}
	for _, r := range required {
		if !r.set {
			return fmt.Errorf(messages.SetupDepRequiredFmt, r.name)
		}
	}
	return nil
}

type step struct {
	ctx  context.Context
	in   Inputs
	deps Deps
	log  *log.Logger
}

func (s *step) run() error {
	// The CLI logs to setup.log while this step runs; later steps get the caller's file.
	if err := s.deps.Diagnostics.Configure(s.deps.Runtime, messages.SetupDiagnosticsLogFile, s.in.LogLevel); err != nil {
		return err
	}

	var outcome install.Outcome
	if err := s.group(messages.GroupInstall, func() error {
		var err error
		outcome, err = s.deps.Installer.Install(s.ctx, resolver.Constraint{
			Filter:            s.in.Version,
			IncludePrerelease: s.in.IncludePrerelease,
		}, s.in.SkipInstall)
		return err
	}); err != nil {
		return err
	}
	if outcome.Installed {
		s.log.Info(messages.SetupInstalled, "version", outcome.Version)
	} else {
		s.log.Warn(messages.SetupNotInstalled)
	}
	if err := s.deps.Runtime.SetOutput(messages.OutputVersion, outcome.Version); err != nil {
		return err
	}

	if err := s.group(messages.GroupSetLicenseKey, func() error {
		return s.deps.CLI.SetLicenseKey(s.ctx, s.in.LicenseKey)
	}); err != nil {
		return err
	}

	var encryptionKey string
	if err := s.group(messages.GroupSaveEncryptionKey, func() error {
		var err error
		encryptionKey, err = s.saveEncryptionKey()
		return err
	}); err != nil {
		return err
	}

	if s.in.SalesforcePassword != "" {
		if err := s.group(messages.GroupSaveSalesforce, func() error {
			return s.deps.CLI.SaveSalesforceCredentials(s.ctx, s.in.SalesforceUsername, s.in.SalesforcePassword, s.in.StackName)
		}); err != nil {
			return err
		}
	}

	if s.in.GitPassword != "" {
		if err := s.group(messages.GroupConfigureGitAuth, func() error {
			return s.deps.Git.ConfigureAuthentication(s.ctx, s.deps.CLI, s.in.GitUsername, s.in.GitPassword, encryptionKey, s.in.StackName)
		}); err != nil {
			return err
		}
	}

	if s.in.GitCommitterName != "" || s.in.GitCommitterEmail != "" {
		if err := s.group(messages.GroupConfigureGitCommitter, s.configureCommitter); err != nil {
			return err
		}
	}

	if s.in.StackName != "" {
		if err := s.group(messages.GroupSetDefaultStack, func() error {
			return s.deps.CLI.SetDefaultStack(s.ctx, s.in.StackName)
		}); err != nil {
			return err
		}
	}

	return s.deps.Diagnostics.Configure(s.deps.Runtime, s.in.LogFileName, s.in.LogLevel)
}

// saveEncryptionKey uses the supplied key or creates one, masks it, and saves it for the stack.
func (s *step) saveEncryptionKey() (string, error) {
	key := s.in.EncryptionKey
	if key == "" {
		created, err := s.deps.CLI.CreateEncryptionKey(s.ctx)
		if err != nil {
			return "", err
		}
		key = created
	}
	s.deps.Runtime.SetSecret(key)
	if err := s.deps.Runtime.SetOutput(messages.OutputEncryptionKey, key); err != nil {
		return "", err
	}
	if s.in.StackName != "" {
		if err := s.deps.CLI.SaveEncryptionKey(s.ctx, key, s.in.StackName); err != nil {
			return "", err
		}
	}
	return key, nil
}

func (s *step) configureCommitter() error {
	if s.in.GitCommitterName != "" {
		if err := s.deps.Git.SetCommitterName(s.ctx, s.in.GitCommitterName); err != nil {
			return err
		}
	}
	if s.in.GitCommitterEmail != "" {
		if err := s.deps.Git.SetCommitterEmail(s.ctx, s.in.GitCommitterEmail); err != nil {
			return err
		}
	}
	return nil
}

func (s *step) group(name string, fn func() error) error {
	s.deps.Runtime.Group(name)
	defer s.deps.Runtime.EndGroup()
	return fn()
}
