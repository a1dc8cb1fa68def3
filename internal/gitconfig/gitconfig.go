// Package gitconfig writes the global Git settings a CI job needs to push as OrgFlow.
package gitconfig

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/setup-orgflow/internal/cli"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

const (
	gitExecutable = "git"
	// CacheHelper keeps credentials in memory for 24 hours to limit calls into the CLI.
	CacheHelper = "cache --timeout=86400"
)

// CredentialStore saves Git credentials and renders the matching credential helper.
type CredentialStore interface {
	SaveGitCredentials(ctx context.Context, username, password, encryptionKey, stackName string) error
	CredentialHelperCommandLine(encryptionKey, stackName string) string
}

// Configurer runs `git config --global`.
type Configurer struct {
	exec   cli.Executor
	logger *log.Logger
}

// New returns a Configurer. A nil exec uses cli.RealExecutor.
func New(exec cli.Executor, logger *log.Logger) *Configurer {
	if exec == nil {
		exec = cli.RealExecutor{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Configurer{exec: exec, logger: logger}
}

// SetCommitterName sets user.name.
func (c *Configurer) SetCommitterName(ctx context.Context, name string) error {
	c.logger.Debug(messages.GitSettingCommitterName, "name", name)
	return c.config(ctx, "user.name", name)
}

// SetCommitterEmail sets user.email.
func (c *Configurer) SetCommitterEmail(ctx context.Context, email string) error {
	c.logger.Debug(messages.GitSettingCommitterEmail, "email", email)
	return c.config(ctx, "user.email", email)
}

// ConfigureAuthentication saves credentials through store and registers OrgFlow
// as a Git credential helper, followed by an in-memory cache helper.
func (c *Configurer) ConfigureAuthentication(ctx context.Context, store CredentialStore, username, password, encryptionKey, stackName string) error {
	c.logger.Debug(messages.GitConfiguringAuthentication, "stack", stackName)
	if err := store.SaveGitCredentials(ctx, username, password, encryptionKey, stackName); err != nil {
		return err
	}
	// "!" tells git to run the helper as a shell command.
	helper := "!" + store.CredentialHelperCommandLine(encryptionKey, stackName)
	if err := c.addCredentialHelper(ctx, helper); err != nil {
		return err
	}
	if err := c.addCredentialHelper(ctx, CacheHelper); err != nil {
		return err
	}
	c.logger.Debug(messages.GitAuthenticationConfigured, "stack", stackName)
	return nil
}

func (c *Configurer) addCredentialHelper(ctx context.Context, helper string) error {
	return c.run(ctx, "--global", "--add", "credential.helper", helper)
}

func (c *Configurer) config(ctx context.Context, key, value string) error {
	return c.run(ctx, "--global", key, value)
}

func (c *Configurer) run(ctx context.Context, args ...string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := c.exec.Run(ctx, gitExecutable, append([]string{"config"}, args...)...)
	if err != nil {
		return fmt.Errorf(messages.CLIStartFmt, gitExecutable, "config", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf(messages.CLIExitFmt, gitExecutable, "config", result.ExitCode, result.Stderr)
	}
	return nil
}
