// Package cli runs OrgFlow CLI commands on behalf of the setup flow.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/kballard/go-shellquote"

	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// Command names understood by the OrgFlow CLI.
const (
	CommandStackList           = "stack:list"
	CommandKeyCreate           = "auth:key:create"
	CommandKeySave             = "auth:key:save"
	CommandSalesforceSave      = "auth:salesforce:save"
	CommandGitSave             = "auth:git:save"
	CommandGitCredentialHelper = "auth:git:credentialhelper"
	CommandStackSetDefault     = "stack:setdefault"
	locationLocal              = "--location=local"
)

// Runner invokes the tool through an Executor.
type Runner struct {
	tool   string
	exec   Executor
	logger *log.Logger
}

// New returns a Runner for tool. A nil exec uses RealExecutor.
func New(tool string, exec Executor, logger *log.Logger) *Runner {
	if exec == nil {
		exec = RealExecutor{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{tool: tool, exec: exec, logger: logger}
}

// Tool returns the executable name the runner invokes.
func (r *Runner) Tool() string {
	return r.tool
}

// Exec runs `<tool> <command> args...` and returns its trimmed stdout.
func (r *Runner) Exec(ctx context.Context, command string, args ...string) (string, error) {
	return run(ctx, r.exec, r.tool, command, args...)
}

// run executes name command args... and fails on a non-zero exit.
func run(ctx context.Context, exec Executor, name string, command string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := exec.Run(ctx, name, append([]string{command}, args...)...)
	if err != nil {
		return "", fmt.Errorf(messages.CLIStartFmt, name, command, err)
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf(messages.CLIExitFmt, name, command, result.ExitCode, result.Stderr)
	}
	return result.Stdout, nil
}

// SetLicenseKey validates and stores licenseKey. stack:list is the cheapest command that accepts it.
func (r *Runner) SetLicenseKey(ctx context.Context, licenseKey string) error {
	r.logger.Debug(messages.CLIValidatingLicenseKey)
	if _, err := r.Exec(ctx, CommandStackList, "--licenseKey="+licenseKey); err != nil {
		return err
	}
	r.logger.Debug(messages.CLILicenseKeySaved)
	return nil
}

// CreateEncryptionKey asks the CLI for a new encryption key.
func (r *Runner) CreateEncryptionKey(ctx context.Context) (string, error) {
	r.logger.Debug(messages.CLICreatingEncryptionKey)
	key, err := r.Exec(ctx, CommandKeyCreate)
	if err != nil {
		return "", err
	}
	r.logger.Debug(messages.CLIEncryptionKeyCreated)
	return key, nil
}

// SaveEncryptionKey stores encryptionKey locally for stackName.
func (r *Runner) SaveEncryptionKey(ctx context.Context, encryptionKey, stackName string) error {
	r.logger.Debug(messages.CLISavingEncryptionKey, "stack", stackName)
	_, err := r.Exec(ctx, CommandKeySave,
		"--encryptionKey="+encryptionKey,
		"--stack="+stackName)
	return err
}

// SaveSalesforceCredentials stores Salesforce credentials locally for stackName.
func (r *Runner) SaveSalesforceCredentials(ctx context.Context, username, password, stackName string) error {
	r.logger.Debug(messages.CLISavingSalesforceCredentials, "stack", stackName)
	_, err := r.Exec(ctx, CommandSalesforceSave,
		"--username="+username,
		"--password="+password,
		"--stack="+stackName,
		locationLocal)
	return err
}

// SaveGitCredentials stores Git credentials locally for stackName, encrypted with encryptionKey.
func (r *Runner) SaveGitCredentials(ctx context.Context, username, password, encryptionKey, stackName string) error {
	r.logger.Debug(messages.CLISavingGitCredentials, "stack", stackName)
	_, err := r.Exec(ctx, CommandGitSave,
		"--username="+username,
		"--password="+password,
		"--encryptionKey="+encryptionKey,
		"--stack="+stackName,
		locationLocal)
	return err
}

// SetDefaultStack makes stackName the default for later CLI invocations.
func (r *Runner) SetDefaultStack(ctx context.Context, stackName string) error {
	r.logger.Debug(messages.CLISettingDefaultStack, "stack", stackName)
	_, err := r.Exec(ctx, CommandStackSetDefault, "--name="+stackName)
	return err
}

// CredentialHelperCommandLine returns the shell command git runs to obtain credentials.
func (r *Runner) CredentialHelperCommandLine(encryptionKey, stackName string) string {
	return shellquote.Join(r.tool, CommandGitCredentialHelper,
		"--encryptionKey="+encryptionKey,
		"--stack="+stackName)
}
