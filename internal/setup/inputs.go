package setup

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// Action input names.
const (
	InputVersion            = "version"
	InputIncludePrerelease  = "include-prerelease"
	InputSkipInstall        = "skip-install"
	InputLicenseKey         = "license-key"
	InputSalesforceUsername = "salesforce-username"
	InputSalesforcePassword = "salesforce-password"
	InputGitUsername        = "git-username"
	InputGitPassword        = "git-password"
	InputGitCommitterName   = "git-committer-name"
	InputGitCommitterEmail  = "git-committer-email"
	InputStackName          = "stack-name"
	InputEncryptionKey      = "encryption-key"
	InputLogFileName        = "log-file-name"
	InputLogLevel           = "log-level"
	InputUploadArtifact     = "upload-artifact"
)

// DefaultLogFileName is used when log-file-name is empty.
const DefaultLogFileName = "orgflow.log"

const encryptionKeyLength = 64

// InputSource reads action inputs.
type InputSource interface {
	Input(name string) string
	BoolInput(name string, def bool) (bool, error)
}

// Inputs are the action inputs of the setup step.
type Inputs struct {
	Version            string
	IncludePrerelease  bool
	SkipInstall        bool
	LicenseKey         string
	SalesforceUsername string
	SalesforcePassword string
	GitUsername        string
	GitPassword        string
	GitCommitterName   string
	GitCommitterEmail  string
	StackName          string
	EncryptionKey      string
	LogFileName        string
	LogLevel           string
}

// ReadInputs reads every input from src. Malformed booleans are errors.
func ReadInputs(src InputSource) (Inputs, error) {
	in := Inputs{
		Version:            src.Input(InputVersion),
		LicenseKey:         src.Input(InputLicenseKey),
		SalesforceUsername: src.Input(InputSalesforceUsername),
		SalesforcePassword: src.Input(InputSalesforcePassword),
		GitUsername:        src.Input(InputGitUsername),
		GitPassword:        src.Input(InputGitPassword),
		GitCommitterName:   src.Input(InputGitCommitterName),
		GitCommitterEmail:  src.Input(InputGitCommitterEmail),
		StackName:          src.Input(InputStackName),
		EncryptionKey:      src.Input(InputEncryptionKey),
		LogFileName:        src.Input(InputLogFileName),
		LogLevel:           src.Input(InputLogLevel),
	}
	if in.LogFileName == "" {
		in.LogFileName = DefaultLogFileName
	}
	var err error
	if in.IncludePrerelease, err = src.BoolInput(InputIncludePrerelease, false); err != nil {
		return Inputs{}, err
	}
	if in.SkipInstall, err = src.BoolInput(InputSkipInstall, false); err != nil {
		return Inputs{}, err
	}
	return in, nil
}

// Validate reports every violated input rule at once.
func (in Inputs) Validate() error {
	var problems []error
	if in.LicenseKey == "" {
		problems = append(problems, fmt.Errorf(messages.SetupInputRequiredFmt, InputLicenseKey))
	}
	if (in.SalesforceUsername == "") != (in.SalesforcePassword == "") {
		problems = append(problems, errors.New(messages.SetupSalesforcePair))
	}
	if in.GitUsername != "" && in.GitPassword == "" {
		problems = append(problems, errors.New(messages.SetupGitUsernameWithoutPassword))
	}
	if in.StackName == "" && in.SalesforcePassword != "" {
		problems = append(problems, errors.New(messages.SetupStackRequiredForSalesforce))
	}
	if in.StackName == "" && in.GitPassword != "" {
		problems = append(problems, errors.New(messages.SetupStackRequiredForGit))
	}
	if in.EncryptionKey != "" && !validEncryptionKey(in.EncryptionKey) {
		problems = append(problems, errors.New(messages.SetupEncryptionKeyInvalid))
	}
	return errors.Join(problems...)
}

func validEncryptionKey(key string) bool {
	if len(key) != encryptionKeyLength {
		return false
	}
	_, err := hex.DecodeString(key)
	return err == nil
}
