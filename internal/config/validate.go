package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/conn-castle/setup-orgflow/internal/logging"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []error
	if strings.TrimSpace(c.ToolName) == "" {
		problems = append(problems, fmt.Errorf(messages.ConfigFieldRequiredFmt, "tool_name"))
	}
	if strings.ContainsAny(c.ToolName, `/\`) {
		problems = append(problems, fmt.Errorf(messages.ConfigToolNameInvalidFmt, c.ToolName))
	}
	if strings.TrimSpace(c.ProductID) == "" {
		problems = append(problems, fmt.Errorf(messages.ConfigFieldRequiredFmt, "product_id"))
	}
	if err := validateServiceURL(c.ServiceURL); err != nil {
		problems = append(problems, err)
	}
	if c.CacheRoot == "" {
		problems = append(problems, fmt.Errorf(messages.ConfigFieldRequiredFmt, "cache_root"))
	}
	if c.TempDir == "" {
		problems = append(problems, fmt.Errorf(messages.ConfigFieldRequiredFmt, "temp_dir"))
	}
	if c.HTTPTimeoutSeconds <= 0 {
		problems = append(problems, fmt.Errorf(messages.ConfigPositiveRequiredFmt, "http_timeout_seconds", c.HTTPTimeoutSeconds))
	}
	if c.MaxDownloadMB <= 0 {
		problems = append(problems, fmt.Errorf(messages.ConfigPositiveRequiredFmt, "max_download_mb", c.MaxDownloadMB))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err)
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrConfigValidation, errors.Join(problems...))
}

func validateServiceURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf(messages.ConfigServiceURLInvalidFmt, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf(messages.ConfigServiceURLInvalidFmt, raw, errors.New("must be an absolute http(s) URL"))
	}
	return nil
}
