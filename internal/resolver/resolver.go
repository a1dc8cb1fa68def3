// Package resolver asks the download service which version satisfies a constraint.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/setup-orgflow/internal/errs"
	"github.com/conn-castle/setup-orgflow/internal/messages"
	"github.com/conn-castle/setup-orgflow/internal/runtimeid"
)

// Constraint narrows the acceptable versions. It is forwarded to the service unchanged.
type Constraint struct {
	// Filter is a version-range expression; empty means any version.
	Filter            string
	IncludePrerelease bool
}

// Version holds the semantic version components reported by the service.
type Version struct {
	Major      int    `json:"major"`
	Minor      int    `json:"minor"`
	Patch      int    `json:"patch"`
	Prerelease string `json:"prerelease"`
	Build      string `json:"build"`
}

// Descriptor describes exactly one downloadable version.
type Descriptor struct {
	FullName      string  `json:"fullName"`
	DownloadURL   string  `json:"downloadUrl"`
	ProductID     string  `json:"productId"`
	VersionString string  `json:"versionString"`
	Version       Version `json:"version"`
	RuntimeID     string  `json:"runtimeId"`
	Format        string  `json:"format"`
}

// Options configures a Resolver.
type Options struct {
	// BaseURL is the service root, e.g. https://host/download/v2.
	BaseURL   string
	ProductID string
	RuntimeID runtimeid.ID
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Resolver queries the download service. It never compares versions locally:
// "newest" and tie-breaking are decided by the service.
type Resolver struct {
	baseURL   string
	productID string
	runtimeID runtimeid.ID
	client    *http.Client
	logger    *log.Logger
}

// New returns a Resolver for opts.
func New(opts Options) *Resolver {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		productID: opts.ProductID,
		runtimeID: opts.RuntimeID,
		client:    client,
		logger:    logger,
	}
}

// LookupURL returns the latest-version lookup URL for constraint.
func (r *Resolver) LookupURL(constraint Constraint) (string, error) {
	u, err := url.Parse(fmt.Sprintf("%s/%s/%s/latest/zip", r.baseURL, url.PathEscape(r.productID), r.runtimeID))
	if err != nil {
		return "", fmt.Errorf(messages.ResolverBuildURLFmt, err)
	}
	query := u.Query()
	if constraint.Filter != "" {
		query.Set("versionFilter", constraint.Filter)
	}
	if constraint.IncludePrerelease {
		query.Set("includePrerelease", "true")
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// Resolve returns the newest version satisfying constraint.
// A 404 from the service is *errs.VersionNotFoundError; any other failure is *errs.TransportError.
func (r *Resolver) Resolve(ctx context.Context, constraint Constraint) (Descriptor, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	lookupURL, err := r.LookupURL(constraint)
	if err != nil {
		return Descriptor{}, err
	}
	if constraint.Filter != "" {
		r.logger.Debug(messages.ResolverUsingFilter, "filter", constraint.Filter)
	}
	if constraint.IncludePrerelease {
		r.logger.Debug(messages.ResolverIncludingPrerelease)
	}
	r.logger.Debug(messages.ResolverChecking, "url", lookupURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return Descriptor{}, &errs.TransportError{URL: lookupURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", messages.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return Descriptor{}, &errs.TransportError{URL: lookupURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Descriptor{}, &errs.VersionNotFoundError{Filter: constraint.Filter, IncludePrerelease: constraint.IncludePrerelease}
	default:
		return Descriptor{}, &errs.TransportError{URL: lookupURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var descriptor Descriptor
	if err := json.NewDecoder(resp.Body).Decode(&descriptor); err != nil {
		return Descriptor{}, &errs.TransportError{URL: lookupURL, StatusCode: resp.StatusCode, Status: resp.Status, Err: fmt.Errorf(messages.ResolverDecodeFmt, err)}
	}
	if strings.TrimSpace(descriptor.VersionString) == "" {
		return Descriptor{}, &errs.TransportError{URL: lookupURL, StatusCode: resp.StatusCode, Status: resp.Status, Err: fmt.Errorf(messages.ResolverMissingFieldFmt, "versionString")}
	}
	if strings.TrimSpace(descriptor.DownloadURL) == "" {
		return Descriptor{}, &errs.TransportError{URL: lookupURL, StatusCode: resp.StatusCode, Status: resp.Status, Err: fmt.Errorf(messages.ResolverMissingFieldFmt, "downloadUrl")}
	}

	r.logger.Info(messages.ResolverLatestAvailable, "version", descriptor.VersionString)
	return descriptor, nil
}
