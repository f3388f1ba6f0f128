package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	gh "github.com/google/go-github/v32/github"
	"golang.org/x/oauth2"

	"github.com/mateuszmigas/update-beacon/internal/assets"
	"github.com/mateuszmigas/update-beacon/internal/logger"
	"github.com/mateuszmigas/update-beacon/internal/version"
)

// assetsPageSize is the page size used when listing release assets.
const assetsPageSize = 100

const (
	// APIEndpointEnvVar overrides the API base URL, for self-hosted GitHub
	// deployments.
	APIEndpointEnvVar = "UPDATE_BEACON_API_URL"

	// UploadEndpointEnvVar overrides the upload base URL. Defaults to the
	// API endpoint when only APIEndpointEnvVar is set.
	UploadEndpointEnvVar = "UPDATE_BEACON_UPLOAD_URL"
)

// Release identifies one release on the hosting platform.
type Release struct {
	// ID is the numeric release identifier.
	ID int64
	// TagName is the git tag the release is bound to, empty for drafts.
	TagName string
}

// Client wraps the GitHub API for release asset manipulation.
type Client struct {
	api  *gh.Client
	http *http.Client
}

// Option adjusts a Client during construction.
type Option func(*Client) error

// WithEndpoints points the client at alternative API and upload base URLs.
func WithEndpoints(apiURL, uploadURL string) Option {
	return func(c *Client) error {
		base, err := parseBaseURL(apiURL)
		if err != nil {
			return fmt.Errorf("parse API URL: %w", err)
		}

		upload, err := parseBaseURL(uploadURL)
		if err != nil {
			return fmt.Errorf("parse upload URL: %w", err)
		}

		c.api.BaseURL = base
		c.api.UploadURL = upload

		return nil
	}
}

// WithTimeout bounds every API call issued by the client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		c.http.Timeout = timeout

		return nil
	}
}

// NewClient builds an authenticated GitHub client. Endpoint overrides from
// the environment are applied first, explicit options win over them.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, source)

	client := &Client{
		api:  gh.NewClient(httpClient),
		http: httpClient,
	}
	client.api.UserAgent = version.UserAgent()

	if err := applyEndpointsFromEnv(client); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// applyEndpointsFromEnv re-points the client at a self-hosted deployment
// when the endpoint variables are set.
func applyEndpointsFromEnv(c *Client) error {
	apiURL := strings.TrimSpace(os.Getenv(APIEndpointEnvVar))
	if apiURL == "" {
		return nil
	}

	uploadURL := strings.TrimSpace(os.Getenv(UploadEndpointEnvVar))
	if uploadURL == "" {
		uploadURL = apiURL
	}

	return WithEndpoints(apiURL, uploadURL)(c)
}

// ReleaseByTag resolves a release by its git tag.
func (c *Client) ReleaseByTag(ctx context.Context, owner, repo, tag string) (*Release, error) {
	release, _, err := c.api.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		return nil, fmt.Errorf("get release by tag %q: %w", tag, err)
	}

	return &Release{
		ID:      release.GetID(),
		TagName: release.GetTagName(),
	}, nil
}

// ListReleaseAssets returns every asset attached to the release, walking all
// pages.
func (c *Client) ListReleaseAssets(ctx context.Context, owner, repo string, releaseID int64) ([]assets.RemoteAsset, error) {
	var result []assets.RemoteAsset

	opts := &gh.ListOptions{PerPage: assetsPageSize}

	for {
		page, response, err := c.api.Repositories.ListReleaseAssets(ctx, owner, repo, releaseID, opts)
		if err != nil {
			return nil, fmt.Errorf("list release assets: %w", err)
		}

		for _, asset := range page {
			result = append(result, assets.RemoteAsset{
				Name:        asset.GetName(),
				ID:          asset.GetID(),
				DownloadURL: asset.GetBrowserDownloadURL(),
			})
		}

		if response.NextPage == 0 {
			break
		}

		opts.Page = response.NextPage
	}

	return result, nil
}

// FetchAssetContent downloads one asset's raw bytes.
func (c *Client) FetchAssetContent(ctx context.Context, owner, repo string, assetID int64) ([]byte, error) {
	// The redirect client carries no credentials, object storage rejects
	// signed URLs accompanied by an Authorization header.
	reader, _, err := c.api.Repositories.DownloadReleaseAsset(ctx, owner, repo, assetID, http.DefaultClient)
	if err != nil {
		return nil, fmt.Errorf("download release asset: %w", err)
	}

	defer func() {
		_ = reader.Close()
	}()

	contents, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read release asset: %w", err)
	}

	return contents, nil
}

// DeleteAsset removes one asset from the release.
func (c *Client) DeleteAsset(ctx context.Context, owner, repo string, assetID int64) error {
	if _, err := c.api.Repositories.DeleteReleaseAsset(ctx, owner, repo, assetID); err != nil {
		return fmt.Errorf("delete release asset: %w", err)
	}

	return nil
}

// UploadAssets attaches the local files to the release under their canonical
// asset names.
func (c *Client) UploadAssets(ctx context.Context, owner, repo string, releaseID int64, artifacts []assets.Artifact) error {
	for _, artifact := range artifacts {
		if err := c.uploadAsset(ctx, owner, repo, releaseID, artifact.Path); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) uploadAsset(ctx context.Context, owner, repo string, releaseID int64, path string) error {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	name := assets.NormalizeName(path)
	logger.InfoKV(ctx, "Uploading release asset", "name", name, "path", path)

	if _, _, err := c.api.Repositories.UploadReleaseAsset(ctx, owner, repo, releaseID, &gh.UploadOptions{Name: name}, file); err != nil {
		return fmt.Errorf("upload asset %q: %w", name, err)
	}

	return nil
}

// parseBaseURL parses an endpoint and keeps the trailing slash the API
// client requires.
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	return url.Parse(raw)
}
