// Package imagehost implements the sm.ms image hosting client. The
// document store cannot embed images it served itself, so newsletter
// covers are downloaded and re-hosted here before insertion.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"notigram/internal/config"
)

const (
	defaultBaseURL = "https://sm.ms/api/v2"

	// tokenTTL is how long a cached API token stays valid before a fresh
	// login is forced.
	tokenTTL = 7 * 24 * time.Hour
)

// Client talks to the sm.ms API. Session lifecycle (login when the cached
// token is absent or expired) is handled internally; callers only see
// uploads succeeding or failing.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	baseURL   string
	username  string
	password  string
	cacheDir  string
	tokenFile string
}

// NewClient builds a Client from configuration. The cache directory holds
// the token file and temporary download artifacts.
func NewClient(cfg config.ImageHostConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		logger:     logger,
		baseURL:    defaultBaseURL,
		username:   cfg.Username,
		password:   cfg.Password,
		cacheDir:   cfg.CacheDir,
		tokenFile:  filepath.Join(cfg.CacheDir, "smms-token.json"),
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	// Images carries the already-hosted URL when the API reports an
	// image_repeated upload.
	Images string `json:"images"`
}

type tokenData struct {
	Token string `json:"token"`
}

type uploadData struct {
	URL string `json:"url"`
}

type cachedToken struct {
	Token         string `json:"token"`
	LastLoginTime int64  `json:"lastLoginTime"`
}

// UploadExternal fetches an image from an external URL and re-uploads it
// to the host, returning the hosted URL. The bytes pass through a temp
// file in the cache directory; the file is removed on success and left
// dangling on failure.
func (c *Client) UploadExternal(ctx context.Context, externalURL string) (string, error) {
	if err := c.ensureLogin(ctx); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(c.cacheDir, "tmpimage-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := c.fetchInto(ctx, externalURL, tmp); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	hosted, err := c.upload(ctx, tmpPath)
	if err != nil {
		return "", err
	}

	if err := os.Remove(tmpPath); err != nil {
		c.logger.Warn("failed to remove temp image", slog.String("path", tmpPath), slog.Any("error", err))
	}
	return hosted, nil
}

// Download fetches an image into dir under the given base name, inferring
// the file extension from the URL path.
func (c *Client) Download(ctx context.Context, imageURL, dir, name string) error {
	ext := urlExtension(imageURL)
	target := filepath.Join(dir, name+ext)

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	defer func() {
		_ = out.Close()
	}()

	return c.fetchInto(ctx, imageURL, out)
}

// fetchInto streams the response body of a GET into w.
func (c *Client) fetchInto(ctx context.Context, rawURL string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read image body: %w", err)
	}
	return nil
}

// upload posts one file as multipart form data and returns the hosted URL.
// An image_repeated response is success: the host already has the bytes
// and returns the existing URL.
func (c *Client) upload(ctx context.Context, path string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("smfile", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy file into form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	token, err := c.readToken()
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", token)

	var resp apiResponse
	if err := c.doJSON(req, &resp); err != nil {
		return "", err
	}

	if resp.Success {
		var data uploadData
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return "", fmt.Errorf("decode upload data: %w", err)
		}
		return data.URL, nil
	}
	if resp.Code == "image_repeated" {
		return resp.Images, nil
	}
	return "", fmt.Errorf("upload rejected: %s: %s", resp.Code, resp.Message)
}

// ensureLogin refreshes the cached token when it is missing or older than
// tokenTTL.
func (c *Client) ensureLogin(ctx context.Context) error {
	if c.isLoggedIn() {
		return nil
	}
	return c.login(ctx)
}

func (c *Client) isLoggedIn() bool {
	cached, err := c.readTokenFile()
	if err != nil {
		return false
	}
	age := time.Since(time.UnixMilli(cached.LastLoginTime))
	return age < tokenTTL
}

func (c *Client) login(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp apiResponse
	if err := c.doJSON(req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("login rejected: %s: %s", resp.Code, resp.Message)
	}

	var data tokenData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return fmt.Errorf("decode token data: %w", err)
	}

	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	raw, err := json.Marshal(cachedToken{Token: data.Token, LastLoginTime: time.Now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("marshal token cache: %w", err)
	}
	if err := os.WriteFile(c.tokenFile, raw, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}

	c.logger.Info("image host login refreshed")
	return nil
}

func (c *Client) readToken() (string, error) {
	cached, err := c.readTokenFile()
	if err != nil {
		return "", fmt.Errorf("read token cache: %w", err)
	}
	return cached.Token, nil
}

func (c *Client) readTokenFile() (*cachedToken, error) {
	raw, err := os.ReadFile(c.tokenFile)
	if err != nil {
		return nil, err
	}
	var cached cachedToken
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

func (c *Client) doJSON(req *http.Request, out *apiResponse) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// urlExtension extracts a lowercase file extension from an image URL,
// ignoring the query string.
func urlExtension(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(filepath.Ext(parsed.Path))
}
