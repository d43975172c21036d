package breach

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// HIBPConfig configures the Have I Been Pwned range client.
type HIBPConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// HIBPClient queries the pwned-passwords range API with k-anonymity: only
// the first five characters of the SHA-1 digest ever leave the process, and
// the suffix match happens locally. Range responses are cached per prefix
// since they are identical for every password sharing that prefix.
type HIBPClient struct {
	baseURL string
	client  *http.Client
	cache   *gocache.Cache
	logger  zerolog.Logger
}

func NewHIBPClient(cfg HIBPConfig, logger zerolog.Logger) *HIBPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &HIBPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:  logger.With().Str("component", "hibp").Logger(),
	}
}

// CheckPassword reports whether the password's hash suffix appears in the
// range response for its prefix, along with the breach count reported by
// the service. Errors are returned for the caller to degrade fail-open.
func (c *HIBPClient) CheckPassword(ctx context.Context, password string) (bool, string, error) {
	digest := fmt.Sprintf("%X", sha1.Sum([]byte(password)))
	prefix, suffix := digest[:5], digest[5:]

	body, err := c.fetchRange(ctx, prefix)
	if err != nil {
		return false, "", err
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if parts[0] == suffix {
			return true, parts[1], nil
		}
	}
	return false, "", nil
}

func (c *HIBPClient) fetchRange(ctx context.Context, prefix string) (string, error) {
	if cached, ok := c.cache.Get(prefix); ok {
		return cached.(string), nil
	}

	url := c.baseURL + "/" + prefix
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build range request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("range request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("range request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read range response: %w", err)
	}

	c.cache.SetDefault(prefix, string(body))
	c.logger.Debug().Str("prefix", prefix).Int("bytes", len(body)).Msg("fetched range")
	return string(body), nil
}
