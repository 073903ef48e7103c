package secrets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

const defaultCacheTTL = 5 * time.Minute

// fetcher retrieves a single secret value from a remote store
type fetcher interface {
	fetch(ctx context.Context, name string) (string, error)
}

// VaultClient wraps Azure Key Vault client for secret retrieval
type VaultClient struct {
	remote    fetcher
	vaultName string
	logger    *zap.Logger
	cache     *secretCache
}

// VaultConfig holds configuration for the vault client
type VaultConfig struct {
	VaultName    string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// azureFetcher reads secrets through the Key Vault SDK
type azureFetcher struct {
	client *azsecrets.Client
}

func (f *azureFetcher) fetch(ctx context.Context, name string) (string, error) {
	resp, err := f.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		return "", err
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret '%s' has no value", name)
	}
	return *resp.Value, nil
}

// NewVaultClient creates a new Azure Key Vault client.
// DefaultAzureCredential tries environment credentials, managed identity and
// the Azure CLI login, in that order.
func NewVaultClient(cfg *VaultConfig, logger *zap.Logger) (*VaultClient, error) {
	if cfg.VaultName == "" {
		return nil, fmt.Errorf("vault name is required")
	}

	logger.Info("Initializing Azure Key Vault client",
		zap.String("vault_name", cfg.VaultName),
		zap.Bool("cache_enabled", cfg.CacheEnabled),
	)

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		logger.Error("Failed to create Azure credential", zap.Error(err))
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", cfg.VaultName)

	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		logger.Error("Failed to create Key Vault client", zap.Error(err))
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	logger.Info("Azure Key Vault client initialized successfully",
		zap.String("vault_url", vaultURL),
	)

	return newVaultClient(&azureFetcher{client: client}, cfg, logger), nil
}

func newVaultClient(remote fetcher, cfg *VaultConfig, logger *zap.Logger) *VaultClient {
	var cache *secretCache
	if cfg.CacheEnabled {
		ttl := cfg.CacheTTL
		if ttl == 0 {
			ttl = defaultCacheTTL
		}
		cache = newSecretCache(ttl, time.Now)
	}
	return &VaultClient{
		remote:    remote,
		vaultName: cfg.VaultName,
		logger:    logger,
		cache:     cache,
	}
}

// GetSecret retrieves a secret from Azure Key Vault
func (v *VaultClient) GetSecret(ctx context.Context, secretName string) (string, error) {
	if value, ok := v.cache.get(secretName); ok {
		v.logger.Debug("Secret retrieved from cache", zap.String("secret_name", secretName))
		return value, nil
	}

	v.logger.Debug("Fetching secret from Key Vault", zap.String("secret_name", secretName))

	value, err := v.remote.fetch(ctx, secretName)
	if err != nil {
		v.logger.Error("Failed to get secret from Key Vault",
			zap.String("secret_name", secretName),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to get secret '%s': %w", secretName, err)
	}

	v.cache.put(secretName, value)
	return value, nil
}

// ClearCache clears all cached secrets
func (v *VaultClient) ClearCache() {
	v.cache.clear()
	v.logger.Debug("Secret cache cleared")
}

// secretCache is a TTL cache safe for concurrent use. A nil cache stores nothing.
type secretCache struct {
	mu      sync.RWMutex
	entries map[string]cachedSecret
	ttl     time.Duration
	now     func() time.Time
}

type cachedSecret struct {
	value     string
	expiresAt time.Time
}

func newSecretCache(ttl time.Duration, now func() time.Time) *secretCache {
	return &secretCache{
		entries: make(map[string]cachedSecret),
		ttl:     ttl,
		now:     now,
	}
}

func (c *secretCache) get(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[name]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, name)
		c.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (c *secretCache) put(name, value string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries[name] = cachedSecret{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *secretCache) clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]cachedSecret)
	c.mu.Unlock()
}
