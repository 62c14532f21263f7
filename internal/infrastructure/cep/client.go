package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/pkg/helpers"
)

var (
	ErrInvalidCEP  = errors.New("cep must be 8 digits")
	ErrCEPNotFound = errors.New("cep not found")
)

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// Address is the atomic result of a successful lookup: either all four
// fields come from the same lookup or none do.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Client looks up Brazilian postal codes via ViaCEP with a Redis
// cache-aside in front (successful lookups only).
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Redis    *redis.Client
	CacheTTL time.Duration
	Logger   *logrus.Logger
}

func NewClient(baseURL string, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		BaseURL:  baseURL,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Redis:    rdb,
		CacheTTL: ttl,
		Logger:   logger,
	}
}

func cacheKey(code string) string { return "cep:" + code }

// Lookup resolves an 8-digit CEP to an address.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	if !cepPattern.MatchString(code) {
		return nil, ErrInvalidCEP
	}

	if c.Redis != nil {
		var cached Address
		if ok, err := helpers.RedisGetJSON(ctx, c.Redis, cacheKey(code), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidCEP
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep returned status %d", res.StatusCode)
	}

	var payload struct {
		CEP          string `json:"cep"`
		Street       string `json:"logradouro"`
		Neighborhood string `json:"bairro"`
		City         string `json:"localidade"`
		State        string `json:"uf"`
		NotFound     bool   `json:"erro"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.NotFound {
		return nil, ErrCEPNotFound
	}

	addr := &Address{
		CEP:          code,
		Street:       payload.Street,
		Neighborhood: payload.Neighborhood,
		City:         payload.City,
		State:        payload.State,
	}

	if c.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, c.Redis, cacheKey(code), addr, c.CacheTTL); err != nil && c.Logger != nil {
			c.Logger.WithError(err).WithField("cep", code).Warn("cep cache write failed")
		}
	}
	return addr, nil
}
