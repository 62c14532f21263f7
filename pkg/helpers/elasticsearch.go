package helpers

import (
	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient builds an Elasticsearch client. Credentials are optional.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{Addresses: addrs}
	if username != "" {
		cfg.Username = username
		cfg.Password = password
	}
	return elasticsearch.NewClient(cfg)
}
