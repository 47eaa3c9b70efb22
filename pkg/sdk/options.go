package tagsim

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type source string

const (
	sourceItems   source = "items"
	sourceParquet source = "parquet"
	sourceRedis   source = "redis"
	sourceValkey  source = "valkey"
)

type clientConfig struct {
	source source

	items []Item

	parquetPath string
	columns     Columns

	addrs     []string
	password  string
	keyPrefix string

	defaultK int
	maxK     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// Columns names the parquet columns holding item fields.
// Empty names default to anime_id, name and genre.
type Columns struct {
	ID   string
	Name string
	Tags string
}

// WithItems loads the catalog from memory. Item order is catalog order,
// which breaks ties between equal scores.
func WithItems(items ...Item) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = sourceItems
		c.items = items
	})
}

// WithParquet loads the catalog from a parquet file.
func WithParquet(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = sourceParquet
		c.parquetPath = path
	})
}

// WithColumns overrides the parquet column names used by WithParquet.
func WithColumns(cols Columns) Option {
	return optionFunc(func(c *clientConfig) {
		c.columns = cols
	})
}

// WithValkey loads the catalog stored in a Valkey instance by `tagsim import`.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = sourceValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis loads the catalog stored in a Redis instance by `tagsim import`.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = sourceRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the key namespace used with WithRedis/WithValkey.
// Default: "tagsim:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithLimits sets the K used when Recommend gets k == 0, and the largest K served.
// Defaults: 5 and 500.
func WithLimits(defaultK, maxK int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultK = defaultK
		c.maxK = maxK
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithMetrics registers SDK metrics (operation counts and durations, plus the
// recommendation metrics the server exports) on the given registerer.
// Pass nil to disable (default).
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
