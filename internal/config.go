package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BufferSize      int           `env:"BUFFER_SIZE,required=true"`
	NumberOfWorkers int           `env:"NUMBER_OF_WORKERS,required=true"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,required=true"`
	Host            string        `env:"HOST,required=true"`
	Port            int           `env:"PORT,required=true"`
	DebugPort       int           `env:"DEBUG_PORT"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT,required=true"`

	DeliveryTimeout     time.Duration `env:"DELIVERY_TIMEOUT,required=true"`
	DeliveryMaxAttempts int           `env:"DELIVERY_MAX_ATTEMPTS,required=true"`
	BackoffBaseDelay    time.Duration `env:"BACKOFF_BASE_DELAY,required=true"`
	BackoffMaxDelay     time.Duration `env:"BACKOFF_MAX_DELAY,required=true"`

	// PageEndpoints maps page ids to their webhook destinations, e.g.
	// "511=https://hooks.example.com/delta;512=https://other.example.com".
	PageEndpoints string `env:"PAGE_ENDPOINTS,required=true"`
}

// ParsePageEndpoints validates and expands the PAGE_ENDPOINTS syntax.
func ParsePageEndpoints(raw string) (map[int64]string, error) {
	endpoints := make(map[int64]string)
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, url, ok := strings.Cut(pair, "=")
		if !ok || url == "" {
			return nil, fmt.Errorf("PAGE_ENDPOINTS entry %q must look like id=url", pair)
		}
		pageID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("PAGE_ENDPOINTS entry %q has a non-numeric page id", pair)
		}
		endpoints[pageID] = strings.TrimSpace(url)
	}
	return endpoints, nil
}
