// Package redis stores intercepted errors as entries of a Redis stream.
// Each entry carries the JSON encoded record under the "payload" field.
package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
	"github.com/shuldan/errorinterceptor/pkg/reporter"
)

type Sink struct {
	client redis.UniversalClient
	config *config
	owned  bool
}

func New(client redis.UniversalClient, opts ...Option) (*Sink, error) {
	if client == nil {
		return nil, ErrInvalidClient
	}

	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}

	return &Sink{client: client, config: c}, nil
}

// FromConfig builds a sink and its own client from a section such as:
//
//	addr: localhost:6379
//	db: 0
//	stream: errors:intercepted
//	max_len: 10000
func FromConfig(cfg contracts.Config) (*Sink, error) {
	addr := cfg.GetString("addr")
	if addr == "" {
		return nil, ErrMissingAddr
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: cfg.GetString("username"),
		Password: cfg.GetString("password"),
		DB:       cfg.GetInt("db"),
	})

	s, err := New(client,
		WithStream(cfg.GetString("stream")),
		WithMaxLen(int64(cfg.GetInt("max_len"))),
		WithApproximateTrimming(cfg.GetBool("approximate_trim", true)),
	)
	if err != nil {
		return nil, err
	}
	s.owned = true
	return s, nil
}

func (s *Sink) Stream() string {
	return s.config.stream
}

func (s *Sink) Report(ctx context.Context, record reporter.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return ErrEncodeRecord.WithDetail("id", record.ID).WithCause(err)
	}

	args := &redis.XAddArgs{
		Stream: s.config.stream,
		Values: map[string]interface{}{"payload": string(payload)},
	}
	if s.config.maxLen > 0 {
		args.MaxLen = s.config.maxLen
		args.Approx = s.config.approximateTrim
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return ErrAppendFailed.
			WithDetail("id", record.ID).
			WithDetail("stream", s.config.stream).
			WithCause(err)
	}
	return nil
}

// Close releases the client when the sink created it in FromConfig.
func (s *Sink) Close() error {
	if !s.owned {
		return nil
	}
	if err := s.client.Close(); err != nil {
		return ErrCloseFailed.WithCause(err)
	}
	return nil
}
