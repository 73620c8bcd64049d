package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sant0-9/captionkit/internal/config"
)

// Record is one finished caption as it is kept in history.
type Record struct {
	ID                 string    `yaml:"id"`
	SessionID          string    `yaml:"session_id"`
	OriginalCandidates []string  `yaml:"original_candidates"`
	FinalText          string    `yaml:"final_text"`
	Style              string    `yaml:"style"`
	LengthKey          string    `yaml:"length"`
	Language           string    `yaml:"language"`
	Profile            string    `yaml:"profile,omitempty"`
	ImagePath          string    `yaml:"image_path,omitempty"`
	PromptUsed         string    `yaml:"prompt_used"`
	CreatedAt          time.Time `yaml:"created_at"`
}

// Sink persists finished captions.
type Sink interface {
	Save(ctx context.Context, rec Record) error
}

// Reader lists saved captions, newest first. limit <= 0 means all.
type Reader interface {
	List(ctx context.Context, limit int) ([]Record, error)
}

// Store is a Sink that can also be read back and closed.
type Store interface {
	Sink
	Reader
	Close() error
}

// Open picks the backend named by cfg.Driver.
func Open(cfg config.HistoryConfig) (Store, error) {
	switch cfg.Driver {
	case "", config.HistoryFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file history requires a path")
		}
		return NewFileSink(cfg.Path), nil
	case config.HistoryPostgres:
		return OpenPostgres(cfg.DSN)
	case config.HistoryNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown history driver: %s", cfg.Driver)
	}
}

// Nop keeps nothing.
type Nop struct{}

func (Nop) Save(context.Context, Record) error { return nil }

func (Nop) List(context.Context, int) ([]Record, error) { return nil, nil }

func (Nop) Close() error { return nil }

func newestFirst(recs []Record, limit int) []Record {
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
