package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileSink appends each record as a YAML document to a single file.
type FileSink struct {
	path string
	mu   sync.Mutex
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (f *FileSink) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append([]byte("---\n"), data...)); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func (f *FileSink) List(ctx context.Context, limit int) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var recs []Record
	dec := yaml.NewDecoder(file)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var rec Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		if rec.ID == "" && rec.FinalText == "" {
			continue
		}
		recs = append(recs, rec)
	}

	return newestFirst(recs, limit), nil
}

func (f *FileSink) Close() error {
	return nil
}
