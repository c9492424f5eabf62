package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gyaneshwarpardhi/trackwire/internal/wire"
)

// Transport delivers encoded DTOs to the collection side.
type Transport interface {
	Send(ctx context.Context, dto wire.DTO) error
}

// Writer writes DTOs as JSON lines.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	pretty bool
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer, pretty bool) *Writer {
	return &Writer{w: w, pretty: pretty}
}

// Send marshals dto and writes it followed by a newline.
func (w *Writer) Send(ctx context.Context, dto wire.DTO) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var data []byte
	var err error
	if w.pretty {
		data, err = json.MarshalIndent(dto, "", "  ")
	} else {
		data, err = json.Marshal(dto)
	}
	if err != nil {
		return fmt.Errorf("marshal dto: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write dto: %w", err)
	}
	return nil
}

// Open returns a Writer for output ("stdout" or a file path, appended to)
// and a close function.
func Open(output string, pretty bool) (*Writer, func() error, error) {
	if output == "stdout" {
		return NewWriter(os.Stdout, pretty), func() error { return nil }, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open transport output %s: %w", output, err)
	}
	return NewWriter(f, pretty), f.Close, nil
}

// Discard drops every DTO.
type Discard struct{}

func (Discard) Send(context.Context, wire.DTO) error { return nil }
