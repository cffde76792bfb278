// Package cashregister prints receipts on a cash register attached to a
// serial port.
package cashregister

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/palazzem/cash-register/internal/core/push"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
	"go.bug.st/serial"
)

const Name = "cash_register"

var ErrWriteTimeout = errors.New("serial write timed out")

type Config struct {
	Port         string
	BaudRate     int
	Timeout      time.Duration
	RegisterName string
}

// Opener connects to the register. The connection is closed after every receipt.
type Opener func(cfg Config) (io.ReadWriteCloser, error)

type Option func(*Adapter)

func WithOpener(open Opener) Option {
	return func(a *Adapter) { a.open = open }
}

// Adapter sends the sold rows to the register. Only one receipt at a time
// can be printed, concurrent pushes wait for the device.
type Adapter struct {
	cfg  Config
	open Opener
	mu   sync.Mutex
}

func New(cfg Config, opts ...Option) *Adapter {
	a := &Adapter{cfg: cfg, open: openSerial}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Name() string {
	return Name
}

func (a *Adapter) PushRows(_ context.Context, rows []push.Row) error {
	payload, err := EncodeSaremaX1(rows)
	if err != nil {
		return push.Failed(Name, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	conn, err := a.open(a.cfg)
	if err != nil {
		return push.NotReady(Name, fmt.Errorf("open %s: %w", a.cfg.Port, err))
	}
	defer conn.Close()

	if err := writeWithTimeout(conn, payload, a.cfg.Timeout); err != nil {
		return push.NotReady(Name, fmt.Errorf("write %s: %w", a.cfg.Port, err))
	}

	logx.Debug().
		Str("register", a.cfg.RegisterName).
		Str("port", a.cfg.Port).
		Int("rows", len(rows)).
		Msg("receipt printed")
	return nil
}

func openSerial(cfg Config) (io.ReadWriteCloser, error) {
	port, err := serial.Open(cfg.Port, &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(cfg.Timeout); err != nil {
		_ = port.Close()
		return nil, err
	}
	return port, nil
}

// writeWithTimeout bounds a write on a port that has no write deadline. On
// timeout the connection is closed to release the blocked write.
func writeWithTimeout(conn io.WriteCloser, payload []byte, timeout time.Duration) error {
	if timeout <= 0 {
		_, err := conn.Write(payload)
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, err := conn.Write(payload)
		done <- err
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		_ = conn.Close()
		return ErrWriteTimeout
	}
}
