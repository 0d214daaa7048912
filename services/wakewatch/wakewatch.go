// Package wakewatch watches the external wake pin and turns pin interrupts
// plus the timing engine's post-sleep accessors into bus events. It owns
// the "was that the timer or the button, and for how long did we actually
// sleep" question so the sleep loop does not have to.
package wakewatch

import (
	"context"
	"sync/atomic"
	"time"

	"powercode-go/bus"
	"powercode-go/dbprint"
	"powercode-go/types"
)

// Bus topics published by this service.
var (
	TopicWake   = bus.T("wake", "event")
	TopicButton = bus.T("wake", "button")
)

// Timing is the slice of the timing engine this service consumes. The
// accessors must be used in this order after a sleep: query, clear, read
// elapsed; Report does exactly that.
type Timing interface {
	WakeWasTimer() bool
	ClearWake()
	ElapsedSleepSeconds() uint32
}

// Edge selection for the pin interrupt.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin is the wake pin as this service sees it. Implementations come
// from the register drivers or from test fakes.
type IRQPin interface {
	Get() bool
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
	Number() int
}

type Config struct {
	Pin      IRQPin
	Edge     Edge
	Debounce time.Duration
	Invert   bool // true when the button pulls the pin low

	// QueueSize bounds the ISR-to-worker queue. Defaults to 16.
	QueueSize int
}

type isrEvent struct {
	level bool // captured in ISR
}

type Service struct {
	cfg    Config
	timing Timing
	conn   *bus.Connection
	diag   *dbprint.Logger

	// Written by the ISR; MUST NOT block the ISR.
	isrQ  chan isrEvent
	drops uint32

	lastLevel bool
	lastEvent time.Time
}

func New(cfg Config, tm Timing, conn *bus.Connection, diag *dbprint.Logger) *Service {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	return &Service{
		cfg:    cfg,
		timing: tm,
		conn:   conn,
		diag:   diag,
		isrQ:   make(chan isrEvent, cfg.QueueSize),
	}
}

// Start registers the pin interrupt and runs the worker until ctx ends.
func (s *Service) Start(ctx context.Context) error {
	if err := s.register(); err != nil {
		return err
	}

	go func() {
		defer func() { _ = s.cfg.Pin.ClearIRQ() }()
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-s.isrQ:
				s.handle(ev)
			}
		}
	}()
	return nil
}

// register takes the initial logical snapshot and binds the pin interrupt.
// The ISR handler does a fast level read and a non-blocking channel send;
// it must never block interrupt context.
func (s *Service) register() error {
	s.lastLevel = s.logical(s.cfg.Pin.Get())

	handler := func() {
		l := s.cfg.Pin.Get()
		select {
		case s.isrQ <- isrEvent{level: l}:
		default:
			atomic.AddUint32(&s.drops, 1) // protect ISR path
		}
	}
	return s.cfg.Pin.SetIRQ(s.cfg.Edge, handler)
}

// Report disambiguates how the last sleep ended and publishes the result.
// Call it from the sleep loop right after Sleep returns, before the next
// wait is programmed.
func (s *Service) Report() types.WakeValue {
	cause := types.WakePin
	if s.timing.WakeWasTimer() {
		cause = types.WakeTimer
	}
	s.timing.ClearWake()
	elapsed := s.timing.ElapsedSleepSeconds()

	v := types.WakeValue{Cause: cause, ElapsedS: elapsed, TsMs: time.Now().UnixMilli()}
	s.conn.Publish(&bus.Message{Topic: TopicWake, Payload: v, Retained: true})

	if cause == types.WakeTimer {
		s.diag.InfoInt("woke by timer after ", elapsed, " s")
	} else {
		s.diag.InfoInt("woke by pin after ", elapsed, " s")
	}
	return v
}

// Drops returns the number of pin interrupts dropped because the worker
// queue was full.
func (s *Service) Drops() uint32 { return atomic.LoadUint32(&s.drops) }

func (s *Service) handle(ev isrEvent) {
	level := s.logical(ev.level)
	now := time.Now()

	// Debounce.
	if !s.lastEvent.IsZero() && now.Sub(s.lastEvent) < s.cfg.Debounce {
		return
	}

	if level != s.lastLevel {
		s.conn.Publish(&bus.Message{
			Topic:   TopicButton,
			Payload: types.ButtonValue{Pressed: level, TsMs: now.UnixMilli()},
		})
	}

	s.lastLevel = level
	s.lastEvent = now
}

func (s *Service) logical(raw bool) bool {
	if s.cfg.Invert {
		return !raw
	}
	return raw
}
