package timing

import (
	"sync"
	"testing"
	"time"

	"powercode-go/errcode"
)

// fakeTick implements TickSource. While running it delivers tick
// interrupts to the engine from a separate goroutine, standing in for the
// periodic interrupt preempting the busy-wait.
type fakeTick struct {
	eng *Engine

	mu         sync.Mutex
	startCalls int
	reload     uint32
	running    bool
	enables    int // SetRunning(true) calls after init
}

func (f *fakeTick) CoreFrequency() uint32 { return 14_000_000 }

func (f *fakeTick) Start(reload uint32) error {
	f.mu.Lock()
	f.startCalls++
	f.reload = reload
	f.running = true
	f.mu.Unlock()
	f.pump()
	return nil
}

func (f *fakeTick) SetRunning(on bool) {
	f.mu.Lock()
	f.running = on
	if on {
		f.enables++
	}
	f.mu.Unlock()
	if on {
		f.pump()
	}
}

func (f *fakeTick) isRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeTick) pump() {
	go func() {
		for f.isRunning() {
			f.eng.HandleTick()
			time.Sleep(50 * time.Microsecond)
		}
	}()
}

// fakeRTC implements RTC and records every hardware interaction.
type fakeRTC struct {
	mu          sync.Mutex
	initCalls   int
	initOsc     Oscillator
	gate        bool
	gateEnables int
	compare     uint32
	compareSet  int
	running     bool
	runEnables  int
	count       uint32
	irqClears   int
}

func (f *fakeRTC) Init(osc Oscillator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	f.initOsc = osc
	f.gate = true
	f.running = false
}

func (f *fakeRTC) GateClock(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = on
	if on {
		f.gateEnables++
	}
}

func (f *fakeRTC) SetCompare(ticks uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compare = ticks
	f.compareSet++
}

func (f *fakeRTC) SetRunning(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = on
	if on {
		f.runEnables++
	}
}

func (f *fakeRTC) Count() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

func (f *fakeRTC) ClearInterrupt() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.irqClears++
}

// fakeEnergy implements EnergyController. Entering a sleep state stands in
// for the whole suspension: by default the counter "reaches" the compare
// value and the compare-match handler runs before control returns, exactly
// the ordering the hardware guarantees. With earlyWakeAt set, the wait is
// cut short by an external signal instead and no compare interrupt fires.
type fakeEnergy struct {
	eng *fakeWired

	entered     []string
	earlyWakeAt uint32
}

// fakeWired bundles the fakes with the engine so the energy controller can
// reach both the counter state and the ISR hook.
type fakeWired struct {
	eng  *Engine
	tick *fakeTick
	rtc  *fakeRTC
	em   *fakeEnergy
}

func (f *fakeEnergy) DeepSleep()    { f.enter("EM3") }
func (f *fakeEnergy) StandbySleep() { f.enter("EM2") }

func (f *fakeEnergy) enter(mode string) {
	f.entered = append(f.entered, mode)
	rtc := f.eng.rtc
	if f.earlyWakeAt > 0 {
		rtc.mu.Lock()
		rtc.count = f.earlyWakeAt
		rtc.mu.Unlock()
		return
	}
	rtc.mu.Lock()
	rtc.count = rtc.compare
	rtc.mu.Unlock()
	f.eng.eng.HandleCompareMatch()
}

func wire(cfg Config) *fakeWired {
	w := &fakeWired{tick: &fakeTick{}, rtc: &fakeRTC{}}
	w.em = &fakeEnergy{eng: w}
	w.eng = New(cfg, w.tick, w.rtc, w.em)
	w.tick.eng = w.eng
	return w
}

// ---------------------------------------------------------------------------

func TestTickDelayBlocksForDuration(t *testing.T) {
	w := wire(Config{Backend: BackendTick})

	before := w.eng.Ticks()
	if err := w.eng.Delay(100); err != nil {
		t.Fatalf("Delay: %v", err)
	}
	if got := w.eng.Ticks() - before; got < 100 {
		t.Errorf("delay returned after %d ticks, want >= 100", got)
	}
	if w.tick.isRunning() {
		t.Error("tick source still running after delay")
	}
}

func TestTickDelayInitializesOnce(t *testing.T) {
	w := wire(Config{Backend: BackendTick})

	for i := 0; i < 2; i++ {
		before := w.eng.Ticks()
		if err := w.eng.Delay(100); err != nil {
			t.Fatalf("Delay #%d: %v", i+1, err)
		}
		if got := w.eng.Ticks() - before; got < 100 {
			t.Errorf("delay #%d returned after %d ticks, want >= 100", i+1, got)
		}
	}
	if w.tick.startCalls != 1 {
		t.Errorf("Start called %d times, want 1", w.tick.startCalls)
	}
	if want := w.tick.reload; want != 14_000_000/1000 {
		t.Errorf("reload = %d, want %d", want, 14_000_000/1000)
	}
}

func TestZeroDurationInitializesOnly(t *testing.T) {
	w := wire(Config{Backend: BackendTick, Oscillator: OscULFRCO})

	for i := 0; i < 3; i++ {
		if err := w.eng.Delay(0); err != nil {
			t.Fatalf("Delay(0): %v", err)
		}
		if err := w.eng.Sleep(0); err != nil {
			t.Fatalf("Sleep(0): %v", err)
		}
	}

	if w.tick.startCalls != 1 {
		t.Errorf("tick Start calls = %d, want 1", w.tick.startCalls)
	}
	if w.tick.enables != 0 {
		t.Errorf("tick re-enabled %d times on init-only calls", w.tick.enables)
	}
	if w.rtc.initCalls != 1 {
		t.Errorf("rtc Init calls = %d, want 1", w.rtc.initCalls)
	}
	if w.rtc.compareSet != 0 {
		t.Errorf("compare programmed %d times on init-only calls", w.rtc.compareSet)
	}
	if w.rtc.running {
		t.Error("counter running after init-only calls")
	}
	if w.rtc.gate {
		t.Error("clock gate enabled after init-only calls")
	}
}

func TestZeroDurationIdempotentAroundRealWaits(t *testing.T) {
	w := wire(Config{Backend: BackendRTC, Oscillator: OscULFRCO})

	if err := w.eng.Sleep(0); err != nil {
		t.Fatalf("Sleep(0): %v", err)
	}
	if err := w.eng.Sleep(3); err != nil {
		t.Fatalf("Sleep(3): %v", err)
	}
	if err := w.eng.Sleep(0); err != nil {
		t.Fatalf("Sleep(0) after wait: %v", err)
	}

	if w.rtc.initCalls != 1 {
		t.Errorf("rtc Init calls = %d, want 1", w.rtc.initCalls)
	}
	if w.rtc.compareSet != 1 {
		t.Errorf("compare programmed %d times, want 1", w.rtc.compareSet)
	}
	if w.rtc.gate {
		t.Error("clock gate enabled while idle")
	}
}

func TestSleepOutOfRangeULFRCO(t *testing.T) {
	w := wire(Config{Backend: BackendRTC, Oscillator: OscULFRCO})

	// 16777000 ticks fits the 24-bit field, 16778000 does not.
	if err := w.eng.Sleep(16777); err != nil {
		t.Fatalf("Sleep(16777): %v", err)
	}
	if w.rtc.compare != 16777000 {
		t.Errorf("compare = %d, want 16777000", w.rtc.compare)
	}

	runsBefore := w.rtc.runEnables
	err := w.eng.Sleep(16778)
	if err != errcode.OutOfRange {
		t.Fatalf("Sleep(16778) err = %v, want %v", err, errcode.OutOfRange)
	}
	if w.rtc.runEnables != runsBefore {
		t.Error("counter started despite out-of-range duration")
	}
	if w.rtc.gate {
		t.Error("clock gate left enabled after rejection")
	}
}

func TestDelayOutOfRangeLFXO(t *testing.T) {
	w := wire(Config{Backend: BackendRTC, Oscillator: OscLFXO})

	// 511999 ms * 32768 / 1000 = 16777183 ticks: fits.
	// 512000 ms yields 16777216: one past the field maximum.
	if err := w.eng.Delay(511999); err != nil {
		t.Fatalf("Delay(511999): %v", err)
	}
	if err := w.eng.Delay(512000); err != errcode.OutOfRange {
		t.Fatalf("Delay(512000) err = %v, want %v", err, errcode.OutOfRange)
	}
	if w.rtc.gate {
		t.Error("clock gate left enabled after rejection")
	}
}

func TestWakeFlagOnlyForSleep(t *testing.T) {
	w := wire(Config{Backend: BackendRTC, Oscillator: OscULFRCO})

	if w.eng.WakeWasTimer() {
		t.Fatal("wake flag set before any sleep")
	}
	if err := w.eng.Sleep(2); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if !w.eng.WakeWasTimer() {
		t.Error("wake flag not set after natural sleep completion")
	}

	w.eng.ClearWake()
	if w.eng.WakeWasTimer() {
		t.Error("wake flag survives ClearWake")
	}

	if err := w.eng.Delay(250); err != nil {
		t.Fatalf("Delay: %v", err)
	}
	if w.eng.WakeWasTimer() {
		t.Error("wake flag set by a plain delay")
	}
	if w.rtc.irqClears == 0 {
		t.Error("compare handler never cleared the interrupt source")
	}
}

func TestCompareMatchHandlerStopsCounter(t *testing.T) {
	w := wire(Config{Backend: BackendRTC, Oscillator: OscULFRCO})

	if err := w.eng.Sleep(1); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if w.rtc.running {
		t.Error("counter running after compare match")
	}
	if w.rtc.gate {
		t.Error("gate enabled after sleep returned")
	}
	if len(w.em.entered) != 1 || w.em.entered[0] != "EM3" {
		t.Errorf("energy states = %v, want [EM3] for ULFRCO", w.em.entered)
	}
}

func TestLFXOUsesStandbySleep(t *testing.T) {
	w := wire(Config{Backend: BackendRTC, Oscillator: OscLFXO})

	if err := w.eng.Sleep(5); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if w.rtc.compare != 163840 {
		t.Errorf("compare = %d, want 32768*5 = 163840", w.rtc.compare)
	}
	if !w.eng.WakeWasTimer() {
		t.Error("wake flag not set")
	}
	if got := w.eng.ElapsedSleepSeconds(); got != 5 {
		t.Errorf("elapsed = %d s, want 5", got)
	}
	if len(w.em.entered) != 1 || w.em.entered[0] != "EM2" {
		t.Errorf("energy states = %v, want [EM2] for LFXO", w.em.entered)
	}
}

func TestElapsedSleepSecondsDisablesCounter(t *testing.T) {
	w := wire(Config{Backend: BackendRTC, Oscillator: OscLFXO})

	if err := w.eng.Sleep(5); err != nil {
		t.Fatalf("Sleep: %v", err)
	}

	first := w.eng.ElapsedSleepSeconds()
	if first < 5 {
		t.Errorf("elapsed = %d s, want >= 5", first)
	}
	if w.rtc.running {
		t.Error("counter still enabled after elapsed read")
	}
	second := w.eng.ElapsedSleepSeconds()
	if second > first {
		t.Errorf("second elapsed read %d > first %d", second, first)
	}
}

func TestEarlyWakeLeavesFlagUntouched(t *testing.T) {
	w := wire(Config{Backend: BackendRTC, Oscillator: OscLFXO})
	w.em.earlyWakeAt = 3 * 32768 // pin interrupt 3 s into the sleep

	if err := w.eng.Sleep(10); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if w.eng.WakeWasTimer() {
		t.Error("wake flag set although the compare match never fired")
	}
	if got := w.eng.ElapsedSleepSeconds(); got != 3 {
		t.Errorf("elapsed = %d s, want 3", got)
	}
	if w.rtc.gate {
		t.Error("gate enabled after early wake")
	}
}

func TestSleepingFlagWindow(t *testing.T) {
	w := wire(Config{Backend: BackendRTC, Oscillator: OscULFRCO})

	if err := w.eng.Sleep(1); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	// Outside the wait window the flag must read clear: a later compare
	// interrupt must not be attributed to a sleep.
	w.eng.HandleCompareMatch()
	w.eng.ClearWake()
	w.eng.HandleCompareMatch()
	if w.eng.WakeWasTimer() {
		t.Error("stray compare match raised the wake flag outside a sleep")
	}
}
