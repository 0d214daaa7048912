// Host demo: the full wake/measure/sleep loop over simulated hardware.
// Run it to watch the services talk over the bus without a board attached.
package main

import (
	"context"
	"os"
	"time"

	"powercode-go/bus"
	"powercode-go/dbprint"
	"powercode-go/drivers/si7021"
	"powercode-go/drivers/simhw"
	"powercode-go/services/telemetry"
	"powercode-go/services/timing"
	"powercode-go/services/wakewatch"
)

const simScale = 1000 // simulated seconds pass in milliseconds

func main() {
	diag := dbprint.New(os.Stdout)
	diag.Info("powercode host demo starting")

	b := bus.New(8)

	tick := &simhw.Tick{Scale: simScale}
	rtc := &simhw.RTC{Scale: simScale}
	em := &simhw.Energy{RTC: rtc}

	cfg := timing.DefaultConfig()
	cfg.Diag = diag
	eng := timing.New(cfg, tick, rtc, em)
	tick.Handler = eng.HandleTick
	rtc.Handler = eng.HandleCompareMatch

	pin := &simhw.Pin{}
	watch := wakewatch.New(wakewatch.Config{
		Pin:      pin,
		Edge:     wakewatch.EdgeBoth,
		Debounce: 10 * time.Millisecond,
	}, eng, b.NewConnection("wakewatch"), diag)

	env := si7021.New(&simhw.I2C{})
	batt := simBattery{}
	tele := telemetry.New(b.NewConnection("telemetry"), &env, batt, diag)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := watch.Start(ctx); err != nil {
		diag.Crit("wakewatch start failed: " + err.Error())
		return
	}
	if err := tele.Start(ctx); err != nil {
		diag.Crit("telemetry start failed: " + err.Error())
		return
	}

	sink := b.NewConnection("demo")
	wakes := sink.Subscribe(wakewatch.TopicWake)
	temps := sink.Subscribe(telemetry.TopicTemperature)

	for cycle := 0; cycle < 3; cycle++ {
		if err := eng.Delay(100); err != nil {
			diag.Crit("delay failed: " + err.Error())
			return
		}
		if err := eng.Sleep(5); err != nil {
			diag.Crit("sleep failed: " + err.Error())
			return
		}
		watch.Report()

		<-wakes.Channel()
		<-temps.Channel()
	}

	// A button press mid-demo, so the pin wake path shows up too.
	pin.Set(true)
	time.Sleep(50 * time.Millisecond)
	watch.Report()
	<-wakes.Channel()

	diag.Info("powercode host demo done")
}

// simBattery stands in for the ADC battery channel on host builds.
type simBattery struct{}

func (simBattery) ReadBatteryMilliV() (uint32, error) { return 3210, nil }
