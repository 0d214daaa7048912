//go:build efm32hg

// On-target self-test for the EFM32HG timing stack. Flash it, hold a
// terminal on the LEUART, and watch the delay/sleep/wake cycle report
// itself. Press the button on PC9 during a sleep to test the pin wake.
package main

import (
	"context"
	"time"

	"powercode-go/bus"
	"powercode-go/dbprint"
	"powercode-go/drivers/efm32hg"
	"powercode-go/services/timing"
	"powercode-go/services/wakewatch"
	"powercode-go/types"
)

func main() {
	console := efm32hg.DebugConsole{}
	console.Init()
	diag := dbprint.New(console)
	diag.Info("boardtest starting")

	b := bus.New(4)

	cfg := timing.DefaultConfig()
	cfg.Diag = diag
	eng := timing.New(cfg, efm32hg.SysTick{}, efm32hg.RTC{}, efm32hg.EMU{})
	efm32hg.BindSysTick(eng.HandleTick)
	efm32hg.BindRTC(eng.HandleCompareMatch)

	button := efm32hg.Pin{Port: 2, Pin: 9} // PC9, active low
	button.ConfigureInputPull(true)

	watch := wakewatch.New(wakewatch.Config{
		Pin:      button,
		Edge:     wakewatch.EdgeBoth,
		Debounce: 20 * time.Millisecond,
		Invert:   true,
	}, eng, b.NewConnection("wakewatch"), diag)

	if err := watch.Start(context.Background()); err != nil {
		diag.Crit("wakewatch start failed: " + err.Error())
		return
	}

	sink := b.NewConnection("boardtest")
	wakes := sink.Subscribe(wakewatch.TopicWake)

	diag.Info("busy-wait check: two 100 ms delays")
	for i := 0; i < 2; i++ {
		if err := eng.Delay(100); err != nil {
			diag.Crit("delay failed: " + err.Error())
			return
		}
	}
	diag.InfoInt("tick count after delays: ", eng.Ticks(), "")

	for cycle := uint32(0); ; cycle++ {
		diag.InfoInt("cycle ", cycle, "")
		if err := eng.Sleep(5); err != nil {
			diag.Crit("sleep failed: " + err.Error())
			return
		}
		watch.Report()

		msg := <-wakes.Channel()
		wv := msg.Payload.(types.WakeValue)
		if wv.Cause == types.WakeTimer {
			diag.InfoInt("timer wake, slept ", wv.ElapsedS, " s")
		} else {
			diag.InfoInt("pin wake, slept ", wv.ElapsedS, " s")
		}
	}
}
