// Package efm32hg binds the timing and wake hardware of an EFM32 Happy
// Gecko class part: SysTick, the RTC with its ULFRCO/LFXO clocking, the
// EM2/EM3 energy states, the wake-button GPIO interrupt, the battery ADC
// channel and the LEUART debug output.
//
// Everything here is fixed-address register access and only builds with
// the efm32hg tag; the rest of the tree talks to it through the interfaces
// in services/timing and services/wakewatch.
package efm32hg
