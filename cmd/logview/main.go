// Command logview tails the board's LEUART debug stream from a host
// machine. The firmware prints CRLF-terminated INFO/WARN/CRIT lines at
// 9600 baud; this just frames them and timestamps each one.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tarm/serial"
)

func main() {
	port := flag.String("port", "/dev/ttyUSB0", "serial device")
	baud := flag.Int("baud", 9600, "baud rate")
	critOnly := flag.Bool("crit", false, "show only CRIT lines")
	flag.Parse()

	p, err := serial.OpenPort(&serial.Config{Name: *port, Baud: *baud})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logview:", err)
		os.Exit(1)
	}
	defer p.Close()

	sc := bufio.NewScanner(p)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if *critOnly && !strings.HasPrefix(line, "CRIT:") {
			continue
		}
		fmt.Printf("%s %s\n", time.Now().Format("15:04:05.000"), line)
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "logview:", err)
		os.Exit(1)
	}
}
