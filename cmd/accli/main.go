// Command accli talks to a running controller over its serial console:
// send menu tokens, print the menu, or tail the device output.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

var (
	portName string
	baudRate int
)

var rootCmd = &cobra.Command{
	Use:   "accli",
	Short: "Serial console client for the IR air-conditioner controller",
	Long: `accli drives the controller's UART menu from a desktop.

The controller accepts single-digit tokens:
  1 on, 2 off, 3 22C (induces a fault!), 4 20C, 5 fan1, 6 fan2, 0 menu`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "baud rate")
	_ = rootCmd.MarkPersistentFlagRequired("port")
}

func openPort() (serial.Port, error) {
	if portName == "" {
		return nil, fmt.Errorf("no serial port given, use --port")
	}
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", portName, err)
	}
	return port, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
