package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

var validTokens = map[string]string{
	"0": "menu",
	"1": "power on",
	"2": "power off",
	"3": "22C (fault injection!)",
	"4": "20C",
	"5": "fan 1",
	"6": "fan 2",
}

var sendCmd = &cobra.Command{
	Use:   "send <token>",
	Short: "Send one menu token to the controller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tok := args[0]
		desc, ok := validTokens[tok]
		if !ok {
			return fmt.Errorf("unknown token %q (want 0-6)", tok)
		}
		port, err := openPort()
		if err != nil {
			return err
		}
		defer port.Close()

		if _, err := port.Write([]byte(tok)); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		fmt.Printf("sent %s (%s)\n", tok, desc)

		// Give the controller a moment to answer, then echo what came back.
		return drain(port, 500*time.Millisecond)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Request and print the controller menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := openPort()
		if err != nil {
			return err
		}
		defer port.Close()

		if _, err := port.Write([]byte("0")); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		return drain(port, time.Second)
	},
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Tail the controller's serial output",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := openPort()
		if err != nil {
			return err
		}
		defer port.Close()

		fmt.Printf("monitoring %s @ %d, Ctrl+C to exit\n\n", portName, baudRate)
		buf := make([]byte, 256)
		for {
			n, err := port.Read(buf)
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return fmt.Errorf("read: %w", err)
			}
			os.Stdout.Write(buf[:n])
		}
	},
}

// drain echoes whatever arrives within the window.
func drain(port serial.Port, window time.Duration) error {
	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		return err
	}
	deadline := time.Now().Add(window)
	buf := make([]byte, 256)
	for time.Now().Before(deadline) {
		n, err := port.Read(buf)
		if err != nil {
			return err
		}
		if n > 0 {
			os.Stdout.Write(buf[:n])
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(sendCmd, menuCmd, monitorCmd)
}
