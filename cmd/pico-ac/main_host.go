//go:build !rp2040

package main

// Host stub so plain `go build ./...` succeeds. The firmware lives in
// main_rp2040.go; use cmd/sim to exercise the controller on a desktop.
func main() {
	println("pico-ac is device firmware; build with tinygo for rp2040, or run cmd/sim")
}
