// Package platform provides the RP2040 (BitDogLab) implementations of the
// hal interfaces: GPIO, watchdog + scratch slots, SSD1306 display, PWM IR
// carrier and the UART console. Everything touching the machine package is
// behind the rp2040 build tag; the board constants are visible everywhere.
package platform
