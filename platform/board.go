package platform

// BitDogLab pin map (Pico GP numbering).
const (
	PinLEDRed     = 13
	PinLEDGreen   = 11
	PinLEDBlue    = 12
	PinLEDOnboard = 25

	PinButtonA = 5
	PinButtonB = 6

	PinIR = 16

	PinI2CSDA = 14 // i2c1
	PinI2CSCL = 15

	DisplayAddr   = 0x3C
	DisplayWidth  = 128
	DisplayHeight = 64
)
