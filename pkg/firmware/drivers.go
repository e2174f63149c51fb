package firmware

// Serial is the byte-level surface of the UART driver.
type Serial interface {
	// Configure prepares the peripheral. It blocks until the hardware
	// is ready and is treated as infallible by the control loop; an
	// error aborts boot.
	Configure() error
	// SendByte transmits one byte and waits for transmit completion.
	SendByte(b byte)
	// SendString transmits a string byte by byte.
	SendString(s string)
	// ByteAvailable reports whether a received byte is pending.
	// It is non-blocking and side-effect free.
	ByteAvailable() bool
	// ReceiveByte returns the pending byte. Callers must observe
	// ByteAvailable first; without that the result is stale.
	ReceiveByte() byte
}

// PWM drives the LED duty register.
type PWM interface {
	Configure() error
	// SetDuty sets the active fraction of the PWM period in percent.
	// Callers keep percent within [0, 99].
	SetDuty(percent int)
}

// TempSensor is the ADC temperature pipeline.
type TempSensor interface {
	Configure() error
	// ReadRaw returns one raw ADC sample.
	ReadRaw() int
	// Celsius converts a raw sample to whole degrees Celsius.
	Celsius(raw int) int
}
