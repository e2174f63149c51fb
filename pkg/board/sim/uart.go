package sim

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/microbots/thermo.go/pkg/framework"
)

// UART simulates the serial peripheral over an arbitrary byte wire.
// The receive side is pumped by Run into a bounded buffer; a byte
// arriving on a full buffer is dropped, as a hardware overrun would.
// Delivery is paced at the configured baud rate, so a command that a
// host transport hands over in one burst still lands byte by byte.
type UART struct {
	wire     io.ReadWriter
	rx       chan byte
	interval time.Duration

	// last is only touched by the firmware thread; ReceiveByte
	// without a pending byte returns it, matching the stale-read
	// behavior of reading an empty data register.
	last byte

	overruns uint32
}

// NewUART creates a UART over the wire.
func NewUART(wire io.ReadWriter, conf UARTConfig) *UART {
	depth := conf.RxDepth
	if depth <= 0 {
		depth = defaultRxDepth
	}
	u := &UART{wire: wire, rx: make(chan byte, depth)}
	if conf.Baud > 0 {
		// one start bit, eight data bits, one stop bit per frame
		u.interval = 10 * time.Second / time.Duration(conf.Baud)
	}
	return u
}

// Configure implements firmware.Serial.
func (u *UART) Configure() error {
	if u.wire == nil {
		return errors.New("uart: no wire attached")
	}
	return nil
}

// SendByte implements firmware.Serial. The write completes before
// returning, like waiting on the transmit-complete flag.
func (u *UART) SendByte(b byte) {
	if _, err := u.wire.Write([]byte{b}); err != nil {
		glog.V(2).Infof("uart tx: %v", err)
	}
}

// SendString implements firmware.Serial.
func (u *UART) SendString(s string) {
	if _, err := io.WriteString(u.wire, s); err != nil {
		glog.V(2).Infof("uart tx: %v", err)
	}
}

// ByteAvailable implements firmware.Serial.
func (u *UART) ByteAvailable() bool {
	return len(u.rx) > 0
}

// ReceiveByte implements firmware.Serial.
func (u *UART) ReceiveByte() byte {
	select {
	case b := <-u.rx:
		u.last = b
		return b
	default:
		return u.last
	}
}

// Overruns returns the count of dropped receive bytes.
func (u *UART) Overruns() int {
	return int(atomic.LoadUint32(&u.overruns))
}

// Name implements framework.Named.
func (u *UART) Name() string {
	return "uart"
}

// Run pumps bytes from the wire into the receive buffer until the
// context is canceled or the wire fails. It implements
// framework.Runnable.
func (u *UART) Run(ctx context.Context) error {
	return framework.RunWithContext(ctx, u.pump)
}

func (u *UART) pump() error {
	buf := make([]byte, 1)
	for {
		n, err := u.wire.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		if u.interval > 0 {
			// the frame spends this long on the wire before it
			// reaches the data register
			time.Sleep(u.interval)
		}
		select {
		case u.rx <- buf[0]:
		default:
			atomic.AddUint32(&u.overruns, 1)
			glog.Warningf("uart rx overrun, dropped %#02x", buf[0])
		}
	}
}
