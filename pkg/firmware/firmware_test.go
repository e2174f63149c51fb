package firmware

import "bytes"

// fakeSerial is a scripted in-memory Serial: reads pop from a byte
// slice, writes collect into a buffer.
type fakeSerial struct {
	in         []byte
	out        bytes.Buffer
	configured bool
}

func (s *fakeSerial) Configure() error {
	s.configured = true
	return nil
}

func (s *fakeSerial) SendByte(b byte) {
	s.out.WriteByte(b)
}

func (s *fakeSerial) SendString(str string) {
	s.out.WriteString(str)
}

func (s *fakeSerial) ByteAvailable() bool {
	return len(s.in) > 0
}

func (s *fakeSerial) ReceiveByte() byte {
	b := s.in[0]
	s.in = s.in[1:]
	return b
}

type fakePWM struct {
	duties     []int
	configured bool
}

func (p *fakePWM) Configure() error {
	p.configured = true
	return nil
}

func (p *fakePWM) SetDuty(percent int) {
	p.duties = append(p.duties, percent)
}

type fakeSensor struct {
	raw        int
	configured bool
}

func (s *fakeSensor) Configure() error {
	s.configured = true
	return nil
}

func (s *fakeSensor) ReadRaw() int {
	return s.raw
}

func (s *fakeSensor) Celsius(raw int) int {
	return raw / 10
}
