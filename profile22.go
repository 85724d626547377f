package e2e

import "github.com/e2eprotect/e2e/crc"

// Profile22Config configures a Profile22 instance. DataLength and Offset
// are bit values. DataIDList holds one byte per possible counter value
// (0-15); Protect and Check mix DataIDList[counter] into the CRC instead of
// transmitting a Data ID field.
type Profile22Config struct {
	DataLength      uint16
	DataIDList      [16]byte
	MaxDeltaCounter uint8
	Offset          uint16
}

// DefaultProfile22Config returns AUTOSAR's documented Profile 22 default:
// an 8-byte frame, the Data ID list 0x01..0x10, MaxDeltaCounter 1.
func DefaultProfile22Config() Profile22Config {
	return Profile22Config{
		DataLength: 64,
		DataIDList: [16]byte{
			0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
			0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		},
		MaxDeltaCounter: 1,
	}
}

const profile22CounterMax = 15
const profile22CounterModulo = 16
const profile22HeaderBytes = 2

func (c Profile22Config) validate() error {
	if c.DataLength%8 != 0 {
		return ErrMisalignedOffset
	}
	if c.MaxDeltaCounter == 0 || c.MaxDeltaCounter > profile22CounterMax {
		return ErrMaxDeltaCounter
	}
	return nil
}

// Profile22 implements AUTOSAR E2E Profile 22: an 8-bit CRC and a 4-bit
// counter protecting a small fixed-size payload, laid out as [DATA... |
// CRC(1B) | HDR(1B) | DATA...] where HDR's low nibble carries the counter.
// Rather than transmitting a Data ID, it mixes DataIDList[counter] into the
// CRC.
type Profile22 struct {
	cfg     Profile22Config
	counter uint8
	digest  *crc.Digest8
}

// NewProfile22 validates cfg and returns a ready-to-use Profile22.
func NewProfile22(cfg Profile22Config) (*Profile22, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile22{cfg: cfg, digest: crc.NewSAEJ1850()}, nil
}

func (p *Profile22) validateLength(n int) error {
	expected := int(p.cfg.DataLength / 8)
	if n != expected {
		return ErrDataLengthRange
	}
	minLen := (int(p.cfg.Offset)+7)/8 + profile22HeaderBytes
	if n < minLen {
		return ErrOffsetRange
	}
	return nil
}

func (p *Profile22) writeCounter(data []byte, counter uint8) {
	byteIdx := int(p.cfg.Offset) >> 3
	data[byteIdx+1] = (data[byteIdx+1] & 0xF0) | counter
}

func (p *Profile22) readCounter(data []byte) uint8 {
	byteIdx := int(p.cfg.Offset) >> 3
	return data[byteIdx+1] & 0x0F
}

func (p *Profile22) computeCRC(data []byte) uint8 {
	offsetByte := int(p.cfg.Offset / 8)
	p.digest.Reset()
	p.digest.Write([]byte{p.cfg.DataIDList[p.readCounter(data)]})
	p.digest.Write(data[:offsetByte])
	p.digest.Write(data[offsetByte+1:])
	return p.digest.Sum()
}

// Protect increments the internal counter, then writes the counter and CRC
// into data. Note the increment happens before the counter is written, so
// the first counter value ever transmitted is 1, not 0.
func (p *Profile22) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	p.counter = uint8(incrementCounter(uint64(p.counter), profile22CounterModulo))
	p.writeCounter(data, p.counter)
	crcVal := p.computeCRC(data)
	data[p.cfg.Offset/8] = crcVal
	return nil
}

// Check verifies data against this profile's configuration and previously
// accepted counter.
func (p *Profile22) Check(data []byte) (Status, error) {
	if p.validateLength(len(data)) != nil {
		return DataLengthError, nil
	}
	rxCounter := p.readCounter(data)
	rxCRC := data[p.cfg.Offset/8]
	calcCRC := p.computeCRC(data)

	var status Status
	if calcCRC != rxCRC {
		status = CrcError
	} else {
		status = validateCounterProfile22(uint64(p.counter), uint64(rxCounter), uint64(p.cfg.MaxDeltaCounter), profile22CounterModulo)
		p.counter = rxCounter
	}
	return status, nil
}
