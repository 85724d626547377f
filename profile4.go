package e2e

import "github.com/e2eprotect/e2e/crc"

// Profile4Config configures a Profile4 instance. Offset, MinDataLength and
// MaxDataLength are bit offsets/lengths; Protect and Check operate on byte
// buffers measured against these converted to bytes.
type Profile4Config struct {
	DataID          uint32
	Offset          uint16
	MinDataLength   uint16
	MaxDataLength   uint16
	MaxDeltaCounter uint16
}

// DefaultProfile4Config returns the configuration AUTOSAR documents as the
// Profile 4 default: a 12-byte minimum frame, 4096-byte maximum, Data ID
// 0x0a0b0c0d, zero offset, MaxDeltaCounter 1.
func DefaultProfile4Config() Profile4Config {
	return Profile4Config{
		DataID:          0x0a0b0c0d,
		Offset:          0,
		MinDataLength:   96,
		MaxDataLength:   32768,
		MaxDeltaCounter: 1,
	}
}

func (c Profile4Config) validate() error {
	if c.MinDataLength < 12*8 || c.MinDataLength > 4096*8 {
		return ErrDataLengthRange
	}
	if c.MaxDataLength < c.MinDataLength || c.MaxDataLength > 4096*8 {
		return ErrDataLengthRange
	}
	if c.MaxDeltaCounter == 0 || c.MaxDeltaCounter == 0xFFFF {
		return ErrMaxDeltaCounter
	}
	return nil
}

// Profile4 implements AUTOSAR E2E Profile 4: a 32-bit CRC, 16-bit counter
// and 32-bit Data ID protecting a dynamically sized payload, laid out as
// [DATA... | Length(2B) | Counter(2B) | DataID(4B) | CRC(4B) | DATA...].
type Profile4 struct {
	cfg         Profile4Config
	counter     uint16
	initialized bool
	digest      *crc.Digest32
}

// NewProfile4 validates cfg and returns a ready-to-use Profile4.
func NewProfile4(cfg Profile4Config) (*Profile4, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile4{cfg: cfg, digest: crc.NewP4()}, nil
}

func (p *Profile4) validateLength(n int) error {
	minBytes := int(p.cfg.MinDataLength / 8)
	maxBytes := int(p.cfg.MaxDataLength / 8)
	if n < minBytes || n > maxBytes {
		return ErrDataLengthRange
	}
	return nil
}

func (p *Profile4) computeCRC(data []byte) uint32 {
	offset := int(p.cfg.Offset / 8)
	p.digest.Reset()
	p.digest.Write(data[:offset+8])
	p.digest.Write(data[offset+12:])
	return p.digest.Sum()
}

// Protect writes the length, counter, Data ID and CRC fields into data and
// advances the internal counter.
func (p *Profile4) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	offset := int(p.cfg.Offset / 8)
	putBeUint16(data, offset, uint16(len(data)))
	putBeUint16(data, offset+2, p.counter)
	putBeUint32(data, offset+4, p.cfg.DataID)
	putBeUint32(data, offset+8, p.computeCRC(data))
	p.counter = uint16(incrementCounter(uint64(p.counter), 0x10000))
	return nil
}

// Check verifies data against this profile's configuration and previously
// accepted counter.
func (p *Profile4) Check(data []byte) (Status, error) {
	if p.validateLength(len(data)) != nil {
		return DataLengthError, nil
	}
	offset := int(p.cfg.Offset / 8)
	rxLength := beUint16(data, offset)
	rxCounter := beUint16(data, offset+2)
	rxDataID := beUint32(data, offset+4)
	rxCRC := beUint32(data, offset+8)
	calcCRC := p.computeCRC(data)

	status := p.doChecks(rxLength, rxCounter, rxDataID, rxCRC, calcCRC, uint16(len(data)))
	if !p.initialized && (status == Ok || status == OkSomeLost) {
		p.initialized = true
	}
	return status, nil
}

func (p *Profile4) doChecks(rxLength, rxCounter uint16, rxDataID, rxCRC, calcCRC uint32, actualLength uint16) Status {
	if rxLength != actualLength {
		return DataLengthError
	}
	if calcCRC != rxCRC {
		return CrcError
	}
	if rxDataID != p.cfg.DataID {
		return DataIdError
	}
	status := validateCounter(uint64(p.counter), uint64(rxCounter), uint64(p.cfg.MaxDeltaCounter), 0x10000, p.initialized)
	p.counter = rxCounter
	return status
}
