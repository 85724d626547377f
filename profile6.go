package e2e

import "github.com/e2eprotect/e2e/crc"

// Profile6Config configures a Profile6 instance.
type Profile6Config struct {
	DataID          uint16
	Offset          uint16
	MinDataLength   uint16
	MaxDataLength   uint16
	MaxDeltaCounter uint8
}

// DefaultProfile6Config returns AUTOSAR's documented Profile 6 default: a
// 5-byte minimum frame, 4096-byte maximum, Data ID 0x1234, zero offset,
// MaxDeltaCounter 1.
func DefaultProfile6Config() Profile6Config {
	return Profile6Config{DataID: 0x1234, Offset: 0, MinDataLength: 40, MaxDataLength: 32768, MaxDeltaCounter: 1}
}

func (c Profile6Config) validate() error {
	if c.MinDataLength < 5*8 || c.MinDataLength > 4096*8 {
		return ErrDataLengthRange
	}
	if c.MaxDataLength < c.MinDataLength || c.MaxDataLength > 4096*8 {
		return ErrDataLengthRange
	}
	if c.MaxDeltaCounter == 0 || c.MaxDeltaCounter == 0xFF {
		return ErrMaxDeltaCounter
	}
	return nil
}

// Profile6 implements AUTOSAR E2E Profile 6: a 16-bit CRC, 16-bit length and
// 8-bit counter protecting a dynamically sized payload, laid out as
// [DATA... | CRC(2B) | Length(2B) | Counter(1B) | DATA...]. The Data ID is
// never transmitted; it only participates in the CRC.
type Profile6 struct {
	cfg         Profile6Config
	counter     uint8
	initialized bool
	digest      *crc.Digest16
}

// NewProfile6 validates cfg and returns a ready-to-use Profile6.
func NewProfile6(cfg Profile6Config) (*Profile6, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile6{cfg: cfg, digest: crc.NewCCITTFalse()}, nil
}

func (p *Profile6) validateLength(n int) error {
	minBytes := int(p.cfg.MinDataLength / 8)
	maxBytes := int(p.cfg.MaxDataLength / 8)
	if n < minBytes || n > maxBytes {
		return ErrDataLengthRange
	}
	return nil
}

func (p *Profile6) computeCRC(data []byte) uint16 {
	offset := int(p.cfg.Offset / 8)
	p.digest.Reset()
	p.digest.Write(data[:offset])
	p.digest.Write(data[offset+2:])
	var idBytes [2]byte
	putBeUint16(idBytes[:], 0, p.cfg.DataID)
	p.digest.Write(idBytes[:])
	return p.digest.Sum()
}

// Protect writes the length, counter and CRC fields into data and advances
// the internal counter.
func (p *Profile6) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	offset := int(p.cfg.Offset / 8)
	putBeUint16(data, offset+2, uint16(len(data)))
	data[offset+4] = p.counter
	putBeUint16(data, offset, p.computeCRC(data))
	p.counter = uint8(incrementCounter(uint64(p.counter), 0x100))
	return nil
}

// Check verifies data against this profile's configuration and previously
// accepted counter.
func (p *Profile6) Check(data []byte) (Status, error) {
	if p.validateLength(len(data)) != nil {
		return DataLengthError, nil
	}
	offset := int(p.cfg.Offset / 8)
	rxLength := beUint16(data, offset+2)
	rxCounter := data[offset+4]
	rxCRC := beUint16(data, offset)
	calcCRC := p.computeCRC(data)

	var status Status
	switch {
	case rxLength != uint16(len(data)):
		status = DataLengthError
	case calcCRC != rxCRC:
		status = CrcError
	default:
		status = validateCounter(uint64(p.counter), uint64(rxCounter), uint64(p.cfg.MaxDeltaCounter), 0x100, p.initialized)
		p.counter = rxCounter
	}
	if !p.initialized && (status == Ok || status == OkSomeLost) {
		p.initialized = true
	}
	return status, nil
}
