package e2e

import "github.com/e2eprotect/e2e/crc"

// Profile5Config configures a Profile5 instance. DataLength is the exact
// buffer size Protect/Check expect, in bits; Offset is the header's bit
// offset within that buffer.
type Profile5Config struct {
	DataLength      uint16
	DataID          uint16
	MaxDeltaCounter uint8
	Offset          uint16
}

// DefaultProfile5Config returns AUTOSAR's documented Profile 5 default: a
// 3-byte frame, Data ID 0x1234, zero offset, MaxDeltaCounter 1.
func DefaultProfile5Config() Profile5Config {
	return Profile5Config{DataID: 0x1234, Offset: 0, DataLength: 24, MaxDeltaCounter: 1}
}

func (c Profile5Config) validate() error {
	if c.DataLength < 3*8 || c.DataLength > 4096*8 {
		return ErrDataLengthRange
	}
	const headerBits = 3 * 8
	if c.DataLength < headerBits || c.Offset > c.DataLength-headerBits {
		return ErrOffsetRange
	}
	if c.MaxDeltaCounter == 0 || c.MaxDeltaCounter == 0xFF {
		return ErrMaxDeltaCounter
	}
	return nil
}

// Profile5 implements AUTOSAR E2E Profile 5: a 16-bit CRC and 8-bit counter
// over a fixed-size payload, laid out as [DATA... | CRC(2B) | Counter(1B) |
// DATA...]. Unlike every other profile in this package, its CRC and header
// fields are little-endian.
type Profile5 struct {
	cfg         Profile5Config
	counter     uint8
	initialized bool
	digest      *crc.Digest16
}

// NewProfile5 validates cfg and returns a ready-to-use Profile5.
func NewProfile5(cfg Profile5Config) (*Profile5, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile5{cfg: cfg, digest: crc.NewCCITTFalse()}, nil
}

func (p *Profile5) validateLength(n int) error {
	if uint16(n) != p.cfg.DataLength/8 {
		return ErrDataLengthRange
	}
	return nil
}

func (p *Profile5) computeCRC(data []byte) uint16 {
	offset := int(p.cfg.Offset / 8)
	p.digest.Reset()
	p.digest.Write(data[:offset])
	p.digest.Write(data[offset+2:])
	var idBytes [2]byte
	putLeUint16(idBytes[:], 0, p.cfg.DataID)
	p.digest.Write(idBytes[:])
	return p.digest.Sum()
}

// Protect writes the counter and CRC fields into data and advances the
// internal counter.
func (p *Profile5) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	offset := int(p.cfg.Offset / 8)
	data[offset+2] = p.counter
	putLeUint16(data, offset, p.computeCRC(data))
	p.counter = uint8(incrementCounter(uint64(p.counter), 0x100))
	return nil
}

// Check verifies data against this profile's configuration and previously
// accepted counter.
func (p *Profile5) Check(data []byte) (Status, error) {
	if p.validateLength(len(data)) != nil {
		return DataLengthError, nil
	}
	offset := int(p.cfg.Offset / 8)
	rxCounter := data[offset+2]
	rxCRC := leUint16(data, offset)
	calcCRC := p.computeCRC(data)

	var status Status
	if calcCRC != rxCRC {
		status = CrcError
	} else {
		status = validateCounter(uint64(p.counter), uint64(rxCounter), uint64(p.cfg.MaxDeltaCounter), 0x100, p.initialized)
		p.counter = rxCounter
	}
	if !p.initialized && (status == Ok || status == OkSomeLost) {
		p.initialized = true
	}
	return status, nil
}
