package e2e

import "github.com/e2eprotect/e2e/crc"

// Profile7Config configures a Profile7 instance. Offset, MinDataLength and
// MaxDataLength are bit values.
type Profile7Config struct {
	DataID          uint32
	Offset          uint32
	MinDataLength   uint32
	MaxDataLength   uint32
	MaxDeltaCounter uint32
}

// DefaultProfile7Config returns AUTOSAR's documented Profile 7 default: a
// 20-byte minimum frame, 4096-byte maximum, Data ID 0x0a0b0c0d, zero offset,
// MaxDeltaCounter 1.
func DefaultProfile7Config() Profile7Config {
	return Profile7Config{DataID: 0x0a0b0c0d, Offset: 0, MinDataLength: 160, MaxDataLength: 32768, MaxDeltaCounter: 1}
}

func (c Profile7Config) validate() error {
	if c.MinDataLength < 20*8 {
		return ErrDataLengthRange
	}
	if c.MaxDataLength < c.MinDataLength {
		return ErrDataLengthRange
	}
	if c.MaxDeltaCounter == 0 || c.MaxDeltaCounter == 0xFFFFFFFF {
		return ErrMaxDeltaCounter
	}
	return nil
}

// Profile7 implements AUTOSAR E2E Profile 7: a 64-bit CRC, 32-bit length,
// 32-bit counter and 32-bit Data ID protecting a dynamically sized payload,
// laid out as [DATA... | CRC(8B) | Length(4B) | Counter(4B) | DataID(4B) |
// DATA...].
type Profile7 struct {
	cfg         Profile7Config
	counter     uint32
	initialized bool
	digest      *crc.Digest64
}

// NewProfile7 validates cfg and returns a ready-to-use Profile7.
func NewProfile7(cfg Profile7Config) (*Profile7, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile7{cfg: cfg, digest: crc.NewECMA64()}, nil
}

func (p *Profile7) validateLength(n int) error {
	minBytes := int(p.cfg.MinDataLength / 8)
	maxBytes := int(p.cfg.MaxDataLength / 8)
	if n < minBytes || n > maxBytes {
		return ErrDataLengthRange
	}
	return nil
}

func (p *Profile7) computeCRC(data []byte) uint64 {
	offset := int(p.cfg.Offset / 8)
	p.digest.Reset()
	p.digest.Write(data[:offset])
	p.digest.Write(data[offset+8:])
	return p.digest.Sum()
}

// Protect writes the length, counter, Data ID and CRC fields into data and
// advances the internal counter.
func (p *Profile7) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	offset := int(p.cfg.Offset / 8)
	putBeUint32(data, offset+8, uint32(len(data)))
	putBeUint32(data, offset+12, p.counter)
	putBeUint32(data, offset+16, p.cfg.DataID)
	putBeUint64(data, offset, p.computeCRC(data))
	p.counter = uint32(incrementCounter(uint64(p.counter), 0x100000000))
	return nil
}

// Check verifies data against this profile's configuration and previously
// accepted counter.
func (p *Profile7) Check(data []byte) (Status, error) {
	if p.validateLength(len(data)) != nil {
		return DataLengthError, nil
	}
	offset := int(p.cfg.Offset / 8)
	rxLength := beUint32(data, offset+8)
	rxCounter := beUint32(data, offset+12)
	rxDataID := beUint32(data, offset+16)
	rxCRC := beUint64(data, offset)
	calcCRC := p.computeCRC(data)

	var status Status
	switch {
	case rxLength != uint32(len(data)):
		status = DataLengthError
	case calcCRC != rxCRC:
		status = CrcError
	case rxDataID != p.cfg.DataID:
		status = DataIdError
	default:
		status = validateCounter(uint64(p.counter), uint64(rxCounter), uint64(p.cfg.MaxDeltaCounter), 0x100000000, p.initialized)
		p.counter = rxCounter
	}
	if !p.initialized && (status == Ok || status == OkSomeLost) {
		p.initialized = true
	}
	return status, nil
}
