package e2e

import "github.com/e2eprotect/e2e/crc"

// Profile8Config configures a Profile8 instance. Offset, MinDataLength and
// MaxDataLength are bit values.
type Profile8Config struct {
	DataID          uint32
	Offset          uint32
	MinDataLength   uint32
	MaxDataLength   uint32
	MaxDeltaCounter uint32
}

// DefaultProfile8Config returns AUTOSAR's documented Profile 8 default: a
// 16-byte minimum frame, effectively unbounded maximum, Data ID
// 0x0a0b0c0d, zero offset, MaxDeltaCounter 1.
func DefaultProfile8Config() Profile8Config {
	return Profile8Config{DataID: 0x0a0b0c0d, Offset: 0, MinDataLength: 128, MaxDataLength: 4294967295, MaxDeltaCounter: 1}
}

func (c Profile8Config) validate() error {
	if c.MinDataLength < 16*8 {
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

// Profile8 implements AUTOSAR E2E Profile 8: a 32-bit CRC, 32-bit length,
// 32-bit counter and 32-bit Data ID protecting a dynamically sized payload,
// laid out as [CRC(4B) | Length(4B) | Counter(4B) | DataID(4B) | DATA...].
type Profile8 struct {
	cfg         Profile8Config
	counter     uint32
	initialized bool
	digest      *crc.Digest32
}

// NewProfile8 validates cfg and returns a ready-to-use Profile8.
func NewProfile8(cfg Profile8Config) (*Profile8, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile8{cfg: cfg, digest: crc.NewP4()}, nil
}

func (p *Profile8) validateLength(n int) error {
	minBytes := int64(p.cfg.MinDataLength / 8)
	maxBytes := int64(p.cfg.MaxDataLength / 8)
	if int64(n) < minBytes || int64(n) > maxBytes {
		return ErrDataLengthRange
	}
	return nil
}

func (p *Profile8) computeCRC(data []byte) uint32 {
	offset := int(p.cfg.Offset / 8)
	p.digest.Reset()
	p.digest.Write(data[:offset])
	p.digest.Write(data[offset+4:])
	return p.digest.Sum()
}

// Protect writes the length, counter, Data ID and CRC fields into data and
// advances the internal counter.
func (p *Profile8) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	offset := int(p.cfg.Offset / 8)
	putBeUint32(data, offset+4, uint32(len(data)))
	putBeUint32(data, offset+8, p.counter)
	putBeUint32(data, offset+12, p.cfg.DataID)
	putBeUint32(data, offset, p.computeCRC(data))
	p.counter = uint32(incrementCounter(uint64(p.counter), 0x100000000))
	return nil
}

// Check verifies data against this profile's configuration and previously
// accepted counter.
func (p *Profile8) Check(data []byte) (Status, error) {
	if p.validateLength(len(data)) != nil {
		return DataLengthError, nil
	}
	offset := int(p.cfg.Offset / 8)
	rxCRC := beUint32(data, offset)
	rxLength := beUint32(data, offset+4)
	rxCounter := beUint32(data, offset+8)
	rxDataID := beUint32(data, offset+12)
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
