package e2e

import "github.com/e2eprotect/e2e/crc"

// Profile11IDMode selects how Profile 11 exposes its Data ID.
type Profile11IDMode uint8

const (
	// Profile11Both (11A) keeps the full 16-bit Data ID implicit: it only
	// participates in the CRC, and the header byte that would otherwise
	// carry its high nibble instead carries whatever data the caller put
	// there.
	Profile11Both Profile11IDMode = iota
	// Profile11Nibble (11C) stores the Data ID's high nibble explicitly in
	// the header at NibbleOffset; the low byte remains implicit in the CRC.
	Profile11Nibble
)

// Profile11Config configures a Profile11 instance. CounterOffset, CRCOffset
// and NibbleOffset are bit offsets; DataLength is a bit length.
type Profile11Config struct {
	CounterOffset   uint8
	CRCOffset       uint8
	Mode            Profile11IDMode
	DataID          uint16
	NibbleOffset    uint8
	MaxDeltaCounter uint8
	DataLength      uint8
}

// DefaultProfile11Config returns AUTOSAR's documented Profile 11 default:
// nibble mode, an 8-byte frame, Data ID 0x123, MaxDeltaCounter 1.
func DefaultProfile11Config() Profile11Config {
	return Profile11Config{
		CounterOffset:   8,
		CRCOffset:       0,
		Mode:            Profile11Nibble,
		DataID:          0x123,
		NibbleOffset:    12,
		MaxDeltaCounter: 1,
		DataLength:      64,
	}
}

const profile11CounterMax = 14
const profile11CounterModulo = 15
const profile11MaxDataLengthBits = 240

func (c Profile11Config) validate() error {
	if c.DataLength > profile11MaxDataLengthBits {
		return ErrDataTooLong
	}
	if c.DataLength%8 != 0 {
		return ErrMisalignedOffset
	}
	if c.MaxDeltaCounter == 0 || c.MaxDeltaCounter > profile11CounterMax {
		return ErrMaxDeltaCounter
	}
	if c.CounterOffset%4 != 0 {
		return ErrMisalignedOffset
	}
	if c.CRCOffset%8 != 0 {
		return ErrMisalignedOffset
	}
	if c.Mode == Profile11Nibble && c.NibbleOffset%4 != 0 {
		return ErrMisalignedOffset
	}
	return nil
}

// Profile11 implements AUTOSAR E2E Profile 11: an 8-bit CRC and a 4-bit
// counter protecting a small fixed-size payload, laid out as [DATA... |
// CRC(1B) | HDR(1B) | DATA...] where HDR's low nibble carries the counter
// and, in nibble mode, its high nibble carries the Data ID's high nibble.
type Profile11 struct {
	cfg         Profile11Config
	counter     uint8
	initialized bool
	digest      *crc.Digest8
}

// NewProfile11 validates cfg and returns a ready-to-use Profile11.
func NewProfile11(cfg Profile11Config) (*Profile11, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile11{cfg: cfg, digest: crc.NewProfile11()}, nil
}

func (p *Profile11) validateLength(n int) error {
	if uint8(n) != p.cfg.DataLength/8 {
		return ErrDataLengthRange
	}
	return nil
}

func (p *Profile11) updateCRCWithID() {
	switch p.cfg.Mode {
	case Profile11Both:
		var idBytes [2]byte
		putLeUint16(idBytes[:], 0, p.cfg.DataID)
		p.digest.Write(idBytes[:])
	case Profile11Nibble:
		p.digest.Write([]byte{byte(p.cfg.DataID), 0x00})
	}
}

func (p *Profile11) updateCRCWithData(data []byte) {
	if p.cfg.CRCOffset > 0 {
		offsetByte := int(p.cfg.CRCOffset / 8)
		p.digest.Write(data[:offsetByte])
		p.digest.Write(data[offsetByte+1:])
	} else {
		p.digest.Write(data[1:])
	}
}

func (p *Profile11) computeCRC(data []byte) uint8 {
	p.digest.Reset()
	p.updateCRCWithID()
	p.updateCRCWithData(data)
	return p.digest.Sum()
}

// Protect writes the Data ID nibble (nibble mode only), the counter and the
// CRC into data and advances the internal counter.
func (p *Profile11) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	if p.cfg.Mode == Profile11Nibble {
		putNibble(data, int(p.cfg.NibbleOffset), uint8(p.cfg.DataID>>8))
	}
	putNibble(data, int(p.cfg.CounterOffset), p.counter)
	crcVal := p.computeCRC(data)
	data[p.cfg.CRCOffset/8] = crcVal
	p.counter = uint8(incrementCounter(uint64(p.counter), profile11CounterModulo))
	return nil
}

// Check verifies data against this profile's configuration and previously
// accepted counter.
func (p *Profile11) Check(data []byte) (Status, error) {
	if p.validateLength(len(data)) != nil {
		return DataLengthError, nil
	}
	rxNibble := nibble(data, int(p.cfg.NibbleOffset))
	rxCounter := nibble(data, int(p.cfg.CounterOffset))
	rxCRC := data[p.cfg.CRCOffset/8]
	calcCRC := p.computeCRC(data)

	var status Status
	switch {
	case calcCRC != rxCRC:
		status = CrcError
	case p.cfg.Mode == Profile11Nibble && uint8(p.cfg.DataID>>8)&0x0F != rxNibble:
		status = DataIdError
	default:
		status = validateCounter(uint64(p.counter), uint64(rxCounter), uint64(p.cfg.MaxDeltaCounter), profile11CounterModulo, p.initialized)
		p.counter = rxCounter
	}
	if !p.initialized && (status == Ok || status == OkSomeLost) {
		p.initialized = true
	}
	return status, nil
}
