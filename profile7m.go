package e2e

// Profile7M reuses Profile7's header and CRC scope but additionally checks
// three metadata fields packed into the four payload bytes following the
// base header, identically to Profile4M.
type Profile7M struct {
	base          *Profile7
	cfg           Profile7Config
	MessageType   uint8
	MessageResult uint8
	SourceID      uint32
}

// NewProfile7M validates cfg via Profile7's rules and returns a ready-to-use
// Profile7M with SourceID defaulted to 0x0a0b0c0d, matching original_source.
func NewProfile7M(cfg Profile7Config) (*Profile7M, error) {
	base, err := NewProfile7(cfg)
	if err != nil {
		return nil, err
	}
	return &Profile7M{base: base, cfg: cfg, SourceID: 0x0a0b0c0d}, nil
}

func (p *Profile7M) metadataOffset() int {
	return int(p.cfg.Offset/8) + 20
}

func (p *Profile7M) writeSourceID(data []byte) {
	putBeUint32(data, p.metadataOffset(), p.SourceID)
}

func (p *Profile7M) writeMessageType(data []byte) {
	o := p.metadataOffset()
	data[o] = (data[o] & 0x3F) | ((p.MessageType & 0x03) << 6)
}

func (p *Profile7M) writeMessageResult(data []byte) {
	o := p.metadataOffset()
	data[o] = (data[o] & 0xCF) | ((p.MessageResult & 0x03) << 4)
}

func (p *Profile7M) readSourceID(data []byte) uint32 {
	return beUint32(data, p.metadataOffset()) & 0x0FFFFFFF
}

func (p *Profile7M) readMessageType(data []byte) uint8 {
	return (data[p.metadataOffset()] >> 6) & 0x03
}

func (p *Profile7M) readMessageResult(data []byte) uint8 {
	return (data[p.metadataOffset()] >> 4) & 0x03
}

// Protect writes the Profile 7M metadata fields, then delegates to the base
// Profile7 to write length, counter, Data ID and CRC.
func (p *Profile7M) Protect(data []byte) error {
	if err := p.base.validateLength(len(data)); err != nil {
		return err
	}
	p.writeSourceID(data)
	p.writeMessageResult(data)
	p.writeMessageType(data)
	return p.base.Protect(data)
}

// Check delegates to the base Profile7 and, only if the base status is Ok
// or OkSomeLost, additionally checks Source ID, Message Result and Message
// Type in that order.
func (p *Profile7M) Check(data []byte) (Status, error) {
	status, err := p.base.Check(data)
	if err != nil {
		return 0, err
	}
	if status != Ok && status != OkSomeLost {
		return status, nil
	}
	if p.SourceID != p.readSourceID(data) {
		return SourceIdError, nil
	}
	if p.MessageResult != p.readMessageResult(data) {
		return MessageResultError, nil
	}
	if p.MessageType != p.readMessageType(data) {
		return MessageTypeError, nil
	}
	return status, nil
}
