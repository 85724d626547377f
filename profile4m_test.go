package e2e

import "testing"

func TestProfile4MBasicRequestExample(t *testing.T) {
	tx, _ := NewProfile4M(DefaultProfile4Config())
	rx, _ := NewProfile4M(DefaultProfile4Config())
	tx.SourceID, tx.MessageResult, tx.MessageType = 0x00123456, 0, 0
	rx.SourceID, rx.MessageResult, rx.MessageType = 0x00123456, 0, 0

	data := make([]byte, 20)
	if err := tx.Protect(data); err != nil {
		t.Fatal(err)
	}
	wantHeader := []byte{
		0x00, 0x14, 0x00, 0x00, 0x0a, 0x0b, 0x0c, 0x0d,
		0xae, 0x67, 0x4c, 0xa0,
	}
	if string(data[:12]) != string(wantHeader) {
		t.Errorf("header = % x, want % x", data[:12], wantHeader)
	}
	wantMeta := []byte{0x00, 0x12, 0x34, 0x56}
	if string(data[12:16]) != string(wantMeta) {
		t.Errorf("metadata = % x, want % x", data[12:16], wantMeta)
	}
	if status, err := rx.Check(data); err != nil || status != Ok {
		t.Errorf("Check() = (%v, %v), want (Ok, nil)", status, err)
	}
}

func TestProfile4MBasicResponseExample(t *testing.T) {
	tx, _ := NewProfile4M(DefaultProfile4Config())
	rx, _ := NewProfile4M(DefaultProfile4Config())
	tx.SourceID, tx.MessageResult, tx.MessageType = 0x00123456, 0, 1
	rx.SourceID, rx.MessageResult, rx.MessageType = 0x00123456, 0, 1

	data := make([]byte, 20)
	tx.Protect(data)
	wantCRC := []byte{0x85, 0x25, 0x76, 0x19}
	if string(data[8:12]) != string(wantCRC) {
		t.Errorf("crc = % x, want % x", data[8:12], wantCRC)
	}
	if data[12] != 0x40 {
		t.Errorf("metadata byte = %#02x, want 0x40", data[12])
	}
	if status, _ := rx.Check(data); status != Ok {
		t.Errorf("Check() = %v, want Ok", status)
	}
}

func TestProfile4MBasicErrorExample(t *testing.T) {
	tx, _ := NewProfile4M(DefaultProfile4Config())
	rx, _ := NewProfile4M(DefaultProfile4Config())
	tx.SourceID, tx.MessageResult, tx.MessageType = 0x00123456, 1, 1
	rx.SourceID, rx.MessageResult, rx.MessageType = 0x00123456, 1, 1

	data := make([]byte, 20)
	tx.Protect(data)
	wantCRC := []byte{0x23, 0x45, 0x57, 0x0f}
	if string(data[8:12]) != string(wantCRC) {
		t.Errorf("crc = % x, want % x", data[8:12], wantCRC)
	}
	if data[12] != 0x50 {
		t.Errorf("metadata byte = %#02x, want 0x50", data[12])
	}
	if status, _ := rx.Check(data); status != Ok {
		t.Errorf("Check() = %v, want Ok", status)
	}
}

func TestProfile4MSourceIdError(t *testing.T) {
	tx, _ := NewProfile4M(DefaultProfile4Config())
	rx, _ := NewProfile4M(DefaultProfile4Config())
	tx.SourceID = 0x00123456
	rx.SourceID = 0x00999999

	data := make([]byte, 20)
	tx.Protect(data)
	if status, _ := rx.Check(data); status != SourceIdError {
		t.Errorf("Check() = %v, want SourceIdError", status)
	}
}

func TestProfile4MMessageTypeError(t *testing.T) {
	tx, _ := NewProfile4M(DefaultProfile4Config())
	rx, _ := NewProfile4M(DefaultProfile4Config())
	tx.MessageType, rx.MessageType = 0, 1

	data := make([]byte, 20)
	tx.Protect(data)
	if status, _ := rx.Check(data); status != MessageTypeError {
		t.Errorf("Check() = %v, want MessageTypeError", status)
	}
}

func TestProfile4MMessageResultError(t *testing.T) {
	tx, _ := NewProfile4M(DefaultProfile4Config())
	rx, _ := NewProfile4M(DefaultProfile4Config())
	tx.MessageResult, rx.MessageResult = 0, 1

	data := make([]byte, 20)
	tx.Protect(data)
	if status, _ := rx.Check(data); status != MessageResultError {
		t.Errorf("Check() = %v, want MessageResultError", status)
	}
}

// A base-level CrcError must be surfaced as-is, without being masked by a
// metadata mismatch that would otherwise take precedence.
func TestProfile4MBaseErrorTakesPrecedence(t *testing.T) {
	tx, _ := NewProfile4M(DefaultProfile4Config())
	rx, _ := NewProfile4M(DefaultProfile4Config())
	rx.SourceID = 0xdeadbeef

	data := make([]byte, 20)
	tx.Protect(data)
	data[8] ^= 0xFF
	if status, _ := rx.Check(data); status != CrcError {
		t.Errorf("Check() = %v, want CrcError", status)
	}
}

func TestProfile4MCheckTruncatedBuffer(t *testing.T) {
	tx, _ := NewProfile4M(DefaultProfile4Config())
	rx, _ := NewProfile4M(DefaultProfile4Config())

	data := make([]byte, 20)
	tx.Protect(data)

	short := data[:len(data)-1]
	if status, err := rx.Check(short); status != DataLengthError || err != nil {
		t.Errorf("Check(truncated) = (%v, %v), want (DataLengthError, nil)", status, err)
	}

	long := append(data, 0x00)
	if status, err := rx.Check(long); status != DataLengthError || err != nil {
		t.Errorf("Check(extended) = (%v, %v), want (DataLengthError, nil)", status, err)
	}
}
