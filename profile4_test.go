package e2e

import "testing"

func TestProfile4BasicExample(t *testing.T) {
	tx, err := NewProfile4(DefaultProfile4Config())
	if err != nil {
		t.Fatal(err)
	}
	rx, err := NewProfile4(DefaultProfile4Config())
	if err != nil {
		t.Fatal(err)
	}

	data := make([]byte, 16)
	if err := tx.Protect(data); err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x00, 0x10, // length
		0x00, 0x00, // counter
		0x0a, 0x0b, 0x0c, 0x0d, // data id
		0x86, 0x2b, 0x05, 0x56, // crc
		0x00, 0x00, 0x00, 0x00, // payload
	}
	if string(data) != string(want) {
		t.Errorf("data = % x, want % x", data, want)
	}
	if status, err := rx.Check(data); err != nil || status != Ok {
		t.Errorf("Check() = (%v, %v), want (Ok, nil)", status, err)
	}
}

func TestProfile4OffsetExample(t *testing.T) {
	cfg := DefaultProfile4Config()
	cfg.Offset = 64
	tx, _ := NewProfile4(cfg)
	rx, _ := NewProfile4(cfg)

	data := make([]byte, 24)
	if err := tx.Protect(data); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0x18, 0x00, 0x00, 0x0a, 0x0b, 0x0c, 0x0d, 0x69, 0xd7, 0x50, 0x2e}
	if string(data[8:20]) != string(want) {
		t.Errorf("data[8:20] = % x, want % x", data[8:20], want)
	}
	if status, err := rx.Check(data); err != nil || status != Ok {
		t.Errorf("Check() = (%v, %v), want (Ok, nil)", status, err)
	}
}

func TestProfile4CounterWraparound(t *testing.T) {
	cfg := DefaultProfile4Config()
	cfg.Offset = 64
	tx, _ := NewProfile4(cfg)
	rx, _ := NewProfile4(cfg)

	data := make([]byte, 24)
	if err := tx.Protect(data); err != nil {
		t.Fatal(err)
	}
	if status, _ := rx.Check(data); status != Ok {
		t.Fatalf("initial Check() = %v, want Ok", status)
	}
	for i := 1; i <= 0xFFFF; i++ {
		if err := tx.Protect(data); err != nil {
			t.Fatal(err)
		}
		gotCounter := beUint16(data, 10)
		if int(gotCounter) != i%0x10000 {
			t.Fatalf("iteration %d: counter = %#04x, want %#04x", i, gotCounter, i%0x10000)
		}
		if status, _ := rx.Check(data); status != Ok {
			t.Fatalf("iteration %d: Check() = %v, want Ok", i, status)
		}
	}
	if err := tx.Protect(data); err != nil {
		t.Fatal(err)
	}
	if gotCounter := beUint16(data, 10); gotCounter != 0 {
		t.Errorf("counter after full wraparound = %#04x, want 0x0000", gotCounter)
	}
	if status, _ := rx.Check(data); status != Ok {
		t.Errorf("Check() after wraparound = %v, want Ok", status)
	}
}

func TestProfile4DataIdError(t *testing.T) {
	tx, _ := NewProfile4(DefaultProfile4Config())
	cfg := DefaultProfile4Config()
	cfg.DataID = 0xffffffff
	rx, _ := NewProfile4(cfg)

	data := make([]byte, 16)
	tx.Protect(data)
	if status, _ := rx.Check(data); status != DataIdError {
		t.Errorf("Check() = %v, want DataIdError", status)
	}
}

func TestProfile4CrcError(t *testing.T) {
	tx, _ := NewProfile4(DefaultProfile4Config())
	rx, _ := NewProfile4(DefaultProfile4Config())

	data := make([]byte, 16)
	tx.Protect(data)
	data[8] ^= 0xFF
	if status, _ := rx.Check(data); status != CrcError {
		t.Errorf("Check() = %v, want CrcError", status)
	}
}

func TestProfile4DataLengthError(t *testing.T) {
	tx, _ := NewProfile4(DefaultProfile4Config())
	rx, _ := NewProfile4(DefaultProfile4Config())

	data := make([]byte, 16)
	tx.Protect(data)
	putBeUint16(data, 0, 0xffff)
	if status, _ := rx.Check(data); status != DataLengthError {
		t.Errorf("Check() = %v, want DataLengthError", status)
	}
}

func TestProfile4CheckTruncatedBuffer(t *testing.T) {
	tx, _ := NewProfile4(DefaultProfile4Config())
	rx, _ := NewProfile4(DefaultProfile4Config())

	data := make([]byte, 16)
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

func TestProfile4RepeatedFrame(t *testing.T) {
	tx, _ := NewProfile4(DefaultProfile4Config())
	rx, _ := NewProfile4(DefaultProfile4Config())

	data := make([]byte, 16)
	tx.Protect(data)
	if status, _ := rx.Check(data); status != Ok {
		t.Fatalf("first Check() = %v, want Ok", status)
	}
	if status, _ := rx.Check(data); status != Repeated {
		t.Errorf("second Check() = %v, want Repeated", status)
	}
}

func TestProfile4InvalidConfig(t *testing.T) {
	cfg := DefaultProfile4Config()
	cfg.MaxDeltaCounter = 0
	if _, err := NewProfile4(cfg); err == nil {
		t.Error("NewProfile4 with MaxDeltaCounter=0 should fail")
	}

	cfg = DefaultProfile4Config()
	cfg.MinDataLength = 8
	if _, err := NewProfile4(cfg); err == nil {
		t.Error("NewProfile4 with too-small MinDataLength should fail")
	}
}

func TestProfile4Protect(t *testing.T) {
	p, _ := NewProfile4(DefaultProfile4Config())
	if err := p.Protect(make([]byte, 4)); err == nil {
		t.Error("Protect with too-short buffer should fail")
	}
}
