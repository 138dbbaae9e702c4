package doboz

import (
	"bytes"
	"errors"
	"testing"
)

func TestAPIContract_DecompressAllowsTrailingBytes(t *testing.T) {
	src := bytes.Repeat([]byte("api-contract"), 64)
	compressed := mustCompress(t, src)

	payload := append(append([]byte{}, compressed...), []byte("tail")...)
	out, err := Decompress(payload, nil)
	if err != nil {
		t.Fatalf("Decompress with trailing bytes failed: %v", err)
	}

	if !bytes.Equal(out, src) {
		t.Fatal("decoded output mismatch for trailing-byte input")
	}
}

func TestAPIContract_DecompressIntoLargerDestination(t *testing.T) {
	src := bytes.Repeat([]byte("short-output"), 32)
	compressed := mustCompress(t, src)

	out, err := DecompressInto(compressed, make([]byte, len(src)+256))
	if err != nil {
		t.Fatalf("DecompressInto failed: %v", err)
	}

	if len(out) != len(src) {
		t.Fatalf("decoded length mismatch: got=%d want=%d", len(out), len(src))
	}

	if !bytes.Equal(out, src) {
		t.Fatal("decoded output mismatch")
	}
}

func TestAPIContract_DecompressCanonicalStream(t *testing.T) {
	// One literal, a 20-byte run at offset 1 and eight tail literals.
	compressed := []byte{
		0x00, 29, 27, // header: version 0, width 1, sizes
		0x02, 0x00, 0x00, 0x80, // control word: literal, match, literals..., guard
		'a',
		0x8b, 0x01, 0x00, // match: length code 17, offset 1
		'1', '2', '3', '4', '5', '6', '7', '8',
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	expected := append(bytes.Repeat([]byte{'a'}, 21), "12345678"...)

	out, err := Decompress(compressed, nil)
	if err != nil {
		t.Fatalf("Decompress failed for canonical stream: %v", err)
	}

	if !bytes.Equal(out, expected) {
		t.Fatalf("canonical stream mismatch: got=%q want=%q", out, expected)
	}
}

func TestAPIContract_EmptyStoredBlock(t *testing.T) {
	compressed := mustCompress(t, nil)

	if !bytes.Equal(compressed, []byte{attrStored, 0, 3}) {
		t.Fatalf("empty block = % x", compressed)
	}

	out, err := Decompress(compressed, nil)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("decoded %d bytes from an empty block", len(out))
	}
}

func TestAPIContract_CompressIntoLeavesBufferTail(t *testing.T) {
	src := bytes.Repeat([]byte("tail-check"), 100)
	dst := bytes.Repeat([]byte{0xEE}, MaxCompressedSize(len(src))+32)

	n, err := CompressInto(src, dst)
	if err != nil {
		t.Fatalf("CompressInto failed: %v", err)
	}

	for i := MaxCompressedSize(len(src)); i < len(dst); i++ {
		if dst[i] != 0xEE {
			t.Fatalf("byte %d beyond the worst-case bound was modified", i)
		}
	}

	out, err := DecompressInto(dst[:n], make([]byte, len(src)))
	if err != nil || !bytes.Equal(out, src) {
		t.Fatalf("round-trip failed: %v", err)
	}
}

func TestAPIContract_NarrowDestinationIsRejected(t *testing.T) {
	src := []byte("x")

	for size := 0; size < MaxCompressedSize(len(src)); size++ {
		if _, err := CompressInto(src, make([]byte, size)); !errors.Is(err, ErrBufferTooSmall) {
			t.Fatalf("dst=%d: expected ErrBufferTooSmall, got %v", size, err)
		}
	}
}
