package doboz

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func mustCompress(t testing.TB, data []byte) []byte {
	t.Helper()

	cmp, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	return cmp
}

func TestDecompress_TruncatedInputAlwaysFails(t *testing.T) {
	inputs := map[string][]byte{
		"compressed": bytes.Repeat([]byte("0123456789abcdef"), 256),
		"stored":     randomBytes(5, 512),
	}

	for name, data := range inputs {
		cmp := mustCompress(t, data)

		for cut := 1; cut <= len(cmp); cut++ {
			truncated := cmp[:len(cmp)-cut]
			_, err := Decompress(truncated, nil)
			if !errors.Is(err, ErrCorruptedData) {
				t.Fatalf("%s: cut=%d: expected ErrCorruptedData, got %v", name, cut, err)
			}

			_, err = DecompressInto(truncated, make([]byte, len(data)))
			if !errors.Is(err, ErrCorruptedData) {
				t.Fatalf("%s: cut=%d: DecompressInto expected ErrCorruptedData, got %v", name, cut, err)
			}
		}
	}
}

func TestDecompress_TruncatedPayloadWithPatchedHeader(t *testing.T) {
	data := bytes.Repeat([]byte("patched header "), 200)
	cmp := mustCompress(t, data)

	h, _, err := decodeHeader(cmp)
	if err != nil {
		t.Fatalf("decodeHeader failed: %v", err)
	}

	// Drop real payload bytes, not just trailing padding, and keep the header
	// consistent with the shorter block so only the decoder's bounds checks can catch it.
	for cut := trailingDummySize + 1; cut <= trailingDummySize+64; cut++ {
		short := append([]byte{}, cmp[:len(cmp)-cut]...)
		h.compressedSize = uint64(len(short))
		encodeHeader(short, h, MaxCompressedSize(len(data)))

		if _, err := Decompress(short, nil); !errors.Is(err, ErrCorruptedData) {
			t.Fatalf("cut=%d: expected ErrCorruptedData, got %v", cut, err)
		}
	}
}

func TestDecompressInto_DestinationTooSmall(t *testing.T) {
	data := bytes.Repeat([]byte("AABBCCDDEEFF"), 512)
	cmp := mustCompress(t, data)

	_, err := DecompressInto(cmp, make([]byte, len(data)-1))
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
}

func TestDecompressInto_ReusesCallerBuffer(t *testing.T) {
	data := bytes.Repeat([]byte("decode-into"), 256)
	cmp := mustCompress(t, data)

	dst := make([]byte, len(data)+100)
	out, err := DecompressInto(cmp, dst)
	if err != nil {
		t.Fatalf("DecompressInto failed: %v", err)
	}

	if !bytes.Equal(out, data) {
		t.Fatal("decoded output mismatch")
	}
	if &out[0] != &dst[0] {
		t.Fatal("DecompressInto should return a slice over the provided destination buffer")
	}
}

func TestDecompress_UnsupportedVersion(t *testing.T) {
	cmp := mustCompress(t, []byte("versioned block payload, versioned block payload"))
	cmp[0] = cmp[0]&^attrVersionMask | 1

	if _, err := Decompress(cmp, nil); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
	if _, err := DecompressInto(cmp, make([]byte, 1024)); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}

	info, err := Info(cmp)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Version != 1 {
		t.Fatalf("Info version = %d, want 1", info.Version)
	}
}

func TestDecompress_InvalidSizeWidth(t *testing.T) {
	for _, code := range []byte{2, 4, 5, 6} {
		src := make([]byte, 64)
		src[0] = code << attrWidthShift

		if _, err := Info(src); !errors.Is(err, ErrCorruptedData) {
			t.Fatalf("width code %d: expected ErrCorruptedData, got %v", code, err)
		}
	}
}

func TestDecompress_EmptyInput(t *testing.T) {
	if _, err := Decompress(nil, nil); !errors.Is(err, ErrCorruptedData) {
		t.Fatalf("expected ErrCorruptedData, got %v", err)
	}
	if _, err := Info(nil); !errors.Is(err, ErrCorruptedData) {
		t.Fatalf("Info: expected ErrCorruptedData, got %v", err)
	}
}

func TestDecompress_ZeroOffsetMatchIsCorrupted(t *testing.T) {
	// Header: version 0, width 1, 40 bytes out, 31 bytes in.
	src := []byte{0x00, 40, 31}
	// Control word: first unit is a match, the guard bit closes the word.
	src = append(src, 0x01, 0x00, 0x00, 0x80)
	// One-byte match code with offset 0.
	src = append(src, 0x00)
	src = append(src, make([]byte, 31-len(src))...)

	if _, err := Decompress(src, nil); !errors.Is(err, ErrCorruptedData) {
		t.Fatalf("expected ErrCorruptedData, got %v", err)
	}
}

func TestDecompress_MatchBeforeStartIsCorrupted(t *testing.T) {
	src := []byte{0x00, 40, 31}
	src = append(src, 0x01, 0x00, 0x00, 0x80)
	// One-byte match code with offset 5 at output position 0.
	src = append(src, 5<<2)
	src = append(src, make([]byte, 31-len(src))...)

	if _, err := Decompress(src, nil); !errors.Is(err, ErrCorruptedData) {
		t.Fatalf("expected ErrCorruptedData, got %v", err)
	}
}

func TestDecompress_StoredSizeMismatch(t *testing.T) {
	cmp := mustCompress(t, randomBytes(9, 64))

	h, _, err := decodeHeader(cmp)
	if err != nil {
		t.Fatalf("decodeHeader failed: %v", err)
	}
	if !h.isStored {
		t.Fatal("random input should be stored")
	}

	h.uncompressedSize--
	encodeHeader(cmp, h, MaxCompressedSize(64))

	if _, err := Decompress(cmp, nil); !errors.Is(err, ErrCorruptedData) {
		t.Fatalf("expected ErrCorruptedData, got %v", err)
	}
}

func TestDecompress_MaxOutputSize(t *testing.T) {
	data := bytes.Repeat([]byte("xyz"), 200)
	cmp := mustCompress(t, data)

	_, err := Decompress(cmp, &DecompressOptions{MaxOutputSize: len(data) - 1})
	if !errors.Is(err, ErrOutputTooLarge) {
		t.Fatalf("expected ErrOutputTooLarge, got %v", err)
	}

	out, err := Decompress(cmp, &DecompressOptions{MaxOutputSize: len(data)})
	if err != nil || !bytes.Equal(out, data) {
		t.Fatalf("exact limit should decode: %v", err)
	}
}

func TestDecompress_ImplausibleExpansionRejected(t *testing.T) {
	// Width 4 header claiming 1 GiB out of a 41-byte block.
	src := make([]byte, 41)
	h := header{version: Version, uncompressedSize: 1 << 30, compressedSize: 41}
	encodeHeader(src, h, 1<<20)

	if _, err := Decompress(src, nil); !errors.Is(err, ErrCorruptedData) {
		t.Fatalf("expected ErrCorruptedData, got %v", err)
	}
}

// storedHeader builds a stored block header followed by payload bytes of zeros.
func storedHeader(uncompressedSize, compressedSize uint64, maxCompressedSize, srcLen int) []byte {
	src := make([]byte, srcLen)
	encodeHeader(src, header{
		version:          Version,
		isStored:         true,
		uncompressedSize: uncompressedSize,
		compressedSize:   compressedSize,
	}, maxCompressedSize)

	return src
}

func TestDecompress_StoredSizeBeyondSource(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
	}{
		{name: "width-8-huge", src: storedHeader(1<<50, 17, 1<<40, 17)},
		{name: "width-8-max-int", src: storedHeader(math.MaxInt64, 17, 1<<40, 17)},
		{name: "width-8-above-int", src: storedHeader(1<<63+5, 17, 1<<40, 17)},
		{name: "width-4-2gib", src: storedHeader(1<<31, 25, 1<<20, 25)},
		{name: "width-1-short", src: storedHeader(200, 20, 100, 20)},
		{name: "width-1-long", src: storedHeader(4, 20, 100, 20)},
		{name: "compressed-below-header", src: storedHeader(0, 2, 100, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decompress(tt.src, nil); !errors.Is(err, ErrCorruptedData) {
				t.Fatalf("Decompress: expected ErrCorruptedData, got %v", err)
			}
			if _, err := DecompressFromReader(bytes.NewReader(tt.src), nil); !errors.Is(err, ErrCorruptedData) {
				t.Fatalf("DecompressFromReader: expected ErrCorruptedData, got %v", err)
			}
		})
	}
}

func TestDecompressFromReader_MaxInputSize(t *testing.T) {
	data := bytes.Repeat([]byte("xyz"), 200)
	cmp := mustCompress(t, data)

	opts := DefaultDecompressOptions()
	opts.MaxInputSize = len(cmp) - 1
	_, err := DecompressFromReader(bytes.NewReader(cmp), opts)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}

	opts.MaxInputSize = len(cmp)
	out, err := DecompressFromReader(bytes.NewReader(cmp), opts)
	if err != nil || !bytes.Equal(out, data) {
		t.Fatalf("exact input limit should decode: %v", err)
	}
}

func TestInfo_ReportsSizes(t *testing.T) {
	data := bytes.Repeat([]byte("info "), 1000)
	cmp := mustCompress(t, data)

	info, err := Info(cmp)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}

	want := CompressionInfo{UncompressedSize: uint64(len(data)), CompressedSize: uint64(len(cmp)), Version: Version}
	if info != want {
		t.Fatalf("Info = %+v, want %+v", info, want)
	}
}

func FuzzDecompressArbitrary(f *testing.F) {
	f.Add([]byte{})
	f.Add(mustCompress(f, []byte("seed block for the decoder fuzz target")))
	f.Add(mustCompress(f, bytes.Repeat([]byte{1, 2, 3}, 300)))

	f.Fuzz(func(t *testing.T, src []byte) {
		out, err := Decompress(src, &DecompressOptions{MaxOutputSize: 1 << 20})
		if err != nil {
			return
		}

		info, err := Info(src)
		if err != nil {
			t.Fatalf("Info failed on a decodable block: %v", err)
		}
		if uint64(len(out)) != info.UncompressedSize {
			t.Fatalf("decoded %d bytes, header says %d", len(out), info.UncompressedSize)
		}
	})
}

func FuzzDecompressUnbounded(f *testing.F) {
	f.Add(storedHeader(1<<50, 17, 1<<40, 17))
	f.Add(storedHeader(11, 14, 100, 14))
	f.Add(mustCompress(f, []byte("seed block without an output limit")))

	f.Fuzz(func(t *testing.T, src []byte) {
		out, err := Decompress(src, nil)
		if err != nil {
			return
		}

		// Nothing decodes to more than a maximal match per input byte.
		if len(out) > MaxMatchLength*len(src) {
			t.Fatalf("decoded %d bytes from %d", len(out), len(src))
		}
	})
}
