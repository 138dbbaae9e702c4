// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

// copyMatch copies m.Length bytes from dst[outPos-m.Offset:] to dst[outPos:] in word steps.
// The caller guarantees that the source starts inside dst and that the match ends
// before the output tail, so the final word store may overshoot the match but
// never the buffer.
func copyMatch(dst []byte, outPos int, m Match) {
	src := outPos - m.Offset
	i := 0

	if m.Offset < WordSize {
		// Source and destination words overlap, so a word load would pick up bytes
		// not written yet. Copy three bytes one by one, then move the source back
		// onto an earlier period of the same pattern, at least a word behind.
		for ; i < 3; i++ {
			dst[outPos+i] = dst[src+i]
		}

		src -= 2 + (m.Offset & 1)
	}

	for ; i < m.Length; i += WordSize {
		fastWrite(dst, outPos+i, fastRead(dst, src+i, WordSize), WordSize)
	}
}
