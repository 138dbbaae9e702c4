// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

import "sync"

// dictionaryPool recycles match finders; the hash table alone is 4 MiB.
var dictionaryPool = sync.Pool{
	New: func() any {
		return &dictionary{}
	},
}

// acquireDictionary returns a match finder reset for buf and owned by the caller.
func acquireDictionary(buf []byte) *dictionary {
	dict := dictionaryPool.Get().(*dictionary)
	dict.reset(buf)
	return dict
}

// releaseDictionary returns a match finder to the pool.
func releaseDictionary(dict *dictionary) {
	if dict == nil {
		return
	}

	dict.buf = nil
	dictionaryPool.Put(dict)
}

// scratchPool stores temporary output buffers used by Compress.
var scratchPool sync.Pool

// scratchBuffer wraps reusable temporary output storage.
type scratchBuffer struct {
	data []byte
}

// acquireScratch returns a buffer with at least size bytes.
func acquireScratch(size int) *scratchBuffer {
	if buf, ok := scratchPool.Get().(*scratchBuffer); ok {
		if cap(buf.data) >= size {
			buf.data = buf.data[:size]
			return buf
		}
	}

	return &scratchBuffer{data: make([]byte, size)}
}

// releaseScratch returns a scratch buffer to the pool.
func releaseScratch(buf *scratchBuffer) {
	if buf == nil {
		return
	}

	buf.data = buf.data[:cap(buf.data)]
	scratchPool.Put(buf)
}
