// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

import "math"

// dictionary is the binary-tree match finder.
//
// Every 3-byte prefix hashes to a bucket whose root is the most recent position
// with that hash. Each position owns two child slots in a flat arena indexed by
// position mod DictionarySize; the tree under a root is a binary search tree of
// suffixes in which deeper nodes are older. Searching a position re-links the
// tree around it, so the new position becomes the root.
//
// Stored positions are int32 and relative to bufferBase. When the relative
// position reaches rebaseThreshold the origin moves forward and positions that
// fall out of range are invalidated, which keeps buffers larger than 2 GiB indexable.
type dictionary struct {
	buf []byte // input being compressed

	bufferBase      int // absolute position of the relative origin
	absolutePos     int // next absolute position to index
	matchableLen    int // positions at or after this never produce matches
	rebaseThreshold int // relative position that triggers a rebase

	hashTable []int32 // relative position of the newest node per bucket
	children  []int32 // two child slots per cyclic position
}

const (
	dictHashBits  = 20
	dictHashSize  = 1 << dictHashBits
	dictCycleMask = DictionarySize - 1

	// invalidPosition marks an empty hash bucket or child slot.
	invalidPosition = -1

	// defaultRebaseThreshold is the largest multiple of DictionarySize that keeps
	// relative positions below the int32 limit.
	defaultRebaseThreshold = (math.MaxInt32 - DictionarySize + 1) / DictionarySize * DictionarySize
)

// reset prepares the dictionary for a new input. The hash table is cleared and
// the child arena is sized for the input; child slots are always written before
// they are read, so they need no clearing.
func (d *dictionary) reset(buf []byte) {
	d.buf = buf
	d.bufferBase = 0
	d.absolutePos = 0
	d.rebaseThreshold = defaultRebaseThreshold

	d.matchableLen = 0
	if len(buf) > tailLength+MinMatchLength {
		d.matchableLen = len(buf) - (tailLength + MinMatchLength)
	}

	if d.hashTable == nil {
		d.hashTable = make([]int32, dictHashSize)
	}
	for i := range d.hashTable {
		d.hashTable[i] = invalidPosition
	}

	nodes := min(len(buf), DictionarySize)
	if cap(d.children) < 2*nodes {
		d.children = make([]int32, 2*nodes)
	}
	d.children = d.children[:2*nodes]
}

// position returns the absolute position of the next byte to index.
func (d *dictionary) position() int {
	return d.absolutePos
}

// findMatches indexes the current position, stores the match candidates found
// there into candidates ordered by ascending length and advances by one byte.
// It returns the number of candidates. A nil candidates slice only updates the index.
func (d *dictionary) findMatches(candidates []Match) int {
	if d.absolutePos >= d.matchableLen {
		d.absolutePos++
		return 0
	}

	maxMatchLength := min(len(d.buf)-tailLength-d.absolutePos, MaxMatchLength)

	// From here on every position is relative to bufferBase.
	position := d.relativePosition()
	base := d.bufferBase
	current := d.buf[base+position:]

	minMatchPosition := 0
	if position >= DictionarySize {
		minMatchPosition = position - DictionarySize + 1
	}

	hashValue := hash3(current) & (dictHashSize - 1)
	matchPosition := int(d.hashTable[hashValue])
	d.hashTable[hashValue] = int32(position) //nolint:gosec // G115: position < rebaseThreshold

	cyclicPosition := position & dictCycleMask

	// Slots still waiting for a node: the right child of the lower bound and the
	// left child of the upper bound. Both start at the new root.
	leftLeaf := cyclicPosition * 2
	rightLeaf := cyclicPosition*2 + 1

	// Common prefix lengths with the lower and upper bounds; every node between
	// them shares at least the smaller of the two.
	lowMatchLength := 0
	highMatchLength := 0

	longestMatchLength := 0
	visited := 0
	count := 0

	for {
		if matchPosition < minMatchPosition || visited == MaxMatchCandidateCount {
			d.children[leftLeaf] = invalidPosition
			d.children[rightLeaf] = invalidPosition
			break
		}
		visited++

		cyclicMatchPosition := matchPosition & dictCycleMask
		candidate := d.buf[base+matchPosition:]

		matchLength := min(lowMatchLength, highMatchLength)
		for matchLength < maxMatchLength && current[matchLength] == candidate[matchLength] {
			matchLength++
		}

		if matchLength > longestMatchLength && matchLength >= MinMatchLength {
			longestMatchLength = matchLength

			if candidates != nil {
				candidates[count] = Match{Offset: position - matchPosition, Length: matchLength}
				count++
			}

			// The new root replaces this node entirely, so adopt its subtrees.
			if matchLength == maxMatchLength {
				d.children[leftLeaf] = d.children[cyclicMatchPosition*2]
				d.children[rightLeaf] = d.children[cyclicMatchPosition*2+1]
				break
			}
		}

		if current[matchLength] < candidate[matchLength] {
			// Node is greater: hang it on the right and continue in its left subtree.
			d.children[rightLeaf] = int32(matchPosition) //nolint:gosec // G115: position < rebaseThreshold
			rightLeaf = cyclicMatchPosition * 2
			matchPosition = int(d.children[rightLeaf])
			highMatchLength = matchLength
		} else {
			// Node is smaller: hang it on the left and continue in its right subtree.
			d.children[leftLeaf] = int32(matchPosition) //nolint:gosec // G115: position < rebaseThreshold
			leftLeaf = cyclicMatchPosition*2 + 1
			matchPosition = int(d.children[leftLeaf])
			lowMatchLength = matchLength
		}
	}

	d.absolutePos++
	return count
}

// skip indexes the current position without collecting candidates.
func (d *dictionary) skip() {
	d.findMatches(nil)
}

// relativePosition returns the current position relative to bufferBase,
// rebasing all stored positions first when the threshold is reached.
func (d *dictionary) relativePosition() int {
	position := d.absolutePos - d.bufferBase
	if position != d.rebaseThreshold {
		return position
	}

	delta := d.rebaseThreshold - DictionarySize
	d.bufferBase += delta
	position -= delta

	rebasePositions(d.hashTable, delta)
	rebasePositions(d.children, delta)

	return position
}

// rebasePositions shifts positions down by delta and invalidates the ones that become negative.
func rebasePositions(positions []int32, delta int) {
	d32 := int32(delta) //nolint:gosec // G115: delta < rebaseThreshold
	for i, p := range positions {
		if p >= d32 {
			positions[i] = p - d32
		} else {
			positions[i] = invalidPosition
		}
	}
}

// hash3 is FNV-1a over the first three bytes of data.
func hash3(data []byte) uint32 {
	const (
		prime  = 16777619
		offset = 2166136261
	)

	h := uint32(offset)
	h = (h ^ uint32(data[0])) * prime
	h = (h ^ uint32(data[1])) * prime
	h = (h ^ uint32(data[2])) * prime

	return h
}
