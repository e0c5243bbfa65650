package classify

import "sync"

// HashFrequencyIndex tracks which file extensions produced each content
// hash. A hash shared across many extensions means the server answers
// everything with the same body.
type HashFrequencyIndex struct {
	mu     sync.Mutex
	byHash map[string]map[string]struct{}
}

// NewHashFrequencyIndex creates an empty index.
func NewHashFrequencyIndex() *HashFrequencyIndex {
	return &HashFrequencyIndex{byHash: make(map[string]map[string]struct{})}
}

// Record notes that ext produced hash and returns how many distinct
// extensions have produced it so far.
func (i *HashFrequencyIndex) Record(hash, ext string) int {
	if hash == "" {
		return 0
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	exts, ok := i.byHash[hash]
	if !ok {
		exts = make(map[string]struct{})
		i.byHash[hash] = exts
	}
	exts[ext] = struct{}{}
	return len(exts)
}

// Reset clears the index for the next target.
func (i *HashFrequencyIndex) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.byHash = make(map[string]map[string]struct{})
}

type sizeKey struct {
	status      int
	length      int64
	contentType string
}

// SizeFrequencyIndex counts exact (status, length, content-type)
// repetitions. Generic error bodies recur with identical shape.
type SizeFrequencyIndex struct {
	mu     sync.Mutex
	counts map[sizeKey]int
}

// NewSizeFrequencyIndex creates an empty index.
func NewSizeFrequencyIndex() *SizeFrequencyIndex {
	return &SizeFrequencyIndex{counts: make(map[sizeKey]int)}
}

// Record counts one occurrence of the triple and returns the running total.
func (i *SizeFrequencyIndex) Record(status int, length int64, contentType string) int {
	key := sizeKey{status: status, length: length, contentType: contentType}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.counts[key]++
	return i.counts[key]
}

// Reset clears the index for the next target.
func (i *SizeFrequencyIndex) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.counts = make(map[sizeKey]int)
}
