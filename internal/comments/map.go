package comments

import "iter"

// Bucket names the position of a comment relative to its owning node.
type Bucket uint8

const (
	BucketLeading Bucket = iota
	BucketDangling
	BucketTrailing
)

func (b Bucket) String() string {
	switch b {
	case BucketLeading:
		return "leading"
	case BucketDangling:
		return "dangling"
	case BucketTrailing:
		return "trailing"
	default:
		return "bucket(?)"
	}
}

// bucketSet holds the three positional sequences for one node,
// each in source order.
type bucketSet struct {
	leading  []*SourceComment
	dangling []*SourceComment
	trailing []*SourceComment
}

// multiMap associates a node identity key with its three comment buckets.
// Absent keys behave exactly like present keys with three empty buckets.
// Insertion order per bucket is the caller's (source) order; no reordering
// happens here.
type multiMap struct {
	entries map[nodeKey]*bucketSet
	order   []nodeKey // insertion order, for deterministic dumps
}

func newMultiMap() *multiMap {
	return &multiMap{entries: make(map[nodeKey]*bucketSet)}
}

func (m *multiMap) insert(key nodeKey, bucket Bucket, comment *SourceComment) {
	set, ok := m.entries[key]
	if !ok {
		set = &bucketSet{}
		m.entries[key] = set
		m.order = append(m.order, key)
	}
	switch bucket {
	case BucketLeading:
		set.leading = append(set.leading, comment)
	case BucketDangling:
		set.dangling = append(set.dangling, comment)
	case BucketTrailing:
		set.trailing = append(set.trailing, comment)
	}
}

func (m *multiMap) leading(key nodeKey) []*SourceComment {
	if m == nil {
		return nil
	}
	if set, ok := m.entries[key]; ok {
		return set.leading
	}
	return nil
}

func (m *multiMap) dangling(key nodeKey) []*SourceComment {
	if m == nil {
		return nil
	}
	if set, ok := m.entries[key]; ok {
		return set.dangling
	}
	return nil
}

func (m *multiMap) trailing(key nodeKey) []*SourceComment {
	if m == nil {
		return nil
	}
	if set, ok := m.entries[key]; ok {
		return set.trailing
	}
	return nil
}

func (m *multiMap) has(key nodeKey) bool {
	if m == nil {
		return false
	}
	set, ok := m.entries[key]
	return ok && (len(set.leading) > 0 || len(set.dangling) > 0 || len(set.trailing) > 0)
}

// parts yields the node's comments lazily: leading, then dangling,
// then trailing.
func (m *multiMap) parts(key nodeKey) iter.Seq[*SourceComment] {
	return func(yield func(*SourceComment) bool) {
		if m == nil {
			return
		}
		set, ok := m.entries[key]
		if !ok {
			return
		}
		for _, c := range set.leading {
			if !yield(c) {
				return
			}
		}
		for _, c := range set.dangling {
			if !yield(c) {
				return
			}
		}
		for _, c := range set.trailing {
			if !yield(c) {
				return
			}
		}
	}
}

// allParts yields every stored comment across all keys, keys in insertion
// order, buckets in canonical order. Used by the exhaustiveness check and
// the debug dump.
func (m *multiMap) allParts() iter.Seq[*SourceComment] {
	return func(yield func(*SourceComment) bool) {
		if m == nil {
			return
		}
		for _, key := range m.order {
			for c := range m.parts(key) {
				if !yield(c) {
					return
				}
			}
		}
	}
}
