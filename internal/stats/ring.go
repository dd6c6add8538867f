package stats

// ring is a fixed-capacity circular buffer of samples. When full, pushing
// overwrites the oldest entry.
type ring struct {
	data  []Sample
	head  int
	count int
}

// newRing creates a ring with the specified capacity.
func newRing(size int) ring {
	return ring{data: make([]Sample, size)}
}

// push adds a sample, evicting the oldest when the ring is full.
func (r *ring) push(s Sample) {
	r.data[r.head] = s
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// last returns the most recent count samples in chronological order
// (oldest first). Fewer are returned if the ring holds fewer.
func (r *ring) last(count int) []Sample {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]Sample, count)

	// head points at the next write position, so the most recent sample is
	// at head-1 and the window of count samples ends there.
	start := (r.head - count + len(r.data)) % len(r.data)
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%len(r.data)]
	}
	return result
}

// all returns every stored sample in chronological order.
func (r *ring) all() []Sample {
	return r.last(r.count)
}
