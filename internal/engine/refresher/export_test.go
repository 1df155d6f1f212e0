package refresher

// IndexRebuilds returns how many times Track rewrote the index.
func IndexRebuilds(r *Refresher) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rebuilds
}
