package contract

import "strconv"

// getCount reads the string counter under the key and defaults to zero.
func getCount(st State, key string) uint64 {
	ptr := st.Get(key)
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.ParseUint(*ptr, 10, 64)
	return n
}

// setCount stores uint64 counters back as decimal strings.
func setCount(st State, key string, n uint64) {
	st.Set(key, strconv.FormatUint(n, 10))
}

// nextID hands out the current counter value and bumps it.
func nextID(st State, key string) uint64 {
	id := getCount(st, key)
	setCount(st, key, id+1)
	return id
}
