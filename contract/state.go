package contract

import "sort"

// State is the key/value store the ledger lives in. Keys are binary strings built
// by the helpers in keys.go.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// Write is one pending mutation; a nil Value deletes the key.
type Write struct {
	Key   string
	Value *string
}

// Committer is implemented by stores that can apply a batch of writes atomically.
// Stores without it get the writes applied one by one.
type Committer interface {
	Commit(writes []Write) error
}

// overlay journals writes on top of a settled State so a transaction can be
// thrown away without touching the store.
type overlay struct {
	base    State
	pending map[string]*string
}

func newOverlay(base State) *overlay {
	return &overlay{base: base, pending: map[string]*string{}}
}

func (o *overlay) Get(key string) *string {
	if v, ok := o.pending[key]; ok {
		if v == nil {
			return nil
		}
		cp := *v
		return &cp
	}
	return o.base.Get(key)
}

func (o *overlay) Set(key, value string) {
	v := value
	o.pending[key] = &v
}

func (o *overlay) Delete(key string) {
	o.pending[key] = nil
}

// writes returns the journal sorted by key so commits are deterministic.
func (o *overlay) writes() []Write {
	keys := make([]string, 0, len(o.pending))
	for k := range o.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Write, 0, len(keys))
	for _, k := range keys {
		out = append(out, Write{Key: k, Value: o.pending[k]})
	}
	return out
}

// commitTo flushes the journal into the settled store.
func (o *overlay) commitTo(dst State) error {
	ws := o.writes()
	if c, ok := dst.(Committer); ok {
		return c.Commit(ws)
	}
	for _, w := range ws {
		if w.Value == nil {
			dst.Delete(w.Key)
			continue
		}
		dst.Set(w.Key, *w.Value)
	}
	return nil
}
