package json

import "unicode/utf8"

// Member is one key/value entry of an Object.
type Member struct {
	// Key is the key as Go UTF-8. Unpaired surrogates read as U+FFFD; use
	// KeyRunes to see them.
	Key   string
	Value Value

	keyRunes []rune
}

// KeyRunes returns the key as code points.
func (m Member) KeyRunes() []rune {
	if m.keyRunes == nil {
		return []rune(m.Key)
	}
	return m.keyRunes
}

// Object is an insertion-ordered mapping from string keys to values.
// Setting a key that already exists replaces its value but keeps the
// position where the key was first seen.
//
// Keys are compared code point by code point, so keys that differ only in
// unpaired surrogates stay distinct.
type Object struct {
	members []Member
	index   map[string]int
}

func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set stores v under key.
func (o *Object) Set(key string, v Value) {
	o.SetRunes([]rune(key), v)
}

// SetRunes stores v under the key made of the code points in key. The slice
// is copied.
func (o *Object) SetRunes(key []rune, v Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	k := indexKey(key)
	if i, ok := o.index[k]; ok {
		o.members[i].Value = v
		return
	}
	rs := make([]rune, len(key))
	copy(rs, key)
	o.index[k] = len(o.members)
	o.members = append(o.members, Member{Key: string(rs), Value: v, keyRunes: rs})
}

func (o *Object) Get(key string) (Value, bool) {
	return o.GetRunes([]rune(key))
}

func (o *Object) GetRunes(key []rune) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[indexKey(key)]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Keys returns the keys in first-seen order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// KeyRunes returns the keys as code points in first-seen order.
func (o *Object) KeyRunes() [][]rune {
	if o == nil {
		return nil
	}
	keys := make([][]rune, len(o.members))
	for i, m := range o.members {
		keys[i] = m.KeyRunes()
	}
	return keys
}

// Members returns a copy of the entries in first-seen order.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	out := make([]Member, len(o.members))
	copy(out, o.members)
	return out
}

// Range calls f for each member in order until f returns false.
func (o *Object) Range(f func(key string, v Value) bool) {
	if o == nil {
		return
	}
	for _, m := range o.members {
		if !f(m.Key, m.Value) {
			return
		}
	}
}

// indexKey encodes key as WTF-8: UTF-8 that also encodes surrogate code
// points, so distinct code point sequences map to distinct strings.
func indexKey(key []rune) string {
	b := make([]byte, 0, len(key))
	for _, r := range key {
		if r >= 0xD800 && r < 0xE000 {
			b = append(b, 0xE0|byte(r>>12), 0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F)
			continue
		}
		b = utf8.AppendRune(b, r)
	}
	return string(b)
}
