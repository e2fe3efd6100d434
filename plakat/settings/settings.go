// Package settings persists the watchface toggles in the first flash erase
// block.
//
// Record layout:
//
//	"FPK1" | count u8 | count * (key u8, value u8) | crc32 u32le
//
// An erased block reads as "no settings" and yields the defaults.
package settings

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"filmplakat/hal"
)

// Key identifies a toggle.
type Key uint8

const (
	KeyInvert    Key = 1
	KeyStatusBar Key = 2
	KeyGesture   Key = 3
)

func (k Key) String() string {
	switch k {
	case KeyInvert:
		return "invert"
	case KeyStatusBar:
		return "statusbar"
	case KeyGesture:
		return "accel"
	default:
		return fmt.Sprintf("key(%d)", uint8(k))
	}
}

// MaxEntries bounds the record.
const MaxEntries = 16

var (
	ErrCorrupt = errors.New("settings: corrupt record")
	ErrFull    = errors.New("settings: too many entries")
	ErrNoFlash = errors.New("settings: no flash")
)

var magic = [4]byte{'F', 'P', 'K', '1'}

const headerLen = 5

// Entry is one stored toggle.
type Entry struct {
	Key   Key
	Value bool
}

// Values are the watchface toggles.
type Values struct {
	Invert    bool
	StatusBar bool
	Gesture   bool
}

// Defaults apply to keys missing from flash.
var Defaults = Values{Gesture: true}

// Entries lists v in key order.
func (v Values) Entries() []Entry {
	return []Entry{
		{KeyInvert, v.Invert},
		{KeyStatusBar, v.StatusBar},
		{KeyGesture, v.Gesture},
	}
}

// Encode serializes entries into a record.
func Encode(entries []Entry) ([]byte, error) {
	if len(entries) > MaxEntries {
		return nil, ErrFull
	}
	b := make([]byte, 0, headerLen+2*len(entries)+4)
	b = append(b, magic[:]...)
	b = append(b, byte(len(entries)))
	for _, e := range entries {
		v := byte(0)
		if e.Value {
			v = 1
		}
		b = append(b, byte(e.Key), v)
	}
	return binary.LittleEndian.AppendUint32(b, crc32.ChecksumIEEE(b)), nil
}

// Decode parses a record. An erased record decodes to no entries.
func Decode(b []byte) ([]Entry, error) {
	if len(b) < headerLen {
		return nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	if erased(b[:headerLen]) {
		return nil, nil
	}
	if [4]byte(b[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, b[:4])
	}
	n := int(b[4])
	if n > MaxEntries {
		return nil, fmt.Errorf("%w: %d entries", ErrCorrupt, n)
	}
	end := headerLen + 2*n
	if len(b) < end+4 {
		return nil, fmt.Errorf("%w: truncated", ErrCorrupt)
	}
	if got, want := binary.LittleEndian.Uint32(b[end:]), crc32.ChecksumIEEE(b[:end]); got != want {
		return nil, fmt.Errorf("%w: crc %08x, want %08x", ErrCorrupt, got, want)
	}
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{Key: Key(b[headerLen+2*i]), Value: b[headerLen+2*i+1] != 0}
	}
	return entries, nil
}

func erased(b []byte) bool {
	for _, c := range b {
		if c != 0xFF {
			return false
		}
	}
	return true
}

// Store caches the record and writes it back on change.
type Store struct {
	flash   hal.Flash
	entries []Entry
}

// Open loads the record from f. A corrupt record is reported but the store
// stays usable with the defaults.
func Open(f hal.Flash) (*Store, error) {
	s := &Store{flash: f}
	if f == nil {
		return s, ErrNoFlash
	}
	buf := make([]byte, headerLen+2*MaxEntries+4)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return s, fmt.Errorf("settings: read: %w", err)
	}
	entries, err := Decode(buf)
	if err != nil {
		return s, err
	}
	s.entries = entries
	return s, nil
}

// Bool returns the stored value for k, or def.
func (s *Store) Bool(k Key, def bool) bool {
	for _, e := range s.entries {
		if e.Key == k {
			return e.Value
		}
	}
	return def
}

// SetBool stores v for k and persists the record when it changed.
func (s *Store) SetBool(k Key, v bool) error {
	changed, err := s.set(k, v)
	if err != nil || !changed {
		return err
	}
	return s.save()
}

func (s *Store) set(k Key, v bool) (bool, error) {
	for i := range s.entries {
		if s.entries[i].Key != k {
			continue
		}
		if s.entries[i].Value == v {
			return false, nil
		}
		s.entries[i].Value = v
		return true, nil
	}
	if len(s.entries) >= MaxEntries {
		return false, ErrFull
	}
	s.entries = append(s.entries, Entry{Key: k, Value: v})
	return true, nil
}

// Values returns the toggles with Defaults filled in.
func (s *Store) Values() Values {
	return Values{
		Invert:    s.Bool(KeyInvert, Defaults.Invert),
		StatusBar: s.Bool(KeyStatusBar, Defaults.StatusBar),
		Gesture:   s.Bool(KeyGesture, Defaults.Gesture),
	}
}

// SetValues stores every toggle of v with a single flash write. It reports
// whether any toggle changed.
func (s *Store) SetValues(v Values) (bool, error) {
	if s.Values() == v {
		return false, nil
	}
	for _, e := range v.Entries() {
		if _, err := s.set(e.Key, e.Value); err != nil {
			return true, err
		}
	}
	return true, s.save()
}

func (s *Store) save() error {
	if s.flash == nil {
		return ErrNoFlash
	}
	rec, err := Encode(s.entries)
	if err != nil {
		return err
	}
	block := s.flash.EraseBlockBytes()
	if block == 0 || uint32(len(rec)) > block {
		return fmt.Errorf("settings: record of %d bytes does not fit erase block %d", len(rec), block)
	}
	if err := s.flash.Erase(0, block); err != nil {
		return fmt.Errorf("settings: erase: %w", err)
	}
	if _, err := s.flash.WriteAt(rec, 0); err != nil {
		return fmt.Errorf("settings: write: %w", err)
	}
	return nil
}
