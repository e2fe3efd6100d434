package hal

import "fmt"

// MemFlash is a RAM-backed flash with NOR semantics: erased bytes read 0xFF
// and writes may only clear bits.
type MemFlash struct {
	buf   []byte
	block uint32
}

// NewMemFlash returns an erased flash of size bytes with the given erase block.
func NewMemFlash(size, block uint32) *MemFlash {
	f := &MemFlash{buf: make([]byte, size), block: block}
	for i := range f.buf {
		f.buf[i] = 0xFF
	}
	return f
}

func (f *MemFlash) SizeBytes() uint32       { return uint32(len(f.buf)) }
func (f *MemFlash) EraseBlockBytes() uint32 { return f.block }

// Bytes exposes the backing image.
func (f *MemFlash) Bytes() []byte { return f.buf }

func (f *MemFlash) ReadAt(p []byte, off uint32) (int, error) {
	if off >= uint32(len(f.buf)) {
		return 0, fmt.Errorf("flash read at %d: out of range", off)
	}
	return copy(p, f.buf[off:]), nil
}

func (f *MemFlash) WriteAt(p []byte, off uint32) (int, error) {
	if off >= uint32(len(f.buf)) {
		return 0, fmt.Errorf("flash write at %d: out of range", off)
	}
	dst := f.buf[off:]
	if len(p) > len(dst) {
		p = p[:len(dst)]
	}
	for i := range p {
		if dst[i]&p[i] != p[i] {
			return 0, fmt.Errorf("flash write at %d: %w", off+uint32(i), ErrFlashWriteRequiresErase)
		}
	}
	return copy(dst, p), nil
}

func (f *MemFlash) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if f.block == 0 || off%f.block != 0 || size%f.block != 0 || off+size > uint32(len(f.buf)) {
		return fmt.Errorf("flash erase off=%d size=%d: bad range", off, size)
	}
	for i := off; i < off+size; i++ {
		f.buf[i] = 0xFF
	}
	return nil
}
