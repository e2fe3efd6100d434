package hal

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// lit reports whether an RGB565 pixel reads as "on" on a 1-bit panel.
func lit(p uint16) bool {
	r, g, b := rgb888From565(p)
	return uint32(r)*299+uint32(g)*587+uint32(b)*114 >= 128*1000
}

// pixelAt reads a little-endian RGB565 pixel from a framebuffer buffer.
func pixelAt(buf []byte, stride, x, y int) uint16 {
	i := y*stride + x*2
	if i < 0 || i+1 >= len(buf) {
		return 0
	}
	return uint16(buf[i]) | uint16(buf[i+1])<<8
}
