package pfr

import "testing"

func TestParseBitmapGlyph8BitFields(t *testing.T) {
	// byte0: format tag bit7=1, all width flags 0 (8-bit fields)
	body := []byte{
		0x80,
		8, 2, // xSize=8, ySize=2
		0xFE, 0x01, // xPos=-2, yPos=1 (as signed 8-bit)
		12, // escapement
		0b10110100,
		0b00001111,
	}
	g, ok := ParseBitmapGlyph(body, 'Q')
	if !ok {
		t.Fatal("expected successful parse")
	}
	if g.XSize != 8 || g.YSize != 2 {
		t.Errorf("size = (%d,%d), want (8,2)", g.XSize, g.YSize)
	}
	if g.XPos != -2 || g.YPos != 1 {
		t.Errorf("pos = (%d,%d), want (-2,1)", g.XPos, g.YPos)
	}
	if g.Escapement != 12 {
		t.Errorf("escapement = %d, want 12", g.Escapement)
	}
	if len(g.Bits) != 2 {
		t.Fatalf("len(Bits) = %d, want 2 (1 byte/row * 2 rows)", len(g.Bits))
	}
}

func TestParseBitmapGlyph16BitFields(t *testing.T) {
	body := []byte{
		0xF0, // tag + all three 16-bit flags set
		0x01, 0x00, // xSize = 256
		0x00, 0x01, // ySize = 1
		0xFF, 0xFF, // xPos = -1
		0x00, 0x05, // yPos = 5
		0x01, 0x00, // escapement = 256
	}
	rowBytes := 256 / 8
	body = append(body, make([]byte, rowBytes)...)

	g, ok := ParseBitmapGlyph(body, 1)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if g.XSize != 256 || g.YSize != 1 {
		t.Errorf("size = (%d,%d), want (256,1)", g.XSize, g.YSize)
	}
	if g.XPos != -1 {
		t.Errorf("XPos = %d, want -1", g.XPos)
	}
	if g.Escapement != 256 {
		t.Errorf("Escapement = %d, want 256", g.Escapement)
	}
	if len(g.Bits) != rowBytes {
		t.Errorf("len(Bits) = %d, want %d", len(g.Bits), rowBytes)
	}
}

func TestParseBitmapGlyphTooShort(t *testing.T) {
	if _, ok := ParseBitmapGlyph([]byte{0x80}, 1); ok {
		t.Fatal("expected failure for a body shorter than the fixed header")
	}
}
