package pfr

// Decode parses a complete PFR1 font from raw XMED chunk data, rasterizing
// coordinates for no particular target size. Equivalent to calling
// DecodeForTarget(data, 0).
func Decode(data []byte) (*Font, error) {
	return DecodeForTarget(data, 0)
}

// DecodeForTarget parses a PFR1 font, preferring a bitmap glyph whose
// pixel size is close to targetEmPx when the font carries a bitmap
// section; pass 0 to keep coordinates in outline-resolution units
// without any bitmap/outline size-matching.
func DecodeForTarget(data []byte, targetEmPx int) (*Font, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	font := &Font{
		Header:       header,
		Glyphs:       make(map[uint8]OutlineGlyph),
		BitmapGlyphs: make(map[uint8]BitmapGlyph),
	}

	font.LogicalFonts, err = ParseLogicalFontDirectory(data, header)
	if err != nil {
		return nil, err
	}

	physOffset := int(header.PhysFontSectionOffset)
	physEnd := len(data)
	if physEndFromSize := physOffset + int(header.PhysFontSectionSize); physEndFromSize > physOffset && physEndFromSize <= len(data) {
		if physEndFromSize < physEnd {
			physEnd = physEndFromSize
		}
	}
	gpsOffset := int(header.GpsSectionOffset)
	if gpsOffset > physOffset && gpsOffset <= len(data) && gpsOffset < physEnd {
		physEnd = gpsOffset
	}

	font.Physical, err = ParsePhysicalFont(data, physOffset, physEnd, header.MaxChars)
	if err != nil {
		return nil, err
	}
	font.Physical.MaxXOrus = header.MaxXOrus
	font.Physical.MaxYOrus = header.MaxYOrus
	InitStrokeTablesFallback(&font.Physical)

	if font.Physical.FontID != "" {
		font.Name = font.Physical.FontID
	} else if name, ok := extractFontName(data); ok {
		font.Name = name
	} else {
		font.Name = "PFR1_Font"
	}

	gpsSize := int(header.GpsSectionSize)
	if gpsOffset+gpsSize <= len(data) {
		gpsData := data[gpsOffset : gpsOffset+gpsSize]
		decodeGlyphProgramSection(font, gpsData, targetEmPx)
	}

	applyCaseFoldingFallback(font)

	return font, nil
}

func decodeGlyphProgramSection(font *Font, gpsData []byte, targetEmPx int) {
	resolved := make(map[uint32][]Contour)
	depth := 0
	var resolve componentResolver
	resolve = func(offset uint32) ([]Contour, bool) {
		if cs, ok := resolved[offset]; ok {
			return cs, true
		}
		start := int(offset)
		for _, cr := range font.Physical.CharRecords {
			if cr.GpsOffset != offset || cr.GpsSize <= 1 {
				continue
			}
			end := start + int(cr.GpsSize)
			if end > len(gpsData) {
				continue
			}
			depth++
			g := parseOutlineBodyDepth(gpsData[start:end], cr.CharCode, cr.SetWidth, resolve, depth)
			depth--
			resolved[offset] = g.Contours
			return g.Contours, true
		}
		return nil, false
	}

	for _, cr := range font.Physical.CharRecords {
		charCode := cr.CharCode
		charByte := uint8(charCode)
		start := int(cr.GpsOffset)
		size := int(cr.GpsSize)

		if size <= 1 {
			if charCode <= 0xFF {
				font.Glyphs[charByte] = OutlineGlyph{CharCode: charCode, SetWidth: float32(cr.SetWidth)}
			}
			continue
		}
		if start+size > len(gpsData) {
			continue
		}

		glyphData := gpsData[start : start+size]

		if glyphData[0]&glyphFormatBitmap != 0 && font.Physical.HasBitmapSection {
			if bmp, ok := ParseBitmapGlyph(glyphData, charCode); ok {
				if cr.SetWidth > 0 {
					bmp.SetWidth = cr.SetWidth
				}
				if bitmapMatchesTarget(bmp.YSize, targetEmPx) && charCode <= 0xFF {
					font.BitmapGlyphs[charByte] = bmp
				}
			}
		}

		outline := parseOutlineBodyDepth(glyphData, charCode, cr.SetWidth, resolve, 0)
		if charCode <= 0xFF {
			font.Glyphs[charByte] = outline
		}
	}
}

// bitmapMatchesTarget reports whether a bitmap glyph's pixel height is
// within 2x of the requested em size; wildly mismatched bitmaps are for a
// different point size and should fall back to the outline.
func bitmapMatchesTarget(bmpHeight uint16, targetEmPx int) bool {
	if targetEmPx <= 0 {
		return true
	}
	targetH := uint16(targetEmPx)
	return bmpHeight <= targetH*2 && bmpHeight >= targetH/2
}

// applyCaseFoldingFallback copies an uppercase glyph's contours into any
// lowercase slot that decoded with no contours: legacy titles frequently
// ship PFR1 fonts that only bothered to author uppercase glyphs, relying
// on the runtime to render capitals for lowercase text.
func applyCaseFoldingFallback(font *Font) {
	for lc := byte('a'); lc <= 'z'; lc++ {
		uc := lc - 32
		g, has := font.Glyphs[lc]
		if has && len(g.Contours) > 0 {
			continue
		}
		ucGlyph, ok := font.Glyphs[uc]
		if !ok || len(ucGlyph.Contours) == 0 {
			continue
		}
		fallback := ucGlyph
		fallback.CharCode = uint32(lc)
		font.Glyphs[lc] = fallback
	}
}

// extractFontName scans for the first run of 4+ name characters (letters,
// digits, space, '*', '_', '-') that starts with a letter, in the raw PFR
// data, and returns it with trailing spaces dropped; runs starting in the
// final 20 bytes are not considered. Used when the physical font record
// carries no FontID extra item.
func extractFontName(data []byte) (string, bool) {
	if len(data) < 20 {
		return "", false
	}
	for i := 0; i < len(data)-20; i++ {
		if !isASCIIAlpha(data[i]) {
			continue
		}
		j := i
		for j < len(data) && data[j] != 0 && isNameByte(data[j]) {
			j++
		}
		end := j
		for end > i && data[end-1] == ' ' {
			end--
		}
		if end-i > 3 {
			return string(data[i:end]), true
		}
		i = j
	}
	return "", false
}

func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameByte(b byte) bool {
	return isASCIIAlpha(b) || (b >= '0' && b <= '9') || b == ' ' || b == '*' || b == '_' || b == '-'
}
