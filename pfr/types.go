// Package pfr decodes PFR1 (Portable Font Resource) font data embedded in an
// XMED chunk: the fixed-size header, the logical and physical font
// directories, the delta-encoded character table, and the glyph program
// section (outline and bitmap glyphs, with stroke/bold synthesis and
// compound-glyph resolution).
package pfr

// Header is the fixed-layout PFR file header (spec.md's PfrHeader).
type Header struct {
	Version uint8 // 1 for "PFR1"; this package only supports version 1

	Signature    uint32
	HeaderSig2   uint16
	HeaderSize   uint16

	LogFontDirSize   uint32
	LogFontDirOffset uint32

	LogFontMaxSize     uint16
	LogFontSectionSize uint32
	LogFontSectionOffset uint32

	PhysFontMaxSize      uint16
	PhysFontSectionSize  uint32
	PhysFontSectionOffset uint32

	GpsMaxSize      uint16
	GpsSectionSize  uint32
	GpsSectionOffset uint32

	MaxBlueValues uint8
	MaxXOrus      uint8
	MaxYOrus      uint8

	PhysFontMaxSizeHigh uint8

	Flags           uint8
	InvertBitmap    bool
	BlackPixel      bool

	NPhysFonts uint16
	MaxChars   uint16
}

// LogicalFontRecord is one entry of the logical font directory: a font
// matrix plus a pointer to the physical font it maps to. line_join_type==0
// ("miter") consumes an extra 24-bit field whose value this package
// discards, matching the reference decoder: no miter limit is modeled.
type LogicalFontRecord struct {
	FontMatrix [4]int32
	Size       uint32
	Offset     uint32
}

// Metrics summarizes the physical font's bounding box and em resolution,
// used to scale outlines to a target pixel size.
type Metrics struct {
	StdVW, StdHW           int16
	XMin, YMin, XMax, YMax int16
	UnitsPerEm             uint16
	Ascender, Descender    int16
}

// PhysicalFontRecord is the decoded physical font section: bounding box,
// outline/metrics resolution, extra items, private (vendor) records, blue
// zones, stroke-synthesis fallback tables, and the character table.
type PhysicalFontRecord struct {
	OutlineResolution uint16
	MetricsResolution uint16

	XMin, YMin, XMax, YMax int16

	Flags          uint8
	TwoByteCharCode bool
	StandardSetWidth int16

	HasBitmapSection       bool
	BitmapSizeTableOffset  uint32

	FontID string

	HasExtraType5       bool
	ExtraType5Word36    int16
	ExtraType5Word37    int16
	ExtraType5LineSpacing int16
	ExtraType5Word39    int16

	PrivateFlags492   uint8
	PrivateMode716    uint8
	PrivateType2Byte28 uint8
	PrivateType2Byte29 uint8

	BlueValues []int16
	BlueFuzz   uint8
	BlueScale  uint8

	Metrics Metrics

	MaxXOrus uint8
	MaxYOrus uint8

	StrokeTablesInitialized bool
	StrokeXKeys, StrokeYKeys     []int16
	StrokeXScales, StrokeYScales []int16
	StrokeXValues, StrokeYValues []int32

	CharRecords []CharacterRecord
}

// CharacterRecord is one delta-decoded entry of the physical font's
// character table: a character code, advance width, and the byte range of
// its glyph program within the GPS section.
type CharacterRecord struct {
	CharCode uint32
	SetWidth uint16
	GpsSize  uint32
	GpsOffset uint32
}

// PathCmd is one drawing command of a flattened glyph outline. Curve
// commands (Quad/Cube) carry all of their own control points so a
// contour's Commands slice can be walked without external state, matching
// the raster package's expectations (see raster.BlitOutlineGlyph).
type PathCmd struct {
	Op             PathOp
	X, Y           float32
	CX1, CY1       float32 // Quad control point, or Cube's first control point
	CX2, CY2       float32 // Cube's second control point
}

// PathOp tags a PathCmd's drawing operation.
type PathOp int

const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
	OpClose
)

// Contour is one closed (or open, for stroke ribbons) sequence of path
// commands.
type Contour struct {
	Commands []PathCmd
}

// OutlineGlyph is a vector glyph: one or more contours in font design
// units (orus), plus the advance width used for layout.
type OutlineGlyph struct {
	CharCode uint32
	SetWidth float32
	Contours []Contour
}

// BitmapGlyph is a pre-rendered monochrome glyph bitmap, used when the
// physical font carries a bitmap section sized for the caller's target em.
// The glyph's outline is still parsed alongside it.
type BitmapGlyph struct {
	CharCode        uint32
	SetWidth        uint16
	XSize, YSize    uint16
	XPos, YPos      int16
	Escapement      uint16
	// Bits is packed 1-bit-per-pixel, MSB first, each row byte-aligned,
	// YSize rows of ceil(XSize/8) bytes.
	Bits []byte
}

// Font is the fully decoded PFR1 font: the header, logical/physical font
// records, and every glyph keyed by its low byte (the character set this
// decoder targets is limited to 0x00-0xFF, matching the legacy runtime's
// single-byte Mac-Roman glyph cache).
type Font struct {
	Header       Header
	LogicalFonts []LogicalFontRecord
	Physical     PhysicalFontRecord
	Name         string

	Glyphs       map[uint8]OutlineGlyph
	BitmapGlyphs map[uint8]BitmapGlyph
}
