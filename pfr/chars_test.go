package pfr

import (
	"testing"

	"github.com/xmedia-go/director/bitstream"
)

// A flag byte of 0x00 selects mode 0 for every field: char code just
// increments by one, set width is unchanged from the running state, gps
// size is overwritten by one literal byte, and gps offset is sequential
// (previous offset plus previous size).
func TestParseCharacterRecordsFlagZero(t *testing.T) {
	data := []byte{
		0x00, 0x05, // record 0: flags=0x00, gpsSize literal byte = 5
		0x00, 0x07, // record 1: flags=0x00, gpsSize literal byte = 7
	}
	r := bitstream.New(data)
	recs := parseCharacterRecordsPFR1(r, 100, 2)
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].CharCode != 0 {
		t.Errorf("recs[0].CharCode = %d, want 0", recs[0].CharCode)
	}
	if recs[1].CharCode != 1 {
		t.Errorf("recs[1].CharCode = %d, want 1", recs[1].CharCode)
	}
	if recs[0].SetWidth != 100 || recs[1].SetWidth != 100 {
		t.Errorf("SetWidth should remain at standardSetWidth with mode 0, got %d, %d", recs[0].SetWidth, recs[1].SetWidth)
	}
	if recs[0].GpsSize != 5 {
		t.Errorf("recs[0].GpsSize = %d, want 5", recs[0].GpsSize)
	}
	// record 1's gpsOffset should be sequential: prevOffset(0) + prevSize(5) = 5
	if recs[1].GpsOffset != 5 {
		t.Errorf("recs[1].GpsOffset = %d, want 5 (sequential)", recs[1].GpsOffset)
	}
}

func TestParseCharacterRecordsCharCodeDeltaModes(t *testing.T) {
	data := []byte{
		0x01, 0x0A, 0x00, // flags mode1 (u8 delta=0x0A), gpsSize literal=0
		0x02, 0x00, 0x14, 0x00, // flags mode2 (u16 delta=0x0014), gpsSize literal=0
	}
	r := bitstream.New(data)
	recs := parseCharacterRecordsPFR1(r, 0, 2)
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	// charCode starts at -1, +1 unconditional, +10 from mode1 delta = 10
	if recs[0].CharCode != 10 {
		t.Errorf("recs[0].CharCode = %d, want 10", recs[0].CharCode)
	}
	// next: +1 then +0x14(20) = 10+1+20 = 31
	if recs[1].CharCode != 31 {
		t.Errorf("recs[1].CharCode = %d, want 31", recs[1].CharCode)
	}
}

func TestParseCharacterRecordsEmpty(t *testing.T) {
	r := bitstream.New(nil)
	if recs := parseCharacterRecordsPFR1(r, 0, 0); recs != nil {
		t.Fatalf("expected nil for 0 characters, got %v", recs)
	}
}
