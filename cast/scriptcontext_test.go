package cast

import (
	"testing"

	"github.com/xmedia-go/director"
)

func u32be(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func i32be(v int32) []byte { return u32be(uint32(v)) }

func buildLctx(lnamSection int32, scriptSections []int32) []byte {
	out := u32be(uint32(len(scriptSections)))
	out = append(out, i32be(lnamSection)...)
	for _, s := range scriptSections {
		out = append(out, i32be(s)...)
	}
	return out
}

func buildLnam(names []string) []byte {
	out := []byte{byte(len(names) >> 8), byte(len(names))}
	for _, n := range names {
		out = append(out, byte(len(n)))
		out = append(out, []byte(n)...)
	}
	return out
}

func TestParseScriptContextChunkRoundTrip(t *testing.T) {
	data := buildLctx(7, []int32{10, -1, 12})
	lnam, scripts, err := parseScriptContextChunk(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lnam != 7 {
		t.Errorf("lnam = %d, want 7", lnam)
	}
	want := []director.SectionID{10, -1, 12}
	if len(scripts) != len(want) {
		t.Fatalf("len(scripts) = %d, want %d", len(scripts), len(want))
	}
	for i, w := range want {
		if scripts[i] != w {
			t.Errorf("scripts[%d] = %d, want %d", i, scripts[i], w)
		}
	}
}

func TestParseScriptContextChunkTooShort(t *testing.T) {
	if _, _, err := parseScriptContextChunk([]byte{1, 2, 3}); err != ErrMalformedScriptContext {
		t.Fatalf("err = %v, want ErrMalformedScriptContext", err)
	}
}

func TestParseScriptContextChunkDeclaredCountOverruns(t *testing.T) {
	data := u32be(100)
	data = append(data, i32be(0)...)
	if _, _, err := parseScriptContextChunk(data); err != ErrMalformedScriptContext {
		t.Fatalf("err = %v, want ErrMalformedScriptContext", err)
	}
}

func TestParseNameTableChunk(t *testing.T) {
	data := buildLnam([]string{"go", "stop", "reset"})
	names := parseNameTableChunk(data)
	if len(names) != 3 || names[0] != "go" || names[1] != "stop" || names[2] != "reset" {
		t.Errorf("names = %v", names)
	}
}

func TestResolveScriptContextPopulatesCastAndChildIDs(t *testing.T) {
	lnamSection := director.SectionID(200)
	scriptSection := director.SectionID(201)
	lctxSection := director.SectionID(100)
	castSection := director.SectionID(1)

	lctxData := buildLctx(int32(lnamSection), []int32{int32(scriptSection)})
	lnamData := buildLnam([]string{"go"})
	scriptData := []byte{0xDE, 0xAD}

	container := director.NewChunkContainer(concatChunkData(
		chunkBytes{lctxSection, lctxData},
		chunkBytes{lnamSection, lnamData},
		chunkBytes{scriptSection, scriptData},
	), []director.Chunk{
		{ID: director.FourCCScriptContext, Section: lctxSection, Start: 0, End: int64(len(lctxData))},
		{ID: director.FourCCScriptNames, Section: lnamSection, Start: int64(len(lctxData)), End: int64(len(lctxData) + len(lnamData))},
		{ID: director.FourCCScript, Section: scriptSection, Start: int64(len(lctxData) + len(lnamData)), End: int64(len(lctxData) + len(lnamData) + len(scriptData))},
	})

	kt := director.NewKeyTable([]director.KeyTableEntry{
		{Owner: castSection, Child: lctxSection, Code: director.FourCCScriptContext},
	})

	c := &director.Cast{}
	resolveScriptContext(container, kt, castSection, c)

	if c.ScriptContext == nil {
		t.Fatal("expected a resolved script context")
	}
	if c.ScriptContextVariant != director.FourCCScriptContext {
		t.Errorf("variant = %v, want Lctx", c.ScriptContextVariant)
	}
	if len(c.ScriptContext.Names) != 1 || c.ScriptContext.Names[0] != "go" {
		t.Errorf("names = %v", c.ScriptContext.Names)
	}
	script, ok := c.ScriptContext.Scripts[1]
	if !ok {
		t.Fatal("expected script at 1-based slot 1")
	}
	if string(script.Data) != string(scriptData) {
		t.Errorf("script data mismatch")
	}
	if _, ok := c.ScriptContextChildSectionIDs[lnamSection]; !ok {
		t.Error("expected lnam section tracked in ScriptContextChildSectionIDs")
	}
	if _, ok := c.ScriptContextChildSectionIDs[scriptSection]; !ok {
		t.Error("expected script section tracked in ScriptContextChildSectionIDs")
	}
}

type chunkBytes struct {
	section director.SectionID
	data    []byte
}

func concatChunkData(chunks ...chunkBytes) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c.data...)
	}
	return out
}
