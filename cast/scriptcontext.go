package cast

import "github.com/xmedia-go/director"

// lctxEntrySize is the width of one script-slot entry in the self-designed
// Lctx/LctX layout below.
const lctxEntrySize = 4

// resolveScriptContext finds the cast's Lctx/LctX chunk among castSection's
// key-table children, decodes it, and populates cast.ScriptContext,
// cast.ScriptContextVariant, and cast.ScriptContextChildSectionIDs. A cast
// with no script context is left with ScriptContext == nil; that is not an
// error. Grounded on cast.rs's CastDef::from script-context handling: the
// name table and every walked script section are recorded separately from
// the key-table since they are not Lctx's key-table children.
func resolveScriptContext(container *director.ChunkContainer, kt *director.KeyTable, castSection director.SectionID, cast *director.Cast) {
	entry, ok := findScriptContextEntry(kt, castSection)
	if !ok {
		return
	}

	data, err := container.Get(entry.Child)
	if err != nil {
		cast.Diagnostics = append(cast.Diagnostics, director.Diagnostic{Section: entry.Child, Err: err})
		return
	}

	lnamSection, scriptSections, err := parseScriptContextChunk(data)
	if err != nil {
		cast.Diagnostics = append(cast.Diagnostics, director.Diagnostic{Section: entry.Child, Err: err})
		return
	}

	cast.ScriptContextVariant = entry.Code
	cast.ScriptContextChildSectionIDs = make(map[director.SectionID]struct{})

	scripts := make(map[int]director.ScriptChunk)
	var names []string

	if lnamSection > 0 {
		cast.ScriptContextChildSectionIDs[lnamSection] = struct{}{}
		if nameData, err := container.Get(lnamSection); err == nil {
			names = parseNameTableChunk(nameData)
		} else {
			cast.Diagnostics = append(cast.Diagnostics, director.Diagnostic{Section: lnamSection, Err: err})
		}
	}

	for i, sec := range scriptSections {
		if sec <= 0 {
			continue
		}
		cast.ScriptContextChildSectionIDs[sec] = struct{}{}
		scriptData, err := container.Get(sec)
		if err != nil {
			cast.Diagnostics = append(cast.Diagnostics, director.Diagnostic{Section: sec, Err: err})
			continue
		}
		scripts[i+1] = director.ScriptChunk{Section: sec, Data: scriptData}
	}

	cast.ScriptContext = &director.ScriptContext{Scripts: scripts, Names: names}
}

// findScriptContextEntry searches castSection's key-table children for the
// Lctx or LctX entry — the two on-disk variants observed for the
// script-context chunk, with LctX being the newer, wide-offset form.
func findScriptContextEntry(kt *director.KeyTable, castSection director.SectionID) (director.KeyTableEntry, bool) {
	for _, e := range kt.ChildrenOf(castSection) {
		if e.Code == director.FourCCScriptContext || e.Code == director.FourCCScriptContext2 {
			return e, true
		}
	}
	return director.KeyTableEntry{}, false
}

// parseScriptContextChunk decodes an Lctx/LctX chunk. The real on-disk
// layout was filtered from the retrieval pack (only its consumption in
// cast.rs survived: lnam_section_id plus one section id per script slot),
// so this is a self-designed layout shaped to carry exactly those fields:
//
//	offset 0x00: u32 entryCount
//	offset 0x04: i32 lnamSectionID   (<= 0 means absent)
//	offset 0x08: entryCount x i32 scriptSectionID (<= 0 means empty slot)
func parseScriptContextChunk(data []byte) (lnamSection director.SectionID, scriptSections []director.SectionID, err error) {
	if len(data) < 8 {
		return 0, nil, ErrMalformedScriptContext
	}
	entryCount := int(uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3]))
	lnam := int32(uint32(data[4])<<24 | uint32(data[5])<<16 | uint32(data[6])<<8 | uint32(data[7]))

	need := 8 + entryCount*lctxEntrySize
	if entryCount < 0 || need > len(data) {
		return 0, nil, ErrMalformedScriptContext
	}

	scriptSections = make([]director.SectionID, entryCount)
	for i := 0; i < entryCount; i++ {
		off := 8 + i*lctxEntrySize
		v := int32(uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3]))
		scriptSections[i] = director.SectionID(v)
	}
	return director.SectionID(lnam), scriptSections, nil
}

// parseNameTableChunk decodes an Lnam chunk. Also self-designed: a 16-bit
// count followed by that many Pascal-style (length-byte-prefixed) strings.
func parseNameTableChunk(data []byte) []string {
	if len(data) < 2 {
		return nil
	}
	count := int(uint16(data[0])<<8 | uint16(data[1]))
	names := make([]string, 0, count)
	pos := 2
	for i := 0; i < count && pos < len(data); i++ {
		n := int(data[pos])
		pos++
		end := pos + n
		if end > len(data) {
			break
		}
		names = append(names, decodeMacRoman(data[pos:end]))
		pos = end
	}
	return names
}
