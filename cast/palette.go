package cast

// TranslatePaletteID converts a positive, file-stored palette reference
// (numbered against the movie's Config chunk) into the loaded member
// numbering scheme (numbered against the cast library's MCsL chunk). Only
// positive ids are translated; 0 and the negative built-in system-palette
// ids pass through unchanged. The offset (cfgMin - mcslMin) is subtracted,
// per spec.md §8's worked example: cfgMin=512, mcslMin=1 gives offset 511,
// and a stored reference of 600 resolves to runtime member 89 (600 - 511).
func TranslatePaletteID(fileID int32, cfgMin, mcslMin int32) int32 {
	if fileID <= 0 {
		return fileID
	}
	return fileID - (cfgMin - mcslMin)
}
