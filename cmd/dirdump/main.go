// Command dirdump is a thin CLI that exercises the director library
// end-to-end: it scans a RIFX-framed file's chunk table, decodes its
// key-table, builds a single cast, and prints a summary of each. It is
// peripheral glue, not part of the core decoder.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/xmedia-go/director"
	"github.com/xmedia-go/director/cast"
)

const fourCCKeyTableChunk = "KEY*"

func main() {
	minMember := flag.Int("min-member", 1, "member-number base for the cast")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.dir\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), int32(*minMember)); err != nil {
		fmt.Fprintf(os.Stderr, "dirdump: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, minMember int32) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	container, err := scanRIFX(data)
	if err != nil {
		return fmt.Errorf("scanning RIFX header: %w", err)
	}
	fmt.Printf("chunks: %d\n", container.Len())

	keyTable, castSection, err := findKeyTableAndCast(container)
	if err != nil {
		return err
	}
	fmt.Printf("key-table entries: %d\n", keyTable.Len())

	configs := []director.CastConfig{
		{ID: 1, Name: "internal", MinMember: minMember, CastSection: castSection},
	}
	movie := director.LoadMovie(container, keyTable, configs, cast.NewLoader())

	for _, c := range movie.Casts {
		printCast(c)
	}
	return nil
}

// findKeyTableAndCast locates the file's KEY* chunk and the first CASt
// table ("CAS*") chunk, both by scanning every chunk the container holds
// (this tool handles only the single-cast case; a movie with an external
// cast library would need its own CastConfig per cast, as LoadMovie
// supports).
func findKeyTableAndCast(container *director.ChunkContainer) (*director.KeyTable, director.SectionID, error) {
	var keyTableSection, castSection director.SectionID
	haveKeyTable, haveCast := false, false

	for id := director.SectionID(0); container.Has(id); id++ {
		ch, _ := container.Chunk(id)
		switch ch.ID {
		case fourCCKeyTableChunk:
			keyTableSection, haveKeyTable = id, true
		case "CAS*":
			if !haveCast {
				castSection, haveCast = id, true
			}
		}
	}

	if !haveCast {
		return nil, 0, fmt.Errorf("no CAS* (cast member table) chunk found")
	}

	if !haveKeyTable {
		return director.NewKeyTable(nil), castSection, nil
	}
	data, err := container.Get(keyTableSection)
	if err != nil {
		return nil, 0, fmt.Errorf("reading key table: %w", err)
	}
	kt, err := parseKeyTableChunk(data)
	if err != nil {
		return nil, 0, err
	}
	return kt, castSection, nil
}

func printCast(c *director.Cast) {
	fmt.Printf("cast %q (id %d): %d members\n", c.Name, c.ID, len(c.Members))
	for _, diag := range c.Diagnostics {
		fmt.Printf("  diagnostic: section %d: %v\n", diag.Section, diag.Err)
	}

	numbers := make([]int32, 0, len(c.Members))
	for number := range c.Members {
		numbers = append(numbers, number)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	for _, number := range numbers {
		m := c.Members[number]
		fmt.Printf("  member %d: kind=%s name=%q children=%d\n", number, m.Kind, m.Name, len(m.Children))
	}
}
