// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command fstdump inspects FST waveform files from the command line.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fstfile/fst/fst"
)

var (
	formatFlag = flag.String("format", "plain", "output format: plain, json, pretty-json")
	maxSize    = flag.Int64("max-decompressed", 0, "cap in bytes on any single decompression (0 = no explicit cap; gzip output is still bounded at 1 GiB)")
	vcdIndex   = flag.Int("vcd", 0, "value-change-data block index, for dump-data")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, path := args[0], args[1]

	var buf []byte
	var err error
	if path == "-" {
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fstdump: %s\n", err)
		os.Exit(1)
	}

	opts := fst.Options{MaxDecompressedSize: *maxSize, Log: fst.NewStdLogger()}
	content, err := fst.Parse(buf, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fstdump: parse %s: %s\n", path, err)
		os.Exit(1)
	}

	if err := run(cmd, content); err != nil {
		fmt.Fprintf(os.Stderr, "fstdump: %s\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: fstdump [flags] <command> <path>

<path> may be - to read the file from standard input.

commands:
  list        same as stats
  show        stats, followed by the header when there is one
  header      decode and print the header block
  hierarchy   decode and print the signal hierarchy
  geometry    decode and print the per-signal bit widths
  blackout    decode and print blackout records
  vcd         decode and print one value-change-data block (see -vcd)
  dump-data   alias for vcd
  dump-all    decode and print every section
  stats       which singleton blocks are present, and the VCD block count

flags:
`)
	flag.PrintDefaults()
}

func run(cmd string, c *fst.Content) error {
	switch cmd {
	case "list", "stats":
		return printStats(c)
	case "header":
		return printHeader(c)
	case "hierarchy":
		return printHierarchy(c)
	case "geometry":
		return printGeometry(c)
	case "blackout":
		return printBlackout(c)
	case "vcd", "dump-data":
		return printVcd(c, *vcdIndex)
	case "show":
		return printShow(c)
	case "dump-all":
		return printAll(c)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func emit(v any) error {
	switch *formatFlag {
	case "plain":
		fmt.Printf("%+v\n", v)
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(v)
	case "pretty-json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	default:
		return fmt.Errorf("unknown format %q", *formatFlag)
	}
}

func printStats(c *fst.Content) error {
	type stats struct {
		HasHeader    bool
		HasHierarchy bool
		HasBlackout  bool
		HasGeometry  bool
		VcdBlocks    int
	}
	_, hasHeader, err := c.Header()
	if err != nil {
		return err
	}
	_, hasHierarchy, err := c.Hierarchy()
	if err != nil {
		return err
	}
	_, hasBlackout, err := c.Blackout()
	if err != nil {
		return err
	}
	_, hasGeometry, err := c.Geometry()
	if err != nil {
		return err
	}
	return emit(stats{
		HasHeader:    hasHeader,
		HasHierarchy: hasHierarchy,
		HasBlackout:  hasBlackout,
		HasGeometry:  hasGeometry,
		VcdBlocks:    len(c.Vcd),
	})
}

func printHeader(c *fst.Content) error {
	h, ok, err := c.Header()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("file has no header block")
	}
	return emit(h)
}

func printHierarchy(c *fst.Content) error {
	h, ok, err := c.Hierarchy()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("file has no hierarchy block")
	}
	return emit(h)
}

func printGeometry(c *fst.Content) error {
	g, ok, err := c.Geometry()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("file has no geometry block")
	}
	return emit(g)
}

func printBlackout(c *fst.Content) error {
	bo, ok, err := c.Blackout()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("file has no blackout block")
	}
	return emit(bo)
}

func printVcd(c *fst.Content, index int) error {
	if index < 0 || index >= len(c.Vcd) {
		return fmt.Errorf("vcd index %d out of range (file has %d)", index, len(c.Vcd))
	}
	data, err := c.Vcd[index].Data()
	if err != nil {
		return err
	}
	return emit(data)
}

func printShow(c *fst.Content) error {
	if err := printStats(c); err != nil {
		return err
	}
	if _, ok, _ := c.Header(); ok {
		if err := printHeader(c); err != nil {
			return err
		}
	}
	return nil
}

func printAll(c *fst.Content) error {
	if err := printShow(c); err != nil {
		return err
	}
	if _, ok, _ := c.Geometry(); ok {
		if err := printGeometry(c); err != nil {
			return err
		}
	}
	if _, ok, _ := c.Blackout(); ok {
		if err := printBlackout(c); err != nil {
			return err
		}
	}
	if _, ok, _ := c.Hierarchy(); ok {
		if err := printHierarchy(c); err != nil {
			return err
		}
	}
	for i := range c.Vcd {
		if err := printVcd(c, i); err != nil {
			return err
		}
	}
	return nil
}
