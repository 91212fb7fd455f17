// Package main provides a command-line utility to inspect an on-disk
// BasicDAG import file: its decoded header, and optionally a raw hex
// dump of a byte range for debugging the file's layout directly.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/naomijub/voxeldag"
	"github.com/naomijub/voxeldag/internal/utils"
)

func main() {
	dumpOffset := flag.Int64("dump-offset", -1, "If set, hex-dump raw bytes starting at this file offset instead of decoding")
	dumpLength := flag.Int("dump-length", 128, "Number of bytes to hex-dump when -dump-offset is set")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: voxeldag-inspect [flags] <file.basicdag>")
		flag.PrintDefaults()
		return
	}

	file := args[0]
	f, err := os.Open(file)
	if err != nil {
		log.Fatalf("opening file: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("closing file: %v", err)
		}
	}()

	if *dumpOffset >= 0 {
		hexDump(f, file, *dumpOffset, *dumpLength)
		return
	}

	dag, err := voxeldag.LoadBasicDAG(f)
	if err != nil {
		log.Fatalf("decoding BasicDAG: %v", err)
	}
	fmt.Printf("%s: levels=%d nodes=%d\n", file, dag.Levels, len(dag.Pool))
}

func hexDump(f *os.File, name string, offset int64, length int) {
	info, err := f.Stat()
	if err != nil {
		log.Fatalf("stat: %v", err)
	}
	fileSize := info.Size()

	if offset >= fileSize {
		log.Fatalf("invalid offset: %d (file size: %d)", offset, fileSize)
	}
	if length < 1 {
		log.Fatalf("invalid length: %d", length)
	}

	remaining := fileSize - offset
	readLength := int64(length)
	if readLength > remaining {
		readLength = remaining
		fmt.Printf("warning: requested length %d exceeds available bytes (%d), dumping %d bytes\n",
			length, remaining, readLength)
	}

	buf := utils.GetBuffer(int(readLength))
	defer utils.ReleaseBuffer(buf)
	n, err := f.ReadAt(buf, offset)
	if err != nil {
		log.Printf("read error: %v (read %d of %d bytes)", err, n, readLength)
	}

	fmt.Printf("dumping %d bytes at offset 0x%x (%d) of %s (size: %d bytes):\n",
		n, offset, offset, name, fileSize)

	for i := 0; i < n; i += 16 {
		end := i + 16
		if end > n {
			end = n
		}
		chunk := buf[i:end]

		fmt.Printf("%08x: ", offset+int64(i))
		for j := 0; j < 16; j++ {
			if j < len(chunk) {
				fmt.Printf("%02x ", chunk[j])
			} else {
				fmt.Print("   ")
			}
			if j == 7 {
				fmt.Print(" ")
			}
		}
		fmt.Print(" |")

		for _, b := range chunk {
			if b >= 32 && b <= 126 {
				fmt.Printf("%c", b)
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println("|")
	}
}
