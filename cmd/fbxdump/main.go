// Package main provides a command-line utility to dump the pull-parser
// event stream of an FBX binary file, for debugging.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/scigolib/fbxcel"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: fbxdump <file.fbx>")
		return
	}

	file := os.Args[1]
	f, err := os.Open(file)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close file: %v", err)
		}
	}()

	p, err := fbxcel.NewParser(f, fbxcel.WithWarningHandler(func(w *fbxcel.Warning) error {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w.Error())
		return nil
	}))
	if err != nil {
		log.Fatalf("Failed to start parser: %v", err)
	}

	fmt.Printf("FBX version: %s\n", p.Version())

	ctx := context.Background()
	depth := 0
	for {
		ev, err := p.NextEvent(ctx)
		if err != nil {
			log.Fatalf("Parse error: %v", err)
		}

		switch ev.Kind {
		case fbxcel.EventNodeStart:
			fmt.Printf("%sNode start: %q (attrs=%d)\n", indent(depth), ev.NodeStart.Name, ev.NodeStart.Attrs.Total())
			depth++
			if err := dumpAttrs(depth, ev.NodeStart.Attrs); err != nil {
				log.Fatalf("Attribute error: %v", err)
			}

		case fbxcel.EventNodeEnd:
			depth--
			fmt.Printf("%sNode end\n", indent(depth))

		case fbxcel.EventEndOfFile:
			fmt.Println("FBX end")
			if ev.EndOfFile.FooterErr != nil {
				fmt.Printf("footer has an error: %v\n", ev.EndOfFile.FooterErr)
				os.Exit(1)
			}
			fmt.Printf("footer: version=%s\n", ev.EndOfFile.Footer.FBXVersion)
			if p.State() == fbxcel.StateAborted {
				os.Exit(1)
			}
			return
		}
	}
}

func indent(depth int) string {
	return strings.Repeat("    ", depth)
}

func dumpAttrs(depth int, attrs *fbxcel.AttributeCursor) error {
	loader := fbxcel.NewTypeOnlyLoader()
	for {
		ok, err := attrs.LoadNext(loader)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fmt.Printf("%sAttribute: type=%s\n", indent(depth), loader.Seen)
	}
}
