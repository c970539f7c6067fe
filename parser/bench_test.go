package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/luthersystems/lcalc/lcalctest"
	"github.com/luthersystems/lcalc/parser"
	"github.com/luthersystems/lcalc/scope"
)

// benchProgram defines the church numerals up to n.
func benchProgram(n int) string {
	var b strings.Builder
	b.WriteString(lcalctest.ChurchPrelude)
	for k := 1; k <= n; k++ {
		fmt.Fprintf(&b, "(define n%s %s)\n", strings.Repeat("x", k), lcalctest.Church(k))
	}
	return b.String()
}

func BenchmarkReaders(b *testing.B) {
	source := benchProgram(50)
	for _, name := range []string{parser.ReaderRD, parser.ReaderParsec} {
		r, err := parser.NewReader(name)
		if err != nil {
			b.Fatalf("Failed to create reader: %v", err)
		}
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(source)))
			for i := 0; i < b.N; i++ {
				_, err := r.Read("bench", strings.NewReader(source), scope.NewGlobal())
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
