// Command kyselygen generates typed table descriptors from a YAML schema.
//
// Usage:
//
//	kyselygen -schema schema.yaml -out ./db [-pkg db] [-workers 4]
//
// For every table in the schema it writes one Go file with a descriptor
// struct, column references and a typed row struct, plus a shared tables.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SferaDev/kysely/gen"
)

func main() {
	var (
		schemaPath = flag.String("schema", "schema.yaml", "path to the YAML schema descriptor")
		outDir     = flag.String("out", ".", "directory for the generated files")
		pkg        = flag.String("pkg", "", "package name for the generated files (default: schema package or out dir name)")
		workers    = flag.Int("workers", 0, "max files generated concurrently (default: GOMAXPROCS)")
	)
	flag.Parse()

	schema, err := gen.Load(*schemaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	g := gen.NewGenerator(schema, *outDir).WithPackage(*pkg).WithWorkers(*workers)
	if err := g.Generate(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("generated %d table descriptors in %s\n", len(schema.Tables), *outDir)
}
