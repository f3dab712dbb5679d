package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
)

const nodesPkg = "github.com/SferaDev/kysely/nodes"

// Generator emits one Go file per table plus a shared tables file.
type Generator struct {
	schema  *Schema
	outDir  string
	pkg     string
	workers int
}

// NewGenerator creates a generator writing to outDir. The output package name
// comes from the schema, falling back to the directory base name.
func NewGenerator(s *Schema, outDir string) *Generator {
	pkg := s.Package
	if pkg == "" {
		pkg = filepath.Base(outDir)
	}
	return &Generator{
		schema:  s,
		outDir:  outDir,
		pkg:     pkg,
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithWorkers caps the number of files generated concurrently.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithPackage overrides the output package name.
func (g *Generator) WithPackage(pkg string) *Generator {
	if pkg != "" {
		g.pkg = pkg
	}
	return g
}

// Generate writes every table file in parallel plus the shared tables file.
func (g *Generator) Generate(ctx context.Context) error {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	errg, _ := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)

	for _, t := range g.schema.Tables {
		errg.Go(func() error {
			return g.writeFile(g.tableFile(t), fileName(t.Name))
		})
	}
	errg.Go(func() error {
		return g.writeFile(g.tablesFile(), "tables.go")
	})
	return errg.Wait()
}

func (g *Generator) newFile() *jen.File {
	f := jen.NewFile(g.pkg)
	f.HeaderComment("Code generated by kyselygen. DO NOT EDIT.")
	return f
}

// tableFile builds the source for one table: the descriptor struct, its
// shared value, the column-name lists and the typed row struct.
func (g *Generator) tableFile(t Table) *jen.File {
	f := g.newFile()

	f.Commentf("%s describes the columns of the %q table.", structName(t.Name), t.Name)
	f.Type().Id(structName(t.Name)).StructFunc(func(fields *jen.Group) {
		for _, c := range t.Columns {
			fields.Id(fieldName(c.Name)).Op("*").Qual(nodesPkg, "ColumnNode")
		}
	})

	f.Commentf("%s is the shared %q descriptor.", varName(t.Name), t.Name)
	f.Var().Id(varName(t.Name)).Op("=").Id(structName(t.Name)).Values(jen.DictFunc(func(d jen.Dict) {
		for _, c := range t.Columns {
			d[jen.Id(fieldName(c.Name))] = jen.Qual(nodesPkg, "Column").Call(jen.Lit(c.Name))
		}
	}))

	f.Commentf("%sColumns lists the columns of %q in declaration order.", varName(t.Name), t.Name)
	f.Var().Id(varName(t.Name) + "Columns").Op("=").Index().String().ValuesFunc(func(vals *jen.Group) {
		for _, c := range t.Columns {
			vals.Lit(c.Name)
		}
	})

	if generated := t.GeneratedColumns(); len(generated) > 0 {
		f.Commentf("%sGenerated lists the database-generated columns of %q. Inserts that", varName(t.Name), t.Name)
		f.Comment("bind a full column list should use nodes.Generated for these.")
		f.Var().Id(varName(t.Name) + "Generated").Op("=").Index().String().ValuesFunc(func(vals *jen.Group) {
			for _, name := range generated {
				vals.Lit(name)
			}
		})
	}

	f.Commentf("%s holds one scanned %q row.", rowName(t.Name), t.Name)
	f.Type().Id(rowName(t.Name)).StructFunc(func(fields *jen.Group) {
		for _, c := range t.Columns {
			fields.Id(fieldName(c.Name)).Add(goType(c)).Tag(map[string]string{"db": c.Name})
		}
	})

	return f
}

// tablesFile builds the shared file naming every table in the schema.
func (g *Generator) tablesFile() *jen.File {
	f := g.newFile()
	f.Comment("TableNames maps descriptor names to their table names.")
	f.Var().Id("TableNames").Op("=").StructFunc(func(fields *jen.Group) {
		for _, t := range g.schema.Tables {
			fields.Id(varName(t.Name)).String()
		}
	}).Values(jen.DictFunc(func(d jen.Dict) {
		for _, t := range g.schema.Tables {
			d[jen.Id(varName(t.Name))] = jen.Lit(t.Name)
		}
	}))
	return f
}

// goType maps a column's declared type to Go source, honoring Nullable with a
// pointer. Builtins use a single identifier so struct fields render without
// stray whitespace.
func goType(c Column) jen.Code {
	t := columnTypes[c.Type]
	if t.pkg == "" {
		if c.Nullable {
			return jen.Id("*" + t.ident)
		}
		return jen.Id(t.ident)
	}
	if c.Nullable {
		return jen.Op("*").Qual(t.pkg, t.ident)
	}
	return jen.Qual(t.pkg, t.ident)
}

// writeFile renders a jennifer file straight to disk.
func (g *Generator) writeFile(f *jen.File, name string) error {
	out, err := os.Create(filepath.Join(g.outDir, name))
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	defer out.Close()
	if err := f.Render(out); err != nil {
		return fmt.Errorf("gen: render %s: %w", name, err)
	}
	return nil
}
