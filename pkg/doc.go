// Package pkg provides the core libraries of macrofor, a Fortran source
// generator.
//
// # Overview
//
// macrofor assembles Fortran statements and blocks as text, numbers their
// jump targets and lays every line out under the rules of either Fortran 77
// fixed form or Fortran 90 free form. The pkg directory is organized into:
//
//  1. [fortran/style] - Dialect profiles (comment marker, line budget, indent)
//  2. [fortran/label] - Placeholder allocation and label resolution
//  3. [fortran/fragment] - Statement and block builders
//  4. [fortran/reflow] - Column layout and continuation lines
//  5. [pipeline] - Orchestration (build → resolve → reflow → write)
//  6. [program] - Declarative TOML/YAML program descriptions
//  7. [io] - Output encodings and atomic file replacement
//
// # Architecture
//
// Data flows strictly one way through a generation run:
//
//	fragment builders (mint __LABEL_n__ placeholders)
//	         ↓
//	    concatenated text
//	         ↓
//	    [fortran/label] (100, 200, ... in first-appearance order)
//	         ↓
//	    [fortran/reflow] (columns, continuation markers)
//	         ↓
//	    [io] (line endings, encoding, atomic write)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil)
//	_, err := runner.Execute(ctx, "build/zero.f", func(b *fragment.Builder) ([]string, error) {
//	    return []string{
//	        b.ProgramBlock("zero",
//	            b.Declare("real", "v(100)"),
//	            b.DoBlock("i", "1", "100", b.Assign("v(i)", "0.0")),
//	        ),
//	    }, nil
//	}, pipeline.Options{Style: "fixed"})
//
// # Supporting Packages
//
// [errors] - Structured error codes (INVALID_DIALECT, OUTPUT_WRITE_FAILURE, ...)
//
// [observability] - Hooks for run and write events
//
// [buildinfo] - Version information injected at build time
//
// [fortran/style]: github.com/matzehuels/macrofor/pkg/fortran/style
// [fortran/label]: github.com/matzehuels/macrofor/pkg/fortran/label
// [fortran/fragment]: github.com/matzehuels/macrofor/pkg/fortran/fragment
// [fortran/reflow]: github.com/matzehuels/macrofor/pkg/fortran/reflow
// [pipeline]: github.com/matzehuels/macrofor/pkg/pipeline
// [program]: github.com/matzehuels/macrofor/pkg/program
// [io]: github.com/matzehuels/macrofor/pkg/io
// [errors]: github.com/matzehuels/macrofor/pkg/errors
// [observability]: github.com/matzehuels/macrofor/pkg/observability
// [buildinfo]: github.com/matzehuels/macrofor/pkg/buildinfo
package pkg
