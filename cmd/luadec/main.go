package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"luadec/internal/bytecode"
	"luadec/internal/errors"
	"luadec/internal/lifter"
	"luadec/internal/ssa"
	"luadec/internal/structurer"
	"luadec/internal/typeinfer"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: luadec [-luau] <file.json>")
		os.Exit(1)
	}

	luau := false
	path := os.Args[1]
	if path == "-luau" {
		luau = true
		if len(os.Args) < 3 {
			fmt.Println("Usage: luadec [-luau] <file.json>")
			os.Exit(1)
		}
		path = os.Args[2]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	bc, err := bytecode.ParseFunction(data)
	if err != nil {
		color.Red("failed to parse %s: %s", path, err)
		os.Exit(1)
	}

	out, decErr := decompile(bc, luau)
	if decErr != nil {
		errors.Report(os.Stderr, decErr)
		if decErr.Kind.Fatal() {
			os.Exit(1)
		}
	}

	fmt.Println(out)
	color.Green("decompiled %s", path)
}

// decompile runs the lift -> destruct -> structure pipeline over a single
// function. A non-fatal *errors.Error may be returned alongside a valid,
// partially structured result when the CFG was irreducible.
func decompile(bc *bytecode.Function, luau bool) (string, *errors.Error) {
	lift := lifter.LiftLua51
	if luau {
		lift = lifter.LiftLuau
	}
	fn, liftErr := lift(bc)
	if liftErr != nil {
		return "", liftErr
	}

	ssa.Destruct(fn)

	body, structErr := structurer.New(fn).Run()
	if structErr != nil && structErr.Kind.Fatal() {
		return "", structErr
	}
	typeinfer.Infer(&body)
	return body.String(), structErr
}
