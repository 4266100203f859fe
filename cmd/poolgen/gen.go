package main

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/wippyai/hostbind/config"
	"github.com/wippyai/hostbind/errors"
)

const poolPath = "github.com/wippyai/hostbind/pool"

// multiline renders a call or composite literal one element per line.
func multiline(open, close string) jen.Options {
	return jen.Options{Open: open, Close: close, Separator: ",", Multi: true}
}

// generate renders the Go source for l. Ids follow declaration order.
func generate(pkg, manifest, embed string, l *config.Literals) ([]byte, error) {
	strIDs, err := identifiers("Str", l.Strings, func(s config.StringLiteral) string { return s.Name }, nil)
	if err != nil {
		return nil, err
	}
	numIDs, err := identifiers("Num", l.Numbers, func(n config.NumberLiteral) string { return n.Name }, strIDs)
	if err != nil {
		return nil, err
	}

	f := jen.NewFile(pkg)
	f.HeaderComment(fmt.Sprintf("Code generated by poolgen from %s. DO NOT EDIT.", manifest))
	f.Anon("embed")
	f.ImportName(poolPath, "pool")

	f.Comment("//go:embed " + embed)
	f.Var().Id("bytecode").Index().Byte()

	if len(strIDs) > 0 {
		f.Line()
		f.Comment("String literal ids.")
		f.Const().DefsFunc(func(g *jen.Group) {
			for i, id := range strIDs {
				g.Id(id).Uint8().Op("=").Lit(i)
			}
		})
	}
	if len(numIDs) > 0 {
		f.Line()
		f.Comment("Number literal ids.")
		f.Const().DefsFunc(func(g *jen.Group) {
			for i, id := range numIDs {
				g.Id(id).Uint8().Op("=").Lit(i)
			}
		})
	}

	strs := make([]jen.Code, len(l.Strings))
	for i, s := range l.Strings {
		strs[i] = jen.Lit(s.Value)
	}
	nums := make([]jen.Code, len(l.Numbers))
	for i, n := range l.Numbers {
		nums[i] = jen.Lit(int(n.Value))
	}

	f.Line()
	f.Var().Id("literals").Op("=").Qual(poolPath, "MustNew").Custom(multiline("(", ")"),
		jen.Index().String().Custom(multiline("{", "}"), strs...),
		jen.Index().Int32().Custom(multiline("{", "}"), nums...),
		jen.Id("bytecode"),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidData, err, "render source")
	}
	return buf.Bytes(), nil
}

// identifiers maps literal names to exported constant names, rejecting
// names that collide with each other or with taken.
func identifiers[T any](prefix string, lits []T, name func(T) string, taken []string) ([]string, error) {
	seen := make(map[string]bool, len(lits)+len(taken))
	for _, id := range taken {
		seen[id] = true
	}

	ids := make([]string, len(lits))
	for i, lit := range lits {
		n := name(lit)
		id := prefix + identifier(n)
		if id == prefix {
			return nil, errors.InvalidInput(errors.PhaseGenerate, "literal name "+n+" has no identifier characters")
		}
		if seen[id] {
			return nil, errors.InvalidInput(errors.PhaseGenerate, "literal name "+n+" maps to duplicate constant "+id)
		}
		seen[id] = true
		ids[i] = id
	}
	return ids, nil
}

// identifier converts a literal name such as "max-depth" or "max_depth" to
// an exported Go identifier fragment ("MaxDepth").
func identifier(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
