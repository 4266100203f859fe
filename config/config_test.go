package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	hberrors "github.com/wippyai/hostbind/errors"
	"github.com/wippyai/hostbind/memrt"
	"github.com/wippyai/hostbind/pool"
	"github.com/wippyai/hostbind/property"
)

const bindingsTOML = `
readonly = ["locked"]
wasm = true
wasm_object = "native"

[[property]]
name = "title"
kind = "string"
value = "demo"

[[property]]
name = "limit"
kind = "number"
value = 64

[[property]]
name = "ratio"
kind = "number"
value = 0.5

[[property]]
name = "enabled"
kind = "bool"
value = true

[[property]]
name = "settings"
kind = "object"

[[property]]
name = "greeting"
kind = "pool-string"
id = 1

[[property]]
name = "answer"
kind = "pool-number"
id = 0
`

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings([]byte(bindingsTOML))
	if err != nil {
		t.Fatalf("ParseBindings error: %v", err)
	}

	if len(b.Properties) != 7 {
		t.Fatalf("expected 7 properties, got %d", len(b.Properties))
	}
	if !b.WASM || b.WASMObject != "native" {
		t.Errorf("unexpected wasm settings %v %q", b.WASM, b.WASMObject)
	}
	if len(b.ReadOnly) != 1 || b.ReadOnly[0] != "locked" {
		t.Errorf("unexpected readonly %v", b.ReadOnly)
	}
	if b.Properties[6].ID == nil || *b.Properties[6].ID != 0 {
		t.Error("id 0 should decode as a present id")
	}
}

func TestParseBindings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
		kind hberrors.Kind
	}{
		{"bad toml", "[[property]\nname=", hberrors.KindInvalidData},
		{"unknown kind", "[[property]]\nname = \"x\"\nkind = \"bigint\"\n", hberrors.KindInvalidInput},
		{"missing name", "[[property]]\nkind = \"object\"\n", hberrors.KindInvalidInput},
		{"pool kind without id", "[[property]]\nname = \"x\"\nkind = \"pool-string\"\n", hberrors.KindInvalidInput},
		{"id out of range", "[[property]]\nname = \"x\"\nkind = \"pool-number\"\nid = 300\n", hberrors.KindInvalidInput},
		{"value missing", "[[property]]\nname = \"x\"\nkind = \"number\"\n", hberrors.KindInvalidInput},
		{"wasm without object", "wasm = true\n", hberrors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBindings([]byte(tt.toml))
			var herr *hberrors.Error
			if !errors.As(err, &herr) {
				t.Fatalf("expected structured error, got %v", err)
			}
			if herr.Kind != tt.kind {
				t.Fatalf("expected kind %s, got %s (%v)", tt.kind, herr.Kind, err)
			}
		})
	}
}

func TestBindings_Table(t *testing.T) {
	b, err := ParseBindings([]byte(bindingsTOML))
	if err != nil {
		t.Fatalf("ParseBindings error: %v", err)
	}
	lit := pool.MustNew([]string{"x", "hi"}, []int32{42}, nil)

	rt := memrt.New()
	defer rt.Close()
	target := rt.Object()
	defer rt.Release(target)

	table, err := b.Table(rt, lit)
	if err != nil {
		t.Fatalf("Table error: %v", err)
	}
	if err := property.Install(rt, target, table); err != nil {
		t.Fatalf("Install error: %v", err)
	}

	checks := map[string]string{
		"title":    `"demo"`,
		"limit":    "64",
		"ratio":    "0.5",
		"enabled":  "true",
		"settings": "[object 0 keys]",
		"greeting": `"hi"`,
		"answer":   "42",
	}
	for name, want := range checks {
		got := property.Get(rt, target, name)
		if d := rt.Describe(got); d != want {
			t.Errorf("%s = %s, want %s", name, d, want)
		}
		rt.Release(got)
	}
	if rt.Violations() != 0 {
		t.Fatalf("violations: %d", rt.Violations())
	}
}

func TestBindings_TableErrorReleasesBuilt(t *testing.T) {
	b, err := ParseBindings([]byte(`
[[property]]
name = "a"
kind = "number"
value = 1

[[property]]
name = "b"
kind = "string"
value = 2
`))
	if err != nil {
		t.Fatalf("ParseBindings error: %v", err)
	}

	rt := memrt.New()
	defer rt.Close()
	base := rt.Live()

	if _, err := b.Table(rt, nil); err == nil {
		t.Fatal("expected type mismatch")
	}
	if rt.Live() != base {
		t.Fatalf("Table leaked %d cells", rt.Live()-base)
	}
}

func TestBindings_TableNeedsPool(t *testing.T) {
	b, err := ParseBindings([]byte("[[property]]\nname = \"x\"\nkind = \"pool-string\"\nid = 0\n"))
	if err != nil {
		t.Fatalf("ParseBindings error: %v", err)
	}

	rt := memrt.New()
	defer rt.Close()

	if _, err := b.Table(rt, nil); err == nil {
		t.Fatal("expected error without pool")
	}
	if _, err := b.Table(rt, pool.MustNew(nil, nil, nil)); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestLoadBindings_ResolvesPool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bind.toml")
	if err := os.WriteFile(path, []byte("pool = \"snap.cbor\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadBindings(path)
	if err != nil {
		t.Fatalf("LoadBindings error: %v", err)
	}
	if b.PoolPath() != filepath.Join(dir, "snap.cbor") {
		t.Fatalf("unexpected pool path %q", b.PoolPath())
	}

	if _, err := LoadBindings(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseLiterals(t *testing.T) {
	l, err := ParseLiterals([]byte(`
bytecode = "code.wasm"

[[string]]
name = "print"
value = "print"

[[string]]
name = "empty"
value = ""

[[number]]
name = "limit"
value = -3
`))
	if err != nil {
		t.Fatalf("ParseLiterals error: %v", err)
	}

	strs := l.StringValues()
	if len(strs) != 2 || strs[0] != "print" || strs[1] != "" {
		t.Fatalf("unexpected strings %q", strs)
	}
	nums := l.NumberValues()
	if len(nums) != 1 || nums[0] != -3 {
		t.Fatalf("unexpected numbers %v", nums)
	}
}

func TestParseLiterals_Invalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"missing bytecode", "[[string]]\nname = \"a\"\nvalue = \"a\"\n"},
		{"duplicate names", "bytecode = \"x\"\n[[number]]\nname = \"a\"\nvalue = 1\n[[number]]\nname = \"a\"\nvalue = 2\n"},
		{"number overflow", "bytecode = \"x\"\n[[number]]\nname = \"a\"\nvalue = 5000000000\n"},
		{"unnamed", "bytecode = \"x\"\n[[string]]\nvalue = \"a\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLiterals([]byte(tt.toml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadLiterals_BytecodePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "literals.toml")
	if err := os.WriteFile(path, []byte("bytecode = \"code.wasm\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := LoadLiterals(path)
	if err != nil {
		t.Fatalf("LoadLiterals error: %v", err)
	}
	if l.BytecodePath() != filepath.Join(dir, "code.wasm") {
		t.Fatalf("unexpected bytecode path %q", l.BytecodePath())
	}
}

func TestBindings_TableRejectsUnrepresentableStrings(t *testing.T) {
	tests := []struct {
		name string
		toml string
		lit  *pool.Pool
	}{
		{
			name: "string with NUL",
			toml: "[[property]]\nname = \"ok\"\nkind = \"number\"\nvalue = 1\n\n[[property]]\nname = \"greeting\"\nkind = \"string\"\nvalue = \"a\\u0000b\"\n",
		},
		{
			name: "pool string with NUL",
			toml: "[[property]]\nname = \"ok\"\nkind = \"number\"\nvalue = 1\n\n[[property]]\nname = \"greeting\"\nkind = \"pool-string\"\nid = 0\n",
			lit:  pool.MustNew([]string{"a\x00b"}, nil, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBindings([]byte(tt.toml))
			if err != nil {
				t.Fatalf("ParseBindings error: %v", err)
			}

			rt := memrt.New()
			defer rt.Close()
			base := rt.Live()

			table, err := b.Table(rt, tt.lit)
			if table != nil {
				t.Fatalf("expected no table, got %v", table.Names())
			}
			var herr *hberrors.Error
			if !errors.As(err, &herr) {
				t.Fatalf("expected structured error, got %v", err)
			}
			if herr.Kind != hberrors.KindInvalidInput || herr.Property != "greeting" || herr.Index != 1 {
				t.Fatalf("unexpected error %v", herr)
			}
			if rt.Live() != base {
				t.Fatalf("Table leaked %d cells", rt.Live()-base)
			}
			if rt.Violations() != 0 {
				t.Fatalf("violations: %d", rt.Violations())
			}
		})
	}
}
