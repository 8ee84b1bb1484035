package rust_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/cratepath/inspector/graph"
	"github.com/viant/cratepath/inspector/rust"
)

type expectItem struct {
	kind       graph.Kind
	name       string
	visibility string
	inline     bool
	children   int
}

func TestInspector_InspectSource(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []expectItem
		wantErr bool
	}{
		{
			name: "structs and functions",
			src: `pub struct PublicExampleStruct {}
struct PrivateExampleStruct {}
pub(crate) fn helper() -> u32 { 1 }`,
			want: []expectItem{
				{kind: graph.KindStruct, name: "PublicExampleStruct", visibility: "pub"},
				{kind: graph.KindStruct, name: "PrivateExampleStruct"},
				{kind: graph.KindFunction, name: "helper", visibility: "pub(crate)"},
			},
		},
		{
			name: "modules",
			src: `mod nested_directory;
pub mod nested_in_lib {
    pub struct PublicExampleStruct {}
    mod deeply_nested {
        pub struct PublicExampleStruct {}
    }
}
mod empty {}`,
			want: []expectItem{
				{kind: graph.KindModule, name: "nested_directory"},
				{kind: graph.KindModule, name: "nested_in_lib", visibility: "pub", inline: true, children: 2},
				{kind: graph.KindModule, name: "empty", inline: true},
			},
		},
		{
			name: "other items",
			src: `use std::collections::BTreeMap;
extern crate alloc;
const LIMIT: usize = 250;
static NAME: &str = "name";
pub trait Shape { fn area(&self) -> f64; }
impl Shape for Square { fn area(&self) -> f64 { 0.0 } }
pub type Items = Vec<Item>;
pub enum Level { Warning, Error }
macro_rules! noop { () => {}; }`,
			want: []expectItem{
				{kind: graph.KindUse, name: "std::collections::BTreeMap"},
				{kind: graph.KindExternCrate, name: "alloc"},
				{kind: graph.KindConst, name: "LIMIT"},
				{kind: graph.KindStatic, name: "NAME"},
				{kind: graph.KindTrait, name: "Shape", visibility: "pub"},
				{kind: graph.KindImpl, name: "Square"},
				{kind: graph.KindTypeAlias, name: "Items", visibility: "pub"},
				{kind: graph.KindEnum, name: "Level", visibility: "pub"},
				{kind: graph.KindMacroRules, name: "noop"},
			},
		},
		{
			name: "comments are skipped",
			src: `// leading comment
/* block */
struct X {}`,
			want: []expectItem{
				{kind: graph.KindStruct, name: "X"},
			},
		},
		{
			name: "raw identifiers",
			src:  `mod r#type; pub fn r#match() {}`,
			want: []expectItem{
				{kind: graph.KindModule, name: "r#type"},
				{kind: graph.KindFunction, name: "r#match", visibility: "pub"},
			},
		},
		{
			name:    "stray token at file level",
			src:     "struct X {}\n)",
			wantErr: true,
		},
		{
			name:    "stray token in mod body",
			src:     "mod m {\n    struct X {}\n    )\n}",
			wantErr: true,
		},
	}

	inspector := rust.NewInspector(&rust.Config{StrictSyntax: true})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			aFile, err := inspector.InspectSource([]byte(tc.src), "lib.rs")
			if tc.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, graph.ErrSyntax))
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tc.want), len(aFile.Items))
			for i, expected := range tc.want {
				actual := aFile.Items[i]
				assert.Equal(t, expected.kind, actual.Kind, "item %d", i)
				assert.Equal(t, expected.name, actual.Name, "item %d", i)
				assert.Equal(t, expected.visibility, actual.Visibility, "item %d", i)
				assert.Equal(t, expected.inline, actual.Inline, "item %d", i)
				assert.Equal(t, expected.children, len(actual.Items), "item %d", i)
				assert.NotZero(t, actual.Hash)
				assert.NotNil(t, actual.Location)
			}
		})
	}
}

func TestInspector_Attributes(t *testing.T) {
	src := `#![allow(dead_code)]
#[derive(Clone, Copy)]
pub struct ExampleStructWithStdAttributeMacros {}

#[path = "other/location.rs"]
mod relocated;

#[cfg(test)]
mod test {
    #![allow(unused)]
    struct Fixture {}
}`
	aFile, err := rust.NewInspector(nil).InspectSource([]byte(src), "lib.rs")
	require.NoError(t, err)
	assert.Equal(t, []string{"#![allow(dead_code)]"}, aFile.Attributes)
	require.Len(t, aFile.Items, 3)

	assert.Equal(t, []string{"#[derive(Clone, Copy)]"}, aFile.Items[0].Attributes)

	relocated := aFile.Items[1]
	location, ok := relocated.PathAttribute()
	assert.True(t, ok)
	assert.Equal(t, "other/location.rs", location)
	assert.False(t, relocated.Inline)

	test := aFile.Items[2]
	assert.Equal(t, []string{"#[cfg(test)]"}, test.Attributes)
	_, ok = test.PathAttribute()
	assert.False(t, ok)
	require.Len(t, test.Items, 1)
	assert.Equal(t, "Fixture", test.Items[0].Name)
}

func TestInspector_StrictSyntax(t *testing.T) {
	src := []byte("struct X {}\n)\nfn after() {}\n")
	_, err := rust.NewInspector(&rust.Config{StrictSyntax: true}).InspectSource(src, "lib.rs")
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrSyntax))
	assert.True(t, strings.HasPrefix(err.Error(), "lib.rs:2:1"), err.Error())

	aFile, err := rust.NewInspector(nil).InspectSource(src, "lib.rs")
	require.NoError(t, err)
	require.NotEmpty(t, aFile.Items)
	assert.Equal(t, "X", aFile.Items[0].Name)
}

func TestInspector_NewerSyntax(t *testing.T) {
	bodies := `fn raw_borrow() { let x = 1; let p = &raw const x; }
fn closure() { let c = async || 1; }
mod after;`
	aFile, err := rust.NewInspector(&rust.Config{StrictSyntax: true}).InspectSource([]byte(bodies), "lib.rs")
	require.NoError(t, err)
	module, count := graph.FindModule(aFile.Items, "after")
	require.NotNil(t, module)
	assert.Equal(t, 1, count)

	externBlock := `unsafe extern "C" {
    pub safe fn abs(i: i32) -> i32;
}
mod after;`
	aFile, err = rust.NewInspector(nil).InspectSource([]byte(externBlock), "lib.rs")
	require.NoError(t, err)
	module, _ = graph.FindModule(aFile.Items, "after")
	assert.NotNil(t, module)
}

func TestFindModule_RawIdentifier(t *testing.T) {
	aFile, err := rust.NewInspector(nil).InspectSource([]byte("mod r#type;\nmod plain;"), "lib.rs")
	require.NoError(t, err)
	for _, name := range []string{"type", "r#type"} {
		module, count := graph.FindModule(aFile.Items, name)
		require.NotNil(t, module, name)
		assert.Equal(t, 1, count, name)
		assert.Equal(t, "r#type", module.Name)
	}
	module, _ := graph.FindModule(aFile.Items, "r#plain")
	assert.NotNil(t, module)
	assert.Equal(t, "type", graph.Identifier("r#type"))
	assert.Equal(t, "plain", graph.Identifier("plain"))
}

func TestInspector_InspectFile(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	baseURL := "mem://localhost/inspector"
	err := fs.Upload(ctx, baseURL+"/src/lib.rs", file.DefaultFileOsMode, strings.NewReader("mod foo;\npub struct Root {}"))
	require.NoError(t, err)

	inspector := rust.NewInspector(nil, rust.WithFileSystem(fs))
	aFile, err := inspector.InspectFile(ctx, baseURL+"/src/lib.rs")
	require.NoError(t, err)
	assert.Equal(t, "lib.rs", aFile.Name)
	require.Len(t, aFile.Items, 2)
	module, count := graph.FindModule(aFile.Items, "foo")
	assert.Equal(t, 1, count)
	assert.False(t, module.Inline)

	_, err = inspector.InspectFile(ctx, baseURL+"/src/missing.rs")
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrFileNotFound))

	exists, err := inspector.Exists(ctx, baseURL+"/src/lib.rs")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = inspector.Exists(ctx, baseURL+"/src/missing.rs")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestItem_Equivalent(t *testing.T) {
	inspector := rust.NewInspector(nil)
	inline, err := inspector.InspectSource([]byte("mod foo { struct Z {} }"), "lib.rs")
	require.NoError(t, err)
	sibling, err := inspector.InspectSource([]byte("\n\nstruct Z {}"), "foo.rs")
	require.NoError(t, err)
	other, err := inspector.InspectSource([]byte("struct Y {}"), "foo.rs")
	require.NoError(t, err)

	assert.True(t, graph.EquivalentItems(inline.Items[0].Items, sibling.Items))
	assert.False(t, graph.EquivalentItems(inline.Items[0].Items, other.Items))
	assert.NotEqual(t, inline.Items[0].Items[0].Location.Line, sibling.Items[0].Location.Line)
}
