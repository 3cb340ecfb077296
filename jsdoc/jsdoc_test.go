package jsdoc

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/tsdoc/typescript"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "new comments on one line",
			src:  "interface X { prop1: string; }",
			want: "/**\n * @interface X\n */\n" +
				"interface X { /**\n  * @property {string} prop1\n  */\n prop1: string; }",
		},
		{
			name: "type added to an existing param line",
			src: `class A {
    /**
     * @param other
     */
    constructor(other: OtherClass) {
    }
}
`,
			want: `/**
 * @class A
 */
class A {
    /**
     * @param {OtherClass} other
     * @method constructor
     * @constructs A
     * @returns {A}
     */
    constructor(other: OtherClass) {
    }
}
`,
		},
		{
			name: "optional property",
			src: `class C {
    prop2?: string;
}
`,
			want: `/**
 * @class C
 */
class C {
    /**
     * @property {string} prop2
     * @optional
     */
    prop2?: string;
}
`,
		},
		{
			name: "single line comment",
			src:  "/** Says hi. */\nclass H {}",
			want: "/** Says hi. \n * @class H\n */\nclass H {}",
		},
		{
			name: "tags sorted by band",
			src: `export abstract class Shape extends Base implements Drawable, Named {
    public static readonly sides = 0;
}
`,
			want: `/**
 * @class Shape
 * @abstract
 * @extends Base
 * @implements {Drawable}
 * @implements {Named}
 */
export abstract class Shape extends Base implements Drawable, Named {
    /**
     * @property {any} sides
     * @public
     * @static
     * @readonly
     * @default 0
     */
    public static readonly sides = 0;
}
`,
		},
		{
			name: "accessor comment goes above the keyword",
			src: `class G {
    get size(): number { return 1; }
}
`,
			want: `/**
 * @class G
 */
class G {
    /**
     * @method size
     * @returns {number}
     */
    get size(): number { return 1; }
}
`,
		},
		{
			name: "interface with several bases",
			src:  "interface A extends B, C {}\n",
			want: "/**\n * @interface A\n * @extends B\n * @extends C\n */\ninterface A extends B, C {}\n",
		},
		{
			name: "decorated class and member",
			src: `@Component({ selector: 'x-y' })
export class X {
    @Input() name: string;
}
`,
			want: `/**
 * @class X
 */
@Component({ selector: 'x-y' })
export class X {
    /**
     * @property {string} name
     */
    @Input() name: string;
}
`,
		},
		{
			name: "optional param brackets",
			src: `class P {
    /**
     * @param {string} name the name
     * @returns {void}
     * @method greet
     */
    greet(name?: string) {}
}
`,
			want: `/**
 * @class P
 */
class P {
    /**
     * @param {string} [name] the name
     * @returns {void}
     * @method greet
     */
    greet(name?: string) {}
}
`,
		},
		{
			name: "bracketed param with default",
			src: `class P {
    /**
     * @param {number} [n=5]
     * @returns {void}
     * @method f
     */
    f(n?: number) {}
}
`,
			want: `/**
 * @class P
 */
class P {
    /**
     * @param {number} [n=5]
     * @returns {void}
     * @method f
     */
    f(n?: number) {}
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.src)
			if got != tt.want {
				t.Errorf("Generate =\n%s\nwant\n%s", got, tt.want)
			}
			if again := Generate(got); again != got {
				t.Errorf("second Generate changed the text:\n%s", again)
			}
		})
	}
}

func TestInheritDoc(t *testing.T) {
	src := `class D {
    /**
     * @inheritDoc
     */
    run(x: number) {
    }
}
`
	want := "/**\n * @class D\n */\n" + src
	if got := Generate(src); got != want {
		t.Errorf("Generate =\n%s\nwant\n%s", got, want)
	}

	got := GenerateWith(src, Options{IgnoreInheritDoc: true})
	if !strings.Contains(got, "     * @param {number} x\n") {
		t.Errorf("IgnoreInheritDoc did not complete the comment:\n%s", got)
	}
}

func TestInheritDocOnDeclaration(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"class", "/**\n * @inheritDoc\n */\nexport class D extends Base implements I {\n}\n"},
		{"interface", "/** @inheritDoc */\ninterface J extends K {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ins := Insertions(tt.src, Options{}); len(ins) != 0 {
				t.Errorf("insertions = %+v, want none", ins)
			}
		})
	}
}

func TestDocumentedAccessorsUnchanged(t *testing.T) {
	src := `/**
 * @class Box
 */
class Box {
    /**
     * @method size
     * @returns {number}
     */
    get size(): number {
        return this.n;
    }

    /**
     * @method size
     * @param {number} v
     * @returns {void}
     */
    set size(v: number) {
        this.n = v;
    }
}
`
	if got := Generate(src); got != src {
		t.Errorf("Generate changed documented accessors:\n%s", got)
	}
}

func TestUnparsedShapesDoNotLeakIntoBodies(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   []string
		reject []string
	}{
		{
			name: "generic method",
			src: `class M {
    map<T>(fn: (x: T) => T): T {
        count = 1;
        notify(count);
        return fn(this.x);
    }
}
`,
			want:   []string{"     * @method map\n", "     * @param {(x: T) => T} fn\n", "     * @returns {T}\n"},
			reject: []string{"@property {any} count", "@method notify"},
		},
		{
			name: "destructured param",
			src: `class R {
    run({ a, b }: Opts): void {
        total = a + b;
    }
}
`,
			want:   []string{"     * @param {Opts} { a, b }\n", "     * @returns {void}\n"},
			reject: []string{"@property {any} total"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.src)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output lacks %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.reject {
				if strings.Contains(got, bad) {
					t.Errorf("output contains %q:\n%s", bad, got)
				}
			}
			if n := strings.Count(got, "/**"); n != 2 {
				t.Errorf("%d comments, want 2:\n%s", n, got)
			}
			if again := Generate(got); again != got {
				t.Errorf("second Generate changed the text:\n%s", again)
			}
		})
	}
}

func TestCommentedCodeIsNotAMember(t *testing.T) {
	src := `class E {
    /**
     * Example:
     * public sample(param) { }
     */
    real(): void {}
}
`
	got := Generate(src)
	if strings.Contains(got, "@method sample") {
		t.Errorf("commented code produced tags:\n%s", got)
	}
	if !strings.Contains(got, "@method real") {
		t.Errorf("real was not documented:\n%s", got)
	}
}

func TestParamPrefixIsNotAMatch(t *testing.T) {
	src := `class F {
    /**
     * @param {any} ab
     */
    f(a, ab) {}
}
`
	got := Generate(src)
	if !strings.Contains(got, "     * @param {any} a\n") {
		t.Errorf("missing line for a:\n%s", got)
	}
	if strings.Count(got, "@param") != 2 {
		t.Errorf("want two @param lines:\n%s", got)
	}
}

func TestDeclarationTagOrder(t *testing.T) {
	d := typescript.Declaration{
		Kind:       "class",
		Name:       "C",
		Extends:    []string{"B"},
		Implements: []string{"I1", "I2"},
		Modifiers:  []string{"export", "abstract"},
	}

	var names []string
	for _, tag := range DeclarationTags(&d) {
		names = append(names, tag.Name)
	}
	want := []string{"class", "extends", "implements", "implements", "abstract"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("tags = %v, want %v", names, want)
	}
}

func TestMemberTags(t *testing.T) {
	m := typescript.Member{
		Name:   "constructor",
		Method: true,
		Params: []typescript.Param{
			{Name: "a", Type: "string"},
			{Name: "b", Optional: true},
		},
	}

	got := MemberTags(&m, "Thing")
	want := []string{"@method constructor", "@constructs Thing", "@param {string} a", "@param {any} [b]", "@returns {Thing}"}
	var lines []string
	for _, tag := range got {
		lines = append(lines, tag.Line())
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %q, want %q", lines, want)
	}
}

func TestAccessorKeywordsHaveNoTags(t *testing.T) {
	m := typescript.Member{
		Name:       "size",
		Method:     true,
		Modifiers:  []string{"static", "get"},
		ReturnType: "number",
	}

	var lines []string
	for _, tag := range MemberTags(&m, "Box") {
		lines = append(lines, tag.Line())
	}
	want := []string{"@method size", "@returns {number}", "@static"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %q, want %q", lines, want)
	}
}

func TestReconcileFindsExistingImplements(t *testing.T) {
	text := "/**\n * @implements {Foo}\n */\nclass X implements Foo {}"
	tags := []Tag{{Name: "implements", Value: "{Foo}", Key: key(bandList, 0)}}

	if ins := Reconcile(text, strings.Index(text, "class"), tags, Options{}); len(ins) != 0 {
		t.Errorf("insertions = %+v, want none", ins)
	}
}

func TestGenerateSample(t *testing.T) {
	data, err := os.ReadFile("../typescript/testdata/sample.ts")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	src := string(data)

	got := Generate(src)
	for _, want := range []string{
		"     * @param {OtherClass} other\n",
		" * @class MyClass\n",
		" * @implements {ng.Iface2}\n",
		"@property {() => any} prop2 - a description here",
		"@param {() => { [id:string] : number }} [param2] - da!",
		"    /** what now? \n     * @method noParamNoReturnType\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q", want)
		}
	}
	if strings.Contains(got, "@method thisIsCommented") {
		t.Error("commented example was documented")
	}
	if strings.Contains(got, "@method inherited") {
		t.Error("@inheritDoc comment was changed")
	}
	if again := Generate(got); again != got {
		t.Error("generating twice changed the sample")
	}

	if !insertedOnly(src, got) {
		t.Error("generation removed or reordered original text")
	}
}

// insertedOnly reports whether got is src with text inserted.
func insertedOnly(src, got string) bool {
	i := 0
	for j := 0; j < len(got) && i < len(src); j++ {
		if got[j] == src[i] {
			i++
		}
	}
	return i == len(src)
}

func TestGenerateFiles(t *testing.T) {
	files := []*File{
		{Name: "a.ts", Contents: "class A {}"},
		{Name: "b.ts", Contents: "const b = 1;"},
	}
	GenerateFiles(files, Options{})

	if want := "/**\n * @class A\n */\nclass A {}"; files[0].Augmented != want {
		t.Errorf("a.ts = %q, want %q", files[0].Augmented, want)
	}
	if files[1].Augmented != files[1].Contents {
		t.Errorf("b.ts = %q, want it unchanged", files[1].Augmented)
	}
}
