/*
Package gandalf implements the GandalfLang scripting language: a small
Tolkien-flavored imperative language meant to be embedded in Go programs.

A program is a sequence of statements. Variables are inscribed, output is
proclaimed, and functions are spells:

	inscribe greeting = "mellon"
	proclaim greeting

	spell double(x) do
		return x * 2
	end
	proclaim double(21)

Most keywords have thematic aliases; bind, say, speak, when, upon, otherwise,
endure, weave, yield, summon, within, as, take, wear, remove, unmake and none
read exactly like their plain counterparts.

Values are numbers (integers and floats), strings, booleans, nil, lists and
maps. Arithmetic follows the usual precedence, '/' always yields a float, and
'+' concatenates when either side is a string.

What makes the language unusual is its context state. Scripts move through
regions, adopt a persona, and collect artifacts, and the interpreter's
behavior shifts with all three:

	in moria do
		proclaim "drums"           # (echo) drums
	end
	be wizard
	claim ring
	bear ring
	proclaim power()               # the Ring raises it

The invoke expression calls a fixed allowlist of host functions, such as

	inscribe r = invoke "math.sqrt" with 2

but is forbidden outright while standing in Mordor bearing the Ring.

To embed the interpreter, create a VM and feed it source:

	vm := gandalf.NewVM()
	vm.Stdout = &buf
	err := vm.Run(src)

Errors returned from Run are *LexError, *ParseError, or *RuntimeError;
IsLanguageError distinguishes them from defects in the interpreter itself.
*/
package gandalf
