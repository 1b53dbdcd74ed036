// Package lang implements the directive language embedded in configuration
// values.
//
// A directive is text wrapped in double braces. Its body is one of:
//
//	{{ $db.host ?? localhost }}                    nullish fallback
//	{{ if ($env equals "prod") then (5) else (1) }} conditional
//
// anything else evaluates to the body text itself. References start with "$"
// and are resolved by a caller-supplied [Resolver]; the package never reads
// configuration or the environment directly.
//
// Conditions combine comparisons (equals, startswith, endswith, contains,
// >, >=, <, <=) with not, and, or. The combinators are applied strictly left
// to right without precedence: "a or b and c" is "(a or b) and c", except
// that a true running result short-circuits at the next "or".
//
// A bare comparison operand (unquoted, without "$") that names a path in
// the tree is replaced by that path's value; any other bare word is literal
// text. Quote literals that may collide with a key:
//
//	{{ if ($env equals "prod") then (a) else (b) }}
//
// A bare word naming the value currently being resolved stays literal.
//
// Malformed directives are never errors. A directive that cannot be parsed
// evaluates to its raw body. The only evaluation errors are the ones
// returned by the [Resolver], such as a circular reference.
//
// [Coerce] converts strings to typed values (booleans, numbers, JSON
// literals) and is applied by callers to final results.
package lang
