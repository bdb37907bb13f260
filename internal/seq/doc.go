// Package seq expands range-repetition templates.
//
// An invocation has the shape
//
//	N in 0..3 { fn f~N() -> i32 { N } }
//
// and produces replacement token trees. When the body holds a repetition
// marker `#( ... )*`, only the marked subtree is repeated and the rest of the
// body appears once. Otherwise the whole body is repeated. Inside repeated
// content the loop identifier becomes an integer literal and `prefix~N`
// becomes the single identifier `prefix<i>`.
//
// Every function here is pure: inputs are never modified and each call
// builds fresh trees.
package seq
