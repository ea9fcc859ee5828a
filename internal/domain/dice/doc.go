// Package dice parses and rolls dice expressions such as "4d6", "1d20+5" or
// "2d6*10-(1d4)". Expressions are evaluated by a small recursive-descent
// parser over integers; nothing is ever handed to an interpreter.
package dice
