/*
Package rpn is a stack-oriented scripting interpreter in the RPN
calculator tradition, built for driving CNC machine motion.

Input is evaluated a line at a time. Each space-delimited token is either
a numeric literal, pushed onto the typed value stack, or a word looked up
in the dictionary and executed against the stack. Values carry one of
five types: double, integer, string, 3-axis vector, or boolean. Words
declare ordered, typed signatures; the interpreter validates the top of
the stack against them before a word's body ever runs, so bodies can pop
their operands unchecked.

New words are defined Forth-style:

	: NEGATE ( x -- -x ) CHS ;

and replay their recorded tokens when called. Hosts extend the dictionary
at runtime through AddDefinition, attaching an opaque context value that
is handed back on every call; the machine package uses this to bind jog,
probe and spindle words to a machine driver.

A session is created with New and fed with Parse or ParseFile:

	it := rpn.New(rpn.WithOutput(os.Stdout))
	err := it.Parse("3 4 HYPOT .S")
*/
package rpn
