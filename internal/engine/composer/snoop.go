package composer

import "strings"

// SnoopMain returns the wrapper program compiled after a snoop pre-pass. It
// includes program and replays every statement of the precompile script,
// skipping statements that no longer resolve.
func SnoopMain(program, precompile string) []byte {
	var b strings.Builder
	b.WriteString(`include("` + escapeString(program) + `")` + "\n")
	b.WriteString(`for line in eachline("` + escapeString(precompile) + `")` + "\n")
	b.WriteString("    try\n")
	b.WriteString("        eval(Meta.parse(line))\n")
	b.WriteString("    catch\n")
	b.WriteString("    end\n")
	b.WriteString("end\n")
	return []byte(b.String())
}
