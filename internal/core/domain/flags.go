package domain

import "strconv"

// FlagSet is an ordered sequence of compiler arguments. Later flags may
// override earlier ones, so the order is significant.
type FlagSet []string

// BuildFlags derives the C compiler flags for a link stage.
//
// The result is base, then the bitness flag, then -O<level> when optimize is
// set, then -g when debug equals DebugSymbols, then extra verbatim. Debug
// levels other than DebugSymbols only affect the runtime invocation.
func BuildFlags(base FlagSet, bitness string, optimize, debug *int, extra []string) FlagSet {
	flags := make(FlagSet, 0, len(base)+len(extra)+3)
	flags = append(flags, base...)
	if bitness != "" {
		flags = append(flags, bitness)
	}
	if optimize != nil {
		flags = append(flags, "-O"+strconv.Itoa(*optimize))
	}
	if debug != nil && *debug == DebugSymbols {
		flags = append(flags, "-g")
	}
	flags = append(flags, extra...)
	return flags
}

// BitnessFlag returns the word size flag for the given runtime architecture.
// Architectures without a 32-bit counterpart and 64-bit builds get none.
func BitnessFlag(arch string, wordSize int) string {
	switch arch {
	case "aarch64", "arm64":
		return ""
	}
	if wordSize == 32 {
		return "-m32"
	}
	return ""
}
