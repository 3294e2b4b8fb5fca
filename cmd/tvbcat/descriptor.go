package main

import (
	"fmt"
	"strconv"
	"strings"
)

// op is one step of a --ops descriptor chain: "subset:OFFSET:LENGTH",
// "decompress:OFFSET:LENGTH", or an accessor name ("u8:OFFSET",
// "u32be:OFFSET", "string:OFFSET:LENGTH", ...). Each step after the
// first operates on the buffer produced by the step before it.
type op struct {
	name string
	args []int
}

// parseDescriptor parses a comma-separated chain of colon-delimited
// steps, e.g. "subset:14:64,decompress:0:-1,u32be:0", into an ordered
// list of ops. It is deliberately tiny: cmd/tvbcat exists to exercise
// the library end to end, not to be a general dissection language.
func parseDescriptor(s string) ([]op, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var ops []op
	for _, raw := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(raw), ":")
		if len(fields) == 0 || fields[0] == "" {
			return nil, fmt.Errorf("empty step in descriptor %q", s)
		}
		o := op{name: fields[0]}
		for _, f := range fields[1:] {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("step %q: argument %q is not an integer: %w", raw, f, err)
			}
			o.args = append(o.args, n)
		}
		ops = append(ops, o)
	}
	return ops, nil
}
