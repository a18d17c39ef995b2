package flags

import (
	"bytes"
	"flag"
	"fmt"
)

// Usage returns help combining txt with the flags registered on fs, one
// entry (a name line and a usage line) per flag in VisitAll order.
func Usage(txt string, fs *flag.FlagSet) string {
	var buf bytes.Buffer
	buf.WriteString(txt)
	if fs != nil {
		first := true
		fs.VisitAll(func(f *flag.Flag) {
			if first {
				buf.WriteString("\n\nCommand Options\n\n")
				first = false
			}
			fmt.Fprintf(&buf, "  -%s=<value>\n     %s\n\n", f.Name, f.Usage)
		})
	}
	return buf.String()
}
