package function

import (
	"strings"

	"github.com/specialistvlad/reflectgo/internal/argument"
)

// Signature renders f as `ret(arg, arg)`.
func Signature(f *Function) string {
	return SignatureOf(f.ret, f.args)
}

// SignatureOf renders a call shape the same way Signature renders a Function.
func SignatureOf(ret argument.Argument, args []argument.Argument) string {
	var sb strings.Builder
	sb.WriteString(ret.String())
	sb.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
