package asm

import (
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var exprRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// evalExpression evaluates a $(...) body to an integer.
func evalExpression(expr string, globals map[string]int64) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, v := range globals {
		pred[key] = starlark.MakeInt64(v)
	}

	prog := "rc=" + strings.TrimSpace(expr) + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// expandExpressions replaces every $(...) in a line with its decimal value.
func expandExpressions(line string, globals map[string]int64) (expanded string, err error) {
	expanded = exprRegexp.ReplaceAllStringFunc(line, func(str string) string {
		if err != nil {
			return str
		}
		value, _err := evalExpression(str[2:len(str)-1], globals)
		if _err != nil {
			err = _err
			return str
		}
		return strconv.FormatInt(value, 10)
	})

	return
}

// lineGlobals returns the expression globals for a line.
func lineGlobals(predefine map[string]int64, lineno int) (globals map[string]int64) {
	globals = make(map[string]int64, len(predefine)+1)
	for name, value := range predefine {
		globals[name] = value
	}
	globals["LINENO"] = int64(lineno)
	return
}

