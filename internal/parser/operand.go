package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/smoynes/tacrunner/internal/tac"
)

var (
	intPattern   = regexp.MustCompile(`^[-+]?[0-9]+$`)
	floatPattern = regexp.MustCompile(`^[-+]?[0-9]+\.[0-9]+$`)
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	varPattern   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:\[(.+)\])?$`)
)

// ErrOperand is the root of every operand-syntax error.
var ErrOperand = errors.New("operand error")

// parseOperand parses the literal/variable-reference grammar of spec.md
// §6: integer, float, char, bool, string, or a variable name with an
// optional [index].
func parseOperand(s string) (tac.Operand, error) {
	s = strings.TrimSpace(s)

	switch {
	case s == "":
		return tac.Operand{}, errors.Join(ErrOperand, errors.New("empty operand"))

	case s == "true":
		return tac.Bool(true), nil
	case s == "false":
		return tac.Bool(false), nil

	case strings.HasPrefix(s, `"`):
		return parseStringLiteral(s)

	case strings.HasPrefix(s, "'"):
		return parseCharLiteral(s)

	case floatPattern.MatchString(s):
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return tac.Operand{}, errors.Join(ErrOperand, err)
		}

		return tac.Float32(float32(f)), nil

	case intPattern.MatchString(s):
		i, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return tac.Operand{}, errors.Join(ErrOperand, err)
		}

		return tac.Int32(int32(i)), nil

	default:
		return parseVarRef(s)
	}
}

func parseStringLiteral(s string) (tac.Operand, error) {
	if len(s) < 2 || s[len(s)-1] != '"' {
		return tac.Operand{}, errors.Join(ErrOperand, errors.New("unterminated string literal"))
	}

	unquoted, err := strconv.Unquote(s)
	if err != nil {
		return tac.Operand{}, errors.Join(ErrOperand, err)
	}

	return tac.String(unquoted), nil
}

func parseCharLiteral(s string) (tac.Operand, error) {
	if len(s) < 3 || s[len(s)-1] != '\'' {
		return tac.Operand{}, errors.Join(ErrOperand, errors.New("unterminated char literal"))
	}

	body := s[1 : len(s)-1]

	var r rune

	switch {
	case len(body) == 1:
		r = rune(body[0])
	case strings.HasPrefix(body, `\`):
		unquoted, err := strconv.Unquote(`'` + body + `'`)
		if err != nil {
			return tac.Operand{}, errors.Join(ErrOperand, err)
		}

		for _, c := range unquoted {
			r = c
			break
		}
	default:
		return tac.Operand{}, errors.Join(ErrOperand, errors.New("invalid char literal"))
	}

	return tac.Char(byte(r)), nil
}

// parseVarRef parses `name` or `name[index]`, where index is either an
// integer literal (direct) or another identifier (indirect).
func parseVarRef(s string) (tac.Operand, error) {
	m := varPattern.FindStringSubmatch(s)
	if m == nil {
		return tac.Operand{}, errors.Join(ErrOperand, errors.New("invalid variable reference"))
	}

	name, index := m[1], m[2]

	if index == "" {
		return tac.Reg(name), nil
	}

	index = strings.TrimSpace(index)

	switch {
	case intPattern.MatchString(index):
		i, err := strconv.ParseInt(index, 10, 32)
		if err != nil {
			return tac.Operand{}, errors.Join(ErrOperand, err)
		}

		return tac.Access(name, tac.Index{Kind: tac.IndexConst, Const: int32(i)}), nil

	case identPattern.MatchString(index):
		return tac.Access(name, tac.Index{Kind: tac.IndexName, Name: index}), nil

	default:
		return tac.Operand{}, errors.Join(ErrOperand, errors.New("invalid index expression"))
	}
}
