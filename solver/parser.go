package solver

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseQDIMACS reads a QDIMACS stream and returns a Preprocessor primed
// with its prefix and clauses (spec.md §6). Lines:
//
//	c ...          a comment, ignored
//	p cnf N M      informational header; N and M are not checked against
//	               the actual variable/clause counts
//	e v1 v2 ... 0  an existential quantifier block
//	a v1 v2 ... 0  a universal quantifier block
//	<ints> 0       a clause
//
// Quantifier lines must all appear before the first clause line and in
// prefix order; ParseQDIMACS rejects anything else, since the core
// itself only ever accepts well-formed additions.
func ParseQDIMACS(r io.Reader) (*Preprocessor, error) {
	p := NewPreprocessor()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sawHeader := false
	sawClause := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			if sawHeader {
				return nil, errors.Errorf("line %d: duplicate header line", lineNo)
			}
			sawHeader = true
			continue
		case 'e', 'a':
			if sawClause {
				return nil, errors.Errorf("line %d: quantifier block after a clause", lineNo)
			}
			vars, err := parseVarList(line[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: malformed quantifier block", lineNo)
			}
			q := Exists
			if line[0] == 'a' {
				q = Forall
			}
			p.AddBlock(q, vars)
		default:
			lits, err := parseClauseLine(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: malformed clause", lineNo)
			}
			sawClause = true
			p.AddClause(lits)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading QDIMACS stream")
	}
	return p, nil
}

// parseVarList parses the body of a quantifier line: a sequence of
// positive integers terminated by a trailing 0.
func parseVarList(body string) ([]Var, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 || fields[len(fields)-1] != "0" {
		return nil, errors.New("quantifier block must be terminated by 0")
	}
	fields = fields[:len(fields)-1]
	if len(fields) == 0 {
		return nil, errors.New("quantifier block must bind at least one variable")
	}
	vars := make([]Var, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%q is not an integer", f)
		}
		if n <= 0 {
			return nil, errors.Errorf("%q is not a positive variable identifier", f)
		}
		vars[i] = Var(n)
	}
	return vars, nil
}

// parseClauseLine parses a line of space-separated signed integers
// terminated by a trailing 0.
func parseClauseLine(body string) ([]Literal, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 || fields[len(fields)-1] != "0" {
		return nil, errors.New("clause must be terminated by 0")
	}
	fields = fields[:len(fields)-1]
	lits := make([]Literal, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%q is not an integer", f)
		}
		if n == 0 {
			return nil, errors.New("unexpected 0 literal before end of clause")
		}
		lits[i] = IntToLit(n)
	}
	return lits, nil
}
