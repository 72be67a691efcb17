package fuzzy

import (
	"errors"
	"fmt"
)

// ErrorKind classifies build-time and runtime failures of an engine.
type ErrorKind int

const (
	KindUnknownVariable ErrorKind = iota + 1
	KindUnknownTerm
	KindMisplacedVariable
	KindParse
	KindDuplicateName
	KindInvalidRange
	KindUnsetInput
)

var (
	ErrUnknownVariable   = errors.New("unknown variable")
	ErrUnknownTerm       = errors.New("unknown term")
	ErrMisplacedVariable = errors.New("misplaced variable")
	ErrParse             = errors.New("parse error")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrInvalidRange      = errors.New("invalid range")
	ErrUnsetInput        = errors.New("input not set")
)

var kindSentinels = map[ErrorKind]error{
	KindUnknownVariable:   ErrUnknownVariable,
	KindUnknownTerm:       ErrUnknownTerm,
	KindMisplacedVariable: ErrMisplacedVariable,
	KindParse:             ErrParse,
	KindDuplicateName:     ErrDuplicateName,
	KindInvalidRange:      ErrInvalidRange,
	KindUnsetInput:        ErrUnsetInput,
}

func (k ErrorKind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the structured failure returned by builder calls and by Process.
// Rule is the offending rule text, empty when the error is not about a rule.
type Error struct {
	Kind     ErrorKind
	Rule     string
	Variable string
	Term     string
	Detail   string
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch {
	case e.Variable != "" && e.Term != "":
		msg += fmt.Sprintf(" %q in variable %q", e.Term, e.Variable)
	case e.Variable != "":
		msg += fmt.Sprintf(" %q", e.Variable)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Rule != "" {
		msg += fmt.Sprintf(" (rule %q)", e.Rule)
	}
	return msg
}

// Is lets errors.Is match an *Error against the sentinel of its kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}
