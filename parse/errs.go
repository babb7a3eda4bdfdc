package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/treediff/ir"
)

var (
	ErrParse       = ir.ErrParse
	ErrKeyTag      = fmt.Errorf("%w: key cannot be tagged", ErrParse)
	ErrUnknownTag  = fmt.Errorf("%w: unknown tag", ErrParse)
	ErrUnsupported = errors.New("unsupported yaml construct")
)
