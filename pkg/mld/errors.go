package mld

import "github.com/diapath/vtoq/internal/parser"

// Error types returned or attached to warnings by the decoder. Match them
// with errors.As.
type (
	ErrHeaderTooShort      = parser.ErrHeaderTooShort
	ErrTruncated           = parser.ErrTruncated
	ErrUnknownShape        = parser.ErrUnknownShape
	ErrLayerHeaderNotFound = parser.ErrLayerHeaderNotFound
	ErrInvalidGeometry     = parser.ErrInvalidGeometry
)

// ValidateObject checks that an object's outline is usable
func ValidateObject(o *Object) error {
	return parser.ValidateObject(o)
}
