package memutils

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

// ZeroAlignmentError is the error returned from ValidateAlignment when an alignment of 0 is requested
var ZeroAlignmentError error = errors.New("alignment must be at least 1")

// NilPointerError is the error carried by the panic raised when a raw memory operation receives a nil address
var NilPointerError error = errors.New("the address arguments must not be nil")

// NegativeSizeError is the error carried by the panic raised when a raw memory operation receives a negative size
var NegativeSizeError error = errors.New("size must not be negative")

// InvalidArgumentError is the error carried by the panic raised when a lifecycle operation receives
// arguments that cannot describe a valid memory region, such as a source slice shorter than its destination
var InvalidArgumentError error = errors.New("invalid argument")
