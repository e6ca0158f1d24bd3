package mapscreator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTextureName is returned when no texture name is given
	ErrNoTextureName = errors.New("no texture name")

	// ErrDimensionMismatch indicates two channels packed into the same map
	// have different sizes.
	ErrDimensionMismatch = errors.New("mismatched image dimensions")

	// ErrEncode indicates an output file could not be written.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates a source image exists but could not be decoded.
	ErrDecode = errors.New("decode failed")
)

// DimensionMismatchError records the two channels whose sizes differ.
type DimensionMismatchError struct {
	Map                     int
	First                   string
	FirstWidth, FirstHeight int
	Channel                 string
	Width, Height           int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("mismatched image dimensions within channels going to map %d: %s is %dx%d vs. %s is %dx%d",
		e.Map, e.First, e.FirstWidth, e.FirstHeight, e.Channel, e.Width, e.Height)
}

// Is reports whether target is ErrDimensionMismatch
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// EncodeError records the file that could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to write file: %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrEncode
func (e *EncodeError) Is(target error) bool {
	return target == ErrEncode
}

// DecodeError records the source image that could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to read file: %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDecode
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
