// Error types for the dictionary and the transforms built on it.
// They are small structs so a caller can pick out the field name or
// index, but mostly they just get printed.

package dict

import "strconv"

// MissingFieldError says a required field is absent, or present with
// the wrong kind. Got is KindNone when the key was not there at all.
type MissingFieldError struct {
	Field string
	Want  Kind
	Got   Kind
}

func (e *MissingFieldError) Error() string {
	where := "field " + e.Field + ": "
	if e.Field == "" {
		where = "" // a bare value, no field to point at
	}
	if e.Got == KindNone {
		return where + "missing, want " + e.Want.String()
	}
	return where + "want " + e.Want.String() + ", have " + e.Got.String()
}

// IndexError says an index stored in one array points outside the
// table it refers to.
type IndexError struct {
	Field string // the array holding the bad index
	Index int
	Len   int // length of the table being indexed
}

func (e *IndexError) Error() string {
	return "field " + e.Field + ": index " + strconv.Itoa(e.Index) +
		" outside table of " + strconv.Itoa(e.Len)
}

// LengthError says two arrays which should be parallel are not.
type LengthError struct {
	Field string
	Want  int
	Got   int
}

func (e *LengthError) Error() string {
	return "field " + e.Field + ": have " + strconv.Itoa(e.Got) +
		" entries, want " + strconv.Itoa(e.Want)
}

// ChargeError says a formal charge string could not be read back as
// a signed integer.
type ChargeError struct {
	S string
}

func (e *ChargeError) Error() string {
	return "bad formal charge " + strconv.Quote(e.S)
}
