package common

import "errors"

// Kind classifies an operation outcome. It lets callers branch on the result
// of a core operation without comparing message text.
type Kind int

const (
	KindNone Kind = iota
	KindAlreadyExists
	KindNotFound
	KindWrongPassword
	KindLockedOut
	KindPasswordMismatch
	KindInvalidInput
	KindDecryptionFailed
	KindIndexOutOfRange
	KindHasRecords
	KindStorage
	KindInternal
)

var kindNames = map[Kind]string{
	KindNone:             "none",
	KindAlreadyExists:    "already_exists",
	KindNotFound:         "not_found",
	KindWrongPassword:    "wrong_password",
	KindLockedOut:        "locked_out",
	KindPasswordMismatch: "password_mismatch",
	KindInvalidInput:     "invalid_input",
	KindDecryptionFailed: "decryption_failed",
	KindIndexOutOfRange:  "index_out_of_range",
	KindHasRecords:       "has_records",
	KindStorage:          "storage",
	KindInternal:         "internal",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// kindOrder is checked top to bottom; the first sentinel matched wins.
var kindOrder = []struct {
	err  error
	kind Kind
}{
	{ErrLockedOut, KindLockedOut},
	{ErrWrongPassword, KindWrongPassword},
	{ErrNotFound, KindNotFound},
	{ErrAlreadyExists, KindAlreadyExists},
	{ErrPasswordMismatch, KindPasswordMismatch},
	{ErrInvalidInput, KindInvalidInput},
	{ErrDecryptionFailed, KindDecryptionFailed},
	{ErrIndexOutOfRange, KindIndexOutOfRange},
	{ErrHasRecords, KindHasRecords},
	{ErrStorage, KindStorage},
}

// KindOf maps err onto its Kind. A nil error is KindNone; anything not
// derived from a known sentinel is KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kindOrder {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
