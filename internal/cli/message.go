package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passkeeper/internal/common"
)

// Message turns an error from the services into the text shown to the user.
func Message(err error) string {
	var lo *common.LockedOutError
	if errors.As(err, &lo) {
		if lo.Triggered {
			return fmt.Sprintf("Too many failed attempts. Account locked for %d seconds.", lo.Seconds())
		}
		return fmt.Sprintf("Account locked. Try again in %d seconds.", lo.Seconds())
	}

	var wp *common.WrongPasswordError
	if errors.As(err, &wp) {
		return fmt.Sprintf("Invalid password. %d attempts remaining.", wp.Remaining)
	}

	switch common.KindOf(err) {
	case common.KindNone:
		return ""
	case common.KindWrongPassword:
		return "Invalid password."
	case common.KindNotFound:
		return "User not found."
	case common.KindAlreadyExists:
		return "Username already exists. Please choose another one."
	case common.KindPasswordMismatch:
		return "Passwords do not match!"
	case common.KindInvalidInput:
		return "All fields are required!"
	case common.KindDecryptionFailed:
		return "Decryption failed. Check your passkey."
	case common.KindIndexOutOfRange:
		return "No entry with that number."
	case common.KindHasRecords:
		return "Delete your stored entries before deleting the account."
	case common.KindStorage:
		return "Storage error. Your data could not be read or saved."
	default:
		return "Unexpected error: " + err.Error()
	}
}

func isUnexpected(err error) bool {
	switch common.KindOf(err) {
	case common.KindStorage, common.KindInternal:
		return true
	}
	return false
}
