package services

import (
	"fmt"
	"strings"
)

// DeletePolicy decides what happens to a user's records when the account
// is deleted.
type DeletePolicy string

const (
	// PolicyCascade removes the records after the credential.
	PolicyCascade DeletePolicy = "cascade"
	// PolicyOrphan leaves the records in place.
	PolicyOrphan DeletePolicy = "orphan"
	// PolicyReject refuses deletion while records exist.
	PolicyReject DeletePolicy = "reject"
)

func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch p := DeletePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyCascade, PolicyOrphan, PolicyReject:
		return p, nil
	case "":
		return PolicyCascade, nil
	default:
		return "", fmt.Errorf("unknown delete policy %q", s)
	}
}
