package auth

import "fmt"

// OIDCError is a failed login callback. Code follows the OAuth2 error vocabulary.
type OIDCError struct {
	Code        string
	Description string
	Err         error
}

func (e *OIDCError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *OIDCError) Unwrap() error {
	return e.Err
}
