package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NewReferenceCode returns the short code invitees use to look up a booking.
// Every row of a multi-host booking shares one code.
func NewReferenceCode() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// NewLockToken returns the owner token written under an advisory lock key.
// Longer than a reference code so tokens are never guessable from codes.
func NewLockToken() string {
	id, err := gonanoid.Generate(idAlphabet, 21)
	if err != nil {
		return ""
	}
	return id
}
