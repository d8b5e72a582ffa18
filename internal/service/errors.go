package service

import "errors"

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrContractNotFound = errors.New("contract not found")
	ErrInvalidData      = errors.New("invalid data")
)
