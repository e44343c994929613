package config

import "errors"

var (
	ErrMissingToken        = errors.New("github token is required")
	ErrInvalidRepoFormat   = errors.New("repository must be in owner/name format when no organization is set")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidFileFormat   = errors.New("invalid file format")
	ErrInvalidTargetDate   = errors.New("invalid target date")
)
