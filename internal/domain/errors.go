package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrEmptyMessage   = errors.New("message is empty")
	ErrReplyPending   = errors.New("a reply is already brewing")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrNoMedia        = errors.New("no media loaded")
	ErrInvalidRarity  = errors.New("invalid rarity")
	ErrInvalidCommand = errors.New("invalid command")
)
