package model

import "errors"

var (
	// ErrUpstream is returned when the language model call fails.
	ErrUpstream = errors.New("model provider request failed")

	// ErrMissingAPIKey is returned when no provider key is configured.
	ErrMissingAPIKey = errors.New("GROQ_API_KEY não configurada")

	// ErrEmptyMessage is returned when a chat request has no message.
	ErrEmptyMessage = errors.New("mensagem é obrigatória")

	// ErrSnapshotUnavailable is returned when no snapshot could be read from a store.
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")
)
