package types

import "errors"

// Reconciler errors. These are user-presentable: callers surface them as
// warnings or refusals without crashing the session.
var (
	ErrScenarioNotFound  = errors.New("scenario not found at that position")
	ErrSlotOccupied      = errors.New("slot holds a scenario; delete the scenario first")
	ErrRowNotAnchored    = errors.New("previous row must hold at least one scenario")
	ErrColumnNotAnchored = errors.New("previous column must hold at least one scenario")
)

// Update engine errors.
var (
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrMissingLocation  = errors.New("redirect received without a location header")
	ErrSamePath         = errors.New("old and new executable paths are the same")
	ErrNoAsset          = errors.New("release has no downloadable portable asset")
)

// Config validation errors.
var (
	ErrBinURLEmpty    = errors.New("bin_url must not be empty")
	ErrTimeoutInvalid = errors.New("timeout_seconds must be positive")
)
