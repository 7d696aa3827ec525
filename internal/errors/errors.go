package errors

import "errors"

// Validation errors are fatal and abort before any assignment is generated.
var (
	// ErrTooFewParticipants indicates fewer than 2 distinct names were enrolled.
	ErrTooFewParticipants = errors.New("at least 2 distinct participants are required")
)

// Resolution errors are recoverable and re-issue the current prompt.
var (
	// ErrParticipantNotFound indicates a query matched no enrolled participant.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrAmbiguousName indicates a query matched several case-variant participants.
	ErrAmbiguousName = errors.New("multiple participants match")

	// ErrSelectionCancelled indicates the user backed out of disambiguation.
	ErrSelectionCancelled = errors.New("selection cancelled")

	// ErrAlreadyViewed indicates the participant already completed a reveal in one-shot mode.
	ErrAlreadyViewed = errors.New("assignment already viewed")
)

// Generation errors indicate failures while producing assignments or secrets.
var (
	// ErrDerangeFailed indicates the derangement retry bound was exceeded.
	// This cannot occur for 2 or more participants and signals an internal bug.
	ErrDerangeFailed = errors.New("failed to generate a derangement")

	// ErrUnevenSplit indicates the secret length is not an exact multiple of the share count.
	ErrUnevenSplit = errors.New("secret length is not divisible by the number of shares")
)

// Backup errors indicate failures of the sealed backup artifact.
var (
	// ErrBackupFailed indicates the sealed backup could not be created.
	// The session degrades to no-backup mode rather than aborting.
	ErrBackupFailed = errors.New("failed to create sealed backup")

	// ErrSealOpenFailed indicates the artifact could not be opened with the given secret.
	ErrSealOpenFailed = errors.New("failed to open sealed backup")

	// ErrInvalidArtifact indicates the artifact file is truncated or malformed.
	ErrInvalidArtifact = errors.New("invalid sealed backup artifact")
)
