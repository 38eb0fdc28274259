package pipeline

import "errors"

var (
	// ErrMissingAsset is returned when an export is requested without a background image.
	ErrMissingAsset = errors.New("pipeline: no background image")

	// ErrAssetLoad is returned when the background image cannot be decoded.
	ErrAssetLoad = errors.New("pipeline: background image failed to load")

	// ErrImageNotLoaded is returned when the background has zero natural dimensions.
	ErrImageNotLoaded = errors.New("pipeline: background image has no natural size")

	// ErrInvalidPreview is returned when the measured preview has no area.
	ErrInvalidPreview = errors.New("pipeline: preview layout has zero size")

	// ErrEffectUnavailable is returned by optional effects that cannot run in
	// the current runtime. Callers degrade the effect instead of failing.
	ErrEffectUnavailable = errors.New("pipeline: effect unavailable")
)
