package models

// imageKind tags the state of an [ImageState] value.
type imageKind int

const (
	imageCommitted imageKind = iota
	imagePending
)

// ImageState is a tagged optimistic value for a record's image URL.
//
// A value is either Committed (the server-confirmed URL) or Pending (a local
// preview shown before the upload is confirmed, carrying the rollback value).
// Rollback is structural: a failed upload collapses the value back to the
// last committed URL, never keeping the unconfirmed preview.
type ImageState struct {
	kind     imageKind
	value    string
	rollback string
}

// CommittedImage creates an ImageState holding a server-confirmed URL.
func CommittedImage(url string) ImageState {
	return ImageState{kind: imageCommitted, value: url}
}

// Begin starts an optimistic update, displaying preview while remembering
// the current committed value for rollback.
func (s ImageState) Begin(preview string) ImageState {
	rollback := s.value
	if s.kind == imagePending {
		rollback = s.rollback
	}
	return ImageState{kind: imagePending, value: preview, rollback: rollback}
}

// Commit collapses the state to Committed with the server-confirmed URL.
func (s ImageState) Commit(url string) ImageState {
	return ImageState{kind: imageCommitted, value: url}
}

// Rollback collapses a Pending state back to the last committed value.
// Committed states are returned unchanged.
func (s ImageState) Rollback() ImageState {
	if s.kind != imagePending {
		return s
	}
	return ImageState{kind: imageCommitted, value: s.rollback}
}

// URL returns the value currently displayed.
func (s ImageState) URL() string {
	return s.value
}

// Pending reports whether an unconfirmed preview is displayed.
func (s ImageState) Pending() bool {
	return s.kind == imagePending
}
