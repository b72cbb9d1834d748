// Package tasks keeps the displayed contact list consistent with the
// server collection.
//
// The core abstraction is [ListController], which owns the paging and
// search state, issues fetch specifications, and decides which responses
// may apply. Responses carry the generation they were issued under; only
// the latest generation wins, so a slow early response can never
// overwrite a newer one. Mutations report back through
// [ListController.AfterMutation], which consults the refetch policy for
// the page to reload.
package tasks
