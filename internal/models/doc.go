// Package models defines domain entities for the ConnectBase terminal client.
//
// The package contains two categories of types:
//
// 1. Wire records mirroring the ConnectBase backend's JSON:
//   - [Contact] : A single contact record (server-assigned ID)
//   - [User] : The authenticated user's profile
//   - [ContactPage] : One page of a paginated, filterable contact listing
//
// 2. Client-side state values with no wire representation:
//   - [ImageState] : Tagged optimistic image value (Committed or Pending)
//     with structural rollback on failed uploads
//
// Wire records are replaced wholesale on every successful fetch and never
// mutated locally without a confirmed server response; the one exception is
// the optimistic preview carried by [ImageState].
package models
