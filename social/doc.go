// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package social holds the user directory and the follow/block graph.

Graph implements voting.FollowGraph. Following a private user creates a
pending request; Directory.SetVisibility publishes
event.UserVisibilityChangedType and Graph.HandleVisibilityChanged accepts
all pending requests once the user is public. Blocking removes follow
edges in both directions and a second block of the same user is a
conflict.
*/
package social
