// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package event is an in-process event bus used to fan out domain events
// (votes, follows, profile visibility) to subscribers such as the
// notifier and the follow graph.
package event
