// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify records notifications for votes and follows. A Notifier
// subscribes to the event bus and writes one row per event; votes on your
// own poll are not recorded.
package notify
