// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides bearer token generation and verification.

# User Tokens

Tokens bind a user id to an HMAC-SHA256 signature:

	token := auth.GenerateUserToken(userID, salt)
	userID, err := auth.ParseUserToken(token, salt)

The signature is URL-safe base64 without padding. Since it's deterministic,
the same user id and salt always produce the same token, so nothing needs
to be stored. Rotating the salt invalidates every token.

# Headers

Clients send the token as:

	Authorization: Bearer <user id>.<signature>

BearerToken extracts it from the header value.
*/
package auth
