// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

/*
Package auth implements the control API's authentication gate: a single
shared AUTH_PASSWORD credential, signed into a JWT cookie and verified on
every subsequent request.

There is no account model. POST /get_token compares the submitted password
to AUTH_PASSWORD and, on match, signs a token carrying a fixed `sub` claim
(Principal) and sets it as the authToken cookie. Two composable middleware
layers guard everything else:

	mux.Use(middleware.ExtractToken)  // cookie -> identity in context, or none
	mux.Use(middleware.ProtectAPI)    // 401 if no identity

ExtractToken always runs so routes like GET /front can render differently
for signed-in and anonymous callers; ProtectAPI is applied only to routes
that require authentication.
*/
package auth
