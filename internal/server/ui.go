// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import _ "embed"

// indexHTML is the single-page UI served at /. It connects to /ws and
// renders progress events as they arrive.
//
//go:embed index.html
var indexHTML []byte
