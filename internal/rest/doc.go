// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package rest exposes the validation pipeline over HTTP.
//
// Routes:
//
//	POST /api/v1/validate     run one request document through the registry
//	GET  /api/v1/algorithms   list the supported algorithm families
//	GET  /health              liveness
//	GET  /health/ready        readiness
//	GET  /health/startup      startup
//	GET  /metrics             Prometheus metrics (when enabled)
//
// Validation failures are answered with 400, unknown algorithms with 404.
// Error bodies carry the error kind, the numeric code and the offending
// parameter:
//
//	{"error":"ParamWrongValue","message":"...","kind":"ParamWrongValue","code":4,"param":"saltLength"}
package rest
