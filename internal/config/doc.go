// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package config provides layered configuration loading for Bookwise.
//
// Configuration is resolved in three layers, each overriding the last:
//
//  1. Built-in defaults (defaultConfig)
//  2. YAML config file (first match in DefaultConfigPaths, or BOOKWISE_CONFIG)
//  3. Environment variables (BOOKWISE_ prefix, e.g. BOOKWISE_DATABASE_PATH)
//
// All sections are optional; a Bookwise instance started with no config
// file and no environment runs with an embedded database at the default
// path and the remote recommendation provider disabled.
package config
