// ABOUTME: ggwave engine package
// ABOUTME: cgo binding to libggwave behind the codec.Engine contract
// Package ggwave implements codec.Engine on top of the ggwave C library.
//
// Building the real engine requires cgo and libggwave (headers under
// ggwave/ggwave.h). Builds without cgo, or with the "noggwave" tag, get
// an engine whose Open always fails with a descriptive error.
package ggwave
