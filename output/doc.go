// SPDX-License-Identifier: EPL-2.0

// Package output plays mixed PCM on the default audio device through oto.
//
// oto allows a single context per process, so a program should create one
// Player and reuse it for every stream it plays.
package output
