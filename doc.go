// Package boombox is a playback manager for games: category volumes with
// clamped setters, pooled sound-effect channels that grow on demand and
// shrink back after playback, per-tick linear volume fades, and a
// symbolic-name sound library with weighted random variants.
//
// The package does no decoding or mixing of its own. All sample handling
// happens behind the Output, Source and Clip interfaces; the ebitenout and
// beepout subpackages implement them over the ebiten audio engine and the
// beep speaker. A Manager is driven from the host's game loop: call Update
// once per frame with the frame delta and every other method from the same
// goroutine. There is no internal locking.
package boombox
