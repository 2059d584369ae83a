// Package waveform holds decoded multichannel audio and runs per-channel
// processing over it.
//
// A [Waveform] stores one float64 slice per channel at a shared sample
// rate. Only mono and stereo layouts are accepted. [Apply] runs a
// [ChannelFunc] over every channel, concurrently for stereo, and
// reassembles the results in channel order.
package waveform
