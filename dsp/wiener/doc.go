// Package wiener implements the two Wiener-style denoisers.
//
// The frequency-domain design ([FrequencyDomain]) estimates the power
// spectral density of the peak-normalised channel with Welch's method,
// derives a flat noise floor from it ([NoisePSD]), forms the per-bin gain
// psd/(psd+noise) and transforms it to FIR taps ([TapsFromPSD]). Its output
// stays in the normalised scale.
//
// The autocorrelation design ([Autocorrelation]) builds an order×order
// system from the autocorrelation of the raw channel and solves it by SVD
// least squares ([SolveAutocorrelation]), so singular systems from silent
// or perfectly periodic input still yield taps.
//
// [Denoise] runs either design over every channel of a waveform and
// applies the taps with [fir.Apply].
package wiener
