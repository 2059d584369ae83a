// Package spectrum provides the spectral estimators used by the denoiser
// and the comparator: Welch's averaged periodogram, a centered short-time
// Fourier transform and the inverse real transform used for filter design.
//
// Real transforms of arbitrary length go through gonum's dsp/fourier.
// Short-time frames use power-of-two complex plans from algo-fft.
// Magnitude and power extraction is vectorised with algo-vecmath.
package spectrum
