// Package duration derives audio durations from container metadata.
//
// WAV files are read directly from their RIFF header. Every other supported
// container goes through ffprobe, so non-WAV formats require ffmpeg to be
// installed. No audio is ever decoded.
package duration
