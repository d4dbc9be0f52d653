// Package ffmpeg builds and executes the fixed fast-compression ffmpeg
// command and classifies its stderr when an encode fails.
//
// Settings are not user-configurable: every job runs H.264 (libx264,
// preset veryfast, CRF 28) with AAC audio at 128k, overwriting the target.
//
// Files:
//   - settings.go: [Settings] and the [FastCompression] preset.
//   - builder.go: [Build] turns settings and paths into an argument slice.
//   - executor.go: [Executor] runs one encode and captures stderr.
//   - errors.go: [Classify] maps stderr to an [ErrorClass] for reporting.
package ffmpeg
